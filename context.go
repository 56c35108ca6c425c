package stablecoin

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block data, the logger and the event log from the
// application down to the handlers. Values are attached with the WithX
// functions of this package and read back with the matching getter.
// Extensions may add keys of their own.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
	contextKeyEvents
)

// DefaultLogger is returned by GetLogger when no logger was attached.
var DefaultLogger = log.NewNopLogger()

var chainIDFormat = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`)

// IsValidChainID reports whether id can name a chain.
func IsValidChainID(id string) bool {
	return chainIDFormat.MatchString(id)
}

// WithHeight attaches the height of the block being processed. A height
// cannot be replaced, so it panics when one is set already.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("Height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithChainID panics when a chain id is set already or when chainID is
// malformed.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set in Context")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain ID")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID panics when no chain id is set. Signatures cannot be checked
// without it, so a context lacking one is a wiring mistake.
func GetChainID(ctx Context) string {
	id, _ := ctx.Value(contextKeyChainID).(string)
	if id == "" {
		panic("No chain ID set in Context")
	}
	return id
}

func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return t, ok
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo attaches a logger that adds keyvals to every entry.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return DefaultLogger
}
