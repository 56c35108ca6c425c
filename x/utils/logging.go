package utils

import (
	"time"

	"github.com/iov-one/stablecoin"
)

// Logging writes one entry per processed transaction with its path and
// duration. Failures are logged as errors, delivered transactions at info
// level and checked ones at debug level.
type Logging struct{}

var _ stablecoin.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	entry{ctx: ctx, tx: tx, start: start, debug: true}.write(msg, err)
	return res, err
}

func (Logging) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	entry{ctx: ctx, tx: tx, start: start}.write(msg, err)
	return res, err
}

type entry struct {
	ctx   stablecoin.Context
	tx    stablecoin.Tx
	start time.Time
	debug bool
}

// write logs even when msg is empty, the path and duration are still of
// interest.
func (e entry) write(msg string, err error) {
	logger := stablecoin.GetLogger(e.ctx).With(
		"path", stablecoin.GetPath(e.tx),
		"duration", time.Since(e.start)/time.Microsecond,
	)
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case e.debug:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
