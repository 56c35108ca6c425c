// Package stablecoind assembles the stablecoin application from its
// components.
package stablecoind

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/app"
	"github.com/iov-one/stablecoin/commands/server"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store/iavl"
	"github.com/iov-one/stablecoin/x"
	"github.com/iov-one/stablecoin/x/control"
	"github.com/iov-one/stablecoin/x/ledger"
	"github.com/iov-one/stablecoin/x/signatory"
	"github.com/iov-one/stablecoin/x/sigs"
	"github.com/iov-one/stablecoin/x/threshold"
	"github.com/iov-one/stablecoin/x/utils"
	"github.com/iov-one/stablecoin/x/whitelist"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Name is returned by abci Info.
const Name = "stablecoin"

// Authenticator accepts ed25519 signatures only.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Controllers are the components of the application state. The control
// component reaches the others only through its interfaces.
type Controllers struct {
	Signatories *signatory.Controller
	Thresholds  *threshold.Controller
	Ledger      *ledger.Controller
	Whitelist   *whitelist.Controller
	Control     *control.Controller
}

// NewControllers wires all components together.
func NewControllers() Controllers {
	sig := signatory.NewController()
	th := threshold.NewController()
	wl := whitelist.NewController()
	led := ledger.NewController(wl)
	return Controllers{
		Signatories: sig,
		Thresholds:  th,
		Ledger:      led,
		Whitelist:   wl,
		Control:     control.NewController(sig, th, led, wl),
	}
}

// Chain is the decorator stack every transaction passes through.
func Chain(metrics utils.Metrics) app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// below the signature check so a failed message still uses up
		// the nonce
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router routes every message kind to its handler.
func Router(authFn x.Authenticator, c Controllers) *app.Router {
	r := app.NewRouter()
	control.RegisterRoutes(r, authFn, c.Control)
	ledger.RegisterRoutes(r, authFn, c.Ledger)
	signatory.RegisterRoutes(r, authFn, c.Signatories)
	return r
}

// QueryRouter serves the read paths of all components.
func QueryRouter() stablecoin.QueryRouter {
	r := stablecoin.NewQueryRouter()
	r.RegisterAll(
		control.RegisterQuery,
		signatory.RegisterQuery,
		threshold.RegisterQuery,
		ledger.RegisterQuery,
		whitelist.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis loaders in the order their state
// depends on each other.
func Initializers() stablecoin.Initializer {
	return app.ChainInitializers(
		signatory.Initializer{},
		threshold.Initializer{},
		ledger.Initializer{},
		whitelist.Initializer{},
	)
}

// Stack is the full transaction handler: decorators around the router.
func Stack(metrics utils.Metrics) stablecoin.Handler {
	authFn := Authenticator()
	return Chain(metrics).
		WithHandler(Router(authFn, NewControllers()))
}

// Application builds the ABCI application over the database at dbPath. An
// empty path keeps the state in memory.
func Application(name string, h stablecoin.Handler,
	tx stablecoin.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	base := app.NewBaseApp(store, tx, h, debug)
	return base, nil
}

// CommitKVStore opens the commit store for dbPath.
func CommitKVStore(dbPath string) (stablecoin.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", path)
	}

	// leveldb adds its own ".db" suffix
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}

// GenerateApp is the application factory of the start command.
func GenerateApp(options *server.Options) (abci.Application, error) {
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	metrics := utils.NewMetrics()
	if err := metrics.Register(options.Registerer); err != nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "metrics: %s", err)
	}

	application, err := Application(Name, Stack(metrics), TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(options.Logger)
	return application, nil
}
