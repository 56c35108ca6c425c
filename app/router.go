package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]stablecoin.Handler
}

var _ stablecoin.Registry = (*Router)(nil)
var _ stablecoin.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]stablecoin.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h stablecoin.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a notFound handler that always returns an error.
func (r *Router) handler(path string) stablecoin.Handler {
	h, ok := r.routes[path]
	if !ok {
		return notFoundHandler(path)
	}
	return h
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	}
	return r.handler(msg.Path()).Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	}
	return r.handler(msg.Path()).Deliver(ctx, db, tx)
}

// notFoundHandler always returns ErrNotFound for the path
type notFoundHandler string

var _ stablecoin.Handler = notFoundHandler("")

func (path notFoundHandler) Check(stablecoin.Context, stablecoin.KVStore, stablecoin.Tx) (*stablecoin.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}

func (path notFoundHandler) Deliver(stablecoin.Context, stablecoin.KVStore, stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}
