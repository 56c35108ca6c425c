package weavetest

import "github.com/iov-one/stablecoin"

// Calls counts the invocations of a mock. Every call is counted, whether it
// fails or not.
type Calls struct {
	checks   int
	delivers int
}

func (c *Calls) CheckCallCount() int   { return c.checks }
func (c *Calls) DeliverCallCount() int { return c.delivers }
func (c *Calls) CallCount() int        { return c.checks + c.delivers }

// Handler returns the configured results, or the configured errors when
// they are set.
type Handler struct {
	Calls
	CheckResult   stablecoin.CheckResult
	CheckErr      error
	DeliverResult stablecoin.DeliverResult
	DeliverErr    error
}

var _ stablecoin.Handler = (*Handler)(nil)

func (h *Handler) Check(stablecoin.Context, stablecoin.KVStore, stablecoin.Tx) (*stablecoin.CheckResult, error) {
	h.checks++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(stablecoin.Context, stablecoin.KVStore, stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	h.delivers++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator passes the call to the next handler, unless an error is
// configured for it. The next handler is not called then.
type Decorator struct {
	Calls
	CheckErr   error
	DeliverErr error
}

var _ stablecoin.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	d.checks++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	d.delivers++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate puts d in front of h.
func Decorate(h stablecoin.Handler, d stablecoin.Decorator) stablecoin.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   stablecoin.Handler
	decorator stablecoin.Decorator
}

func (d decorated) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
