package utils

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// Recovery turns a panic further down the stack into an errors.ErrPanic, so
// that a bug in a handler fails the transaction instead of the node. Every
// recovered panic is logged with the message path and block height.
type Recovery struct{}

var _ stablecoin.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (res *stablecoin.CheckResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (res *stablecoin.DeliverResult, err error) {
	defer recovered(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

// recovered must be deferred directly, recover returns nil otherwise.
func recovered(ctx stablecoin.Context, tx stablecoin.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok {
		*err = errors.Wrap(errors.ErrPanic, e.Error())
	} else {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	}
	height, _ := stablecoin.GetHeight(ctx)
	stablecoin.GetLogger(ctx).Error("Recovered from panic",
		"path", stablecoin.GetPath(tx),
		"height", height,
		"panic", r)
}
