package app

import (
	"reflect"

	"github.com/iov-one/stablecoin"
)

// Decorators is an ordered list of decorators waiting for the handler they
// run around. The first decorator is the outermost one.
//
//	handler := app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators struct {
	chain []stablecoin.Decorator
}

func ChainDecorators(chain ...stablecoin.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain appends decorators to the inner end of the list. Nil values, typed
// or not, are left out, which allows optional decorators to be given
// inline.
func (d Decorators) Chain(chain ...stablecoin.Decorator) Decorators {
	all := append([]stablecoin.Decorator{}, d.chain...)
	for _, dec := range chain {
		if !isNilDecorator(dec) {
			all = append(all, dec)
		}
	}
	return Decorators{chain: all}
}

func isNilDecorator(d stablecoin.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler returns h wrapped by all decorators.
func (d Decorators) WithHandler(h stablecoin.Handler) stablecoin.Handler {
	if len(d.chain) == 0 {
		return h
	}
	return layer{chain: d.chain, handler: h}
}

// layer runs chain[0] with the remaining layers as its next handler.
type layer struct {
	chain   []stablecoin.Decorator
	handler stablecoin.Handler
}

func (l layer) next() stablecoin.Handler {
	return Decorators{chain: l.chain[1:]}.WithHandler(l.handler)
}

func (l layer) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	return l.chain[0].Check(ctx, db, tx, l.next())
}

func (l layer) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	return l.chain[0].Deliver(ctx, db, tx, l.next())
}
