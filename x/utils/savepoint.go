package utils

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written when the call succeeds and dropped when it fails, so a failed
// message leaves no partial state behind. It is off for both phases until
// OnCheck or OnDeliver is called.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ stablecoin.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	cache, commit := savepoint(db)
	res, err := next.Check(ctx, cache, tx)
	if err := commit(err); err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	cache, commit := savepoint(db)
	res, err := next.Deliver(ctx, cache, tx)
	if err := commit(err); err != nil {
		return nil, err
	}
	return res, nil
}

// savepoint returns the store to run on and a function closing the
// savepoint with the outcome of the run. Closing writes the cache when
// the outcome is nil, discards it otherwise, and returns the error to
// report. A store without cache support is used as is.
func savepoint(db stablecoin.KVStore) (stablecoin.KVStore, func(error) error) {
	c, ok := db.(stablecoin.CacheableKVStore)
	if !ok {
		return db, func(err error) error { return err }
	}
	cache := c.CacheWrap()
	return cache, func(err error) error {
		if err != nil {
			cache.Discard()
			return err
		}
		if err := cache.Write(); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
		return nil
	}
}
