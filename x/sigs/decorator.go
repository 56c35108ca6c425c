package sigs

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// Decorator verifies the signatures of a SignedTx and makes the signers
// available to Authenticate. A transaction of another type passes through
// without signers.
type Decorator struct {
	allowMissingSigs bool
}

var _ stablecoin.Decorator = Decorator{}

// NewDecorator rejects signed transactions without any signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a decorator that accepts a transaction without
// signatures.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	signed, err := d.signers(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(signed, db, tx)
}

func (d Decorator) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	signed, err := d.signers(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(signed, db, tx)
}

// signers returns ctx extended with the verified signers of tx.
func (d Decorator) signers(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (stablecoin.Context, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	conds, err := VerifyTxSignatures(db, stx, stablecoin.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "cannot verify signatures")
	}
	if len(conds) == 0 && !d.allowMissingSigs {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, conds), nil
}
