package control

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// Execute applies the effect of an accepted request and marks it executed.
// Only the creator can execute. The effect and the status change are
// written together or not at all, a failed effect leaves the request
// accepted so that it can be executed again.
func (c *Controller) Execute(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, t RequestType, id uint64) error {
	req, err := c.loadOwn(db, caller, t, id)
	if err != nil {
		return err
	}
	switch req.Status {
	case StatusAccepted:
	case StatusInProgress:
		return errors.Wrap(errors.ErrNotApproved, "request did not reach the threshold")
	default:
		return errors.Wrapf(errors.ErrInvalidState, "cannot execute %s request", req.Status)
	}

	ectx, events := stablecoin.WithEvents(ctx)
	err = atomically(db, func(db stablecoin.KVStore) error {
		if err := c.apply(ectx, db, caller, req); err != nil {
			return err
		}
		req.Status = StatusExecuted
		return c.bucket.Put(db, req.Key(), req)
	})
	if err != nil {
		return err
	}
	for _, e := range events.Events() {
		stablecoin.EmitEvent(ctx, e)
	}
	return nil
}

// apply dispatches on the payload variant.
func (c *Controller) apply(ctx stablecoin.Context, db stablecoin.KVStore, executor stablecoin.Address, req *Request) error {
	switch p := req.Payload().(type) {
	case *TokenSupplyPayload:
		switch req.Subtype {
		case SubtypeMint:
			return c.ledger.Mint(ctx, db, p.Wallet, p.Amount)
		case SubtypeBurn:
			return c.ledger.Burn(ctx, db, p.Wallet, executor, p.Amount)
		}
	case *TransactionPayload:
		switch req.Subtype {
		case SubtypePause:
			return c.ledger.SetPaused(ctx, db, true)
		case SubtypeUnpause:
			return c.ledger.SetPaused(ctx, db, false)
		}
	case *SignatoryPayload:
		var err error
		switch req.Subtype {
		case SubtypeAdd:
			err = c.signatories.Add(db, p.Wallets)
		case SubtypeRemove:
			err = c.signatories.Remove(db, p.Wallets)
		default:
			return unknownSubtype(req)
		}
		if err != nil {
			return err
		}
		stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventSignatoriesUpdated).
			With("reqType", uint32(req.Subtype)).
			With("reqId", req.ID).
			With("signatoryAddress", p.Wallets))
		return nil
	case *ThresholdPayload:
		if err := c.thresholds.Set(db, p.TargetType, p.Thresholds); err != nil {
			return err
		}
		stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventThresholdUpdated).
			With("reqType", uint32(p.TargetType)).
			With("reqId", req.ID))
		return nil
	case *WhitelistPayload:
		var err error
		switch req.Subtype {
		case SubtypeAdd:
			err = c.whitelist.Add(db, p.Wallets)
		case SubtypeRemove:
			err = c.whitelist.Remove(db, p.Wallets)
		default:
			return unknownSubtype(req)
		}
		if err != nil {
			return err
		}
		stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventWhitelistUpdated).
			With("reqType", uint32(req.Subtype)).
			With("reqId", req.ID).
			With("addresses", p.Wallets))
		return nil
	default:
		return errors.Wrapf(errors.ErrInvalidModel, "%s request without payload", req.Type)
	}
	return unknownSubtype(req)
}

func unknownSubtype(req *Request) error {
	return errors.Wrapf(errors.ErrInvalidModel, "unknown subtype %d of %s", uint32(req.Subtype), req.Type)
}

// atomically runs fn on a cache wrap of the store and writes the changes
// only if fn succeeds.
func atomically(db stablecoin.KVStore, fn func(stablecoin.KVStore) error) error {
	cstore, ok := db.(stablecoin.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
