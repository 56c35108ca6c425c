package signatory

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// EventOwnershipTransferred is emitted when the owner changes, including
// a renounce that leaves the registry without an owner.
const EventOwnershipTransferred = "OwnershipTransferred"

// Controller owns the signatory registry. All reads and writes of the
// registry go through it.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller of the signatory registry.
func NewController() *Controller {
	return &Controller{bucket: newRegistryBucket()}
}

func (c *Controller) load(db stablecoin.ReadOnlyKVStore) (*Registry, error) {
	var r Registry
	switch err := c.bucket.One(db, registryKey, &r); {
	case err == nil:
		return &r, nil
	case errors.ErrNotFound.Is(err):
		return &Registry{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load registry")
	}
}

func (c *Controller) save(db stablecoin.KVStore, r *Registry) error {
	return c.bucket.Put(db, registryKey, r)
}

// Init stores the initial registry. It is meant to be called from genesis.
func (c *Controller) Init(db stablecoin.KVStore, owner stablecoin.Address, signatories []stablecoin.Address) error {
	r := &Registry{Owner: owner}
	for _, s := range signatories {
		if r.indexOf(s) < 0 {
			r.Signatories = append(r.Signatories, s)
		}
	}
	return c.save(db, r)
}

// IsAuthorized returns true if the address is the owner or a signatory.
func (c *Controller) IsAuthorized(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (bool, error) {
	r, err := c.load(db)
	if err != nil {
		return false, err
	}
	return r.IsAuthorized(addr), nil
}

// Add inserts each wallet that is not a signatory yet, keeping the
// insertion order.
func (c *Controller) Add(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	r, err := c.load(db)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		if err := w.Validate(); err != nil {
			return errors.Wrap(err, "wallet")
		}
		if r.indexOf(w) < 0 {
			r.Signatories = append(r.Signatories, w)
		}
	}
	return c.save(db, r)
}

// Remove deletes each wallet that is a signatory. Unknown wallets are
// ignored.
func (c *Controller) Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	r, err := c.load(db)
	if err != nil {
		return err
	}
	for _, w := range wallets {
		if i := r.indexOf(w); i >= 0 {
			r.Signatories = append(r.Signatories[:i], r.Signatories[i+1:]...)
		}
	}
	return c.save(db, r)
}

// List returns all signatories in insertion order. The owner is not
// included.
func (c *Controller) List(db stablecoin.ReadOnlyKVStore) ([]stablecoin.Address, error) {
	r, err := c.load(db)
	if err != nil {
		return nil, err
	}
	return r.Signatories, nil
}

// Owner returns the current owner. It is empty when ownership was renounced.
func (c *Controller) Owner(db stablecoin.ReadOnlyKVStore) (stablecoin.Address, error) {
	r, err := c.load(db)
	if err != nil {
		return nil, err
	}
	return r.Owner, nil
}

// TransferOwnership makes newOwner the owner. Only the current owner can
// call it.
func (c *Controller) TransferOwnership(ctx stablecoin.Context, db stablecoin.KVStore, caller, newOwner stablecoin.Address) error {
	if err := newOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return c.setOwner(ctx, db, caller, newOwner)
}

// RenounceOwnership leaves the registry without an owner. Only the current
// owner can call it.
func (c *Controller) RenounceOwnership(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address) error {
	return c.setOwner(ctx, db, caller, nil)
}

func (c *Controller) setOwner(ctx stablecoin.Context, db stablecoin.KVStore, caller, owner stablecoin.Address) error {
	r, err := c.load(db)
	if err != nil {
		return err
	}
	if len(r.Owner) == 0 || !r.Owner.Equals(caller) {
		return errors.Wrap(errors.ErrUnauthorized, "caller is not the owner")
	}
	previous := r.Owner
	r.Owner = owner
	if err := c.save(db, r); err != nil {
		return err
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventOwnershipTransferred).
		With("previousOwner", previous).
		With("newOwner", owner))
	return nil
}
