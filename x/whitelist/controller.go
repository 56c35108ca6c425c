package whitelist

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
	"github.com/iov-one/stablecoin/x/control"
	"github.com/iov-one/stablecoin/x/ledger"
)

// Controller owns the whitelist.
type Controller struct {
	bucket orm.ModelBucket
}

var (
	_ control.Whitelist = (*Controller)(nil)
	_ ledger.Whitelist  = (*Controller)(nil)
)

// NewController returns a controller of the whitelist.
func NewController() *Controller {
	return &Controller{bucket: newMemberBucket()}
}

// Add whitelists every wallet. Wallets already on the list are ignored.
func (c *Controller) Add(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		if err := c.bucket.Put(db, w, &Member{Address: w}); err != nil {
			return err
		}
	}
	return nil
}

// Remove takes every wallet off the list. Unknown wallets are ignored.
func (c *Controller) Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		if !c.bucket.Has(db, w) {
			continue
		}
		if err := c.bucket.Delete(db, w); err != nil {
			return err
		}
	}
	return nil
}

// IsWhitelisted returns true if the address is on the list.
func (c *Controller) IsWhitelisted(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (bool, error) {
	if len(addr) == 0 {
		return false, nil
	}
	return c.bucket.Has(db, addr), nil
}

// List returns all whitelisted addresses ordered by address.
func (c *Controller) List(db stablecoin.ReadOnlyKVStore) ([]stablecoin.Address, error) {
	var members []Member
	if _, err := c.bucket.ByPrefix(db, nil, &members); err != nil {
		return nil, errors.Wrap(err, "cannot list members")
	}
	addrs := make([]stablecoin.Address, len(members))
	for i, m := range members {
		addrs[i] = m.Address
	}
	return addrs, nil
}
