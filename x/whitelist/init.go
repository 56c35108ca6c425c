package whitelist

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

const optKey = "whitelist"

// Genesis is the genesis representation of the whitelist.
type Genesis struct {
	Addresses []stablecoin.Address `json:"addresses"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ stablecoin.Initializer = Initializer{}

// FromGenesis will parse initial members from genesis and save them in the
// database.
func (Initializer) FromGenesis(opts stablecoin.Options, db stablecoin.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if err := NewController().Add(db, gen.Addresses); err != nil {
		return errors.Wrap(err, "genesis whitelist")
	}
	return nil
}
