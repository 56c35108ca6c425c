package signatory

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

const optKey = "signatory"

// Genesis is the genesis representation of the registry.
type Genesis struct {
	Owner       stablecoin.Address   `json:"owner"`
	Signatories []stablecoin.Address `json:"signatories"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ stablecoin.Initializer = Initializer{}

// FromGenesis will parse the owner and the initial signatories from genesis
// and save them in the database.
func (Initializer) FromGenesis(opts stablecoin.Options, db stablecoin.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	if len(gen.Owner) == 0 && len(gen.Signatories) == 0 {
		return nil
	}
	if err := NewController().Init(db, gen.Owner, gen.Signatories); err != nil {
		return errors.Wrap(err, "genesis registry")
	}
	return nil
}
