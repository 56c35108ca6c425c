package ledger

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

const optKey = "ledger"

// Genesis is the genesis representation of the ledger.
type Genesis struct {
	Token            *Token    `json:"token"`
	EnforceWhitelist bool      `json:"enforce_whitelist"`
	Balances         []Holding `json:"balances"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ stablecoin.Initializer = Initializer{}

// FromGenesis will parse the token, its policy and the initial balances
// from genesis and save them in the database. A missing token uses the
// default metadata.
func (Initializer) FromGenesis(opts stablecoin.Options, db stablecoin.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	token := gen.Token
	if token == nil {
		token = DefaultToken()
	}
	policy := &Policy{EnforceWhitelist: gen.EnforceWhitelist}
	// the whitelist is only consulted on movements
	if err := NewController(nil).Init(db, token, policy, gen.Balances); err != nil {
		return errors.Wrap(err, "genesis ledger")
	}
	return nil
}
