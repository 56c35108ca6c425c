package app

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...stablecoin.Initializer) stablecoin.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []stablecoin.Initializer
}

// FromGenesis passes the options to every Initializer in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts stablecoin.Options, db stablecoin.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, db); err != nil {
			return errors.Wrapf(err, "%T", i)
		}
	}
	return nil
}
