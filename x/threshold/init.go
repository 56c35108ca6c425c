package threshold

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x/control"
)

const optKey = "threshold"

// Genesis is the genesis representation of the threshold table. Types that
// are not listed keep the default quorum.
type Genesis struct {
	Thresholds []GenesisEntry `json:"thresholds"`
}

// GenesisEntry holds the quorums of one request type.
type GenesisEntry struct {
	Type   control.RequestType `json:"type"`
	Values []uint32            `json:"values"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ stablecoin.Initializer = Initializer{}

// FromGenesis will parse initial thresholds from genesis and save them in
// the database.
func (Initializer) FromGenesis(opts stablecoin.Options, db stablecoin.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	ctrl := NewController()
	for _, th := range gen.Thresholds {
		if err := ctrl.Set(db, th.Type, th.Values); err != nil {
			return errors.Wrapf(err, "genesis %s thresholds", th.Type)
		}
	}
	return nil
}
