package control

import (
	"github.com/iov-one/stablecoin"
)

// Signatories decides who may create and vote on requests. Executed
// signatory requests change its membership.
type Signatories interface {
	IsAuthorized(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (bool, error)
	Add(db stablecoin.KVStore, wallets []stablecoin.Address) error
	Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error
}

// Thresholds returns the quorum of a request type and subtype. Executed
// threshold requests replace all values of a type.
type Thresholds interface {
	Get(db stablecoin.ReadOnlyKVStore, t RequestType, s Subtype) (uint32, error)
	Set(db stablecoin.KVStore, t RequestType, values []uint32) error
}

// Ledger is changed by executed token supply and transaction requests.
// Implementations emit their own events.
type Ledger interface {
	Mint(ctx stablecoin.Context, db stablecoin.KVStore, to stablecoin.Address, amount uint64) error
	// Burn destroys tokens of a wallet. Burning from a wallet other than
	// the spender's own consumes the allowance granted to the spender.
	Burn(ctx stablecoin.Context, db stablecoin.KVStore, from, spender stablecoin.Address, amount uint64) error
	SetPaused(ctx stablecoin.Context, db stablecoin.KVStore, paused bool) error
}

// Whitelist is changed by executed whitelist requests.
type Whitelist interface {
	Add(db stablecoin.KVStore, wallets []stablecoin.Address) error
	Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error
}
