package control

import (
	"encoding/binary"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// The fakes keep their state in the store so that a discarded cache wrap
// discards their changes too.

type fakeSignatories struct{}

func signatoryKey(a stablecoin.Address) []byte { return append([]byte("sig:"), a...) }

func (fakeSignatories) IsAuthorized(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (bool, error) {
	return db.Has(signatoryKey(addr)), nil
}

func (fakeSignatories) Add(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		db.Set(signatoryKey(w), []byte{1})
	}
	return nil
}

func (fakeSignatories) Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		db.Delete(signatoryKey(w))
	}
	return nil
}

type fakeThresholds struct{}

func thresholdKey(t RequestType) []byte { return []byte{'t', 'h', ':', byte(t)} }

func (fakeThresholds) Get(db stablecoin.ReadOnlyKVStore, t RequestType, s Subtype) (uint32, error) {
	raw := db.Get(thresholdKey(t))
	if raw == nil {
		return 1, nil
	}
	return binary.BigEndian.Uint32(raw[4*int(s):]), nil
}

func (fakeThresholds) Set(db stablecoin.KVStore, t RequestType, values []uint32) error {
	if err := CheckThresholdCount(t, values); err != nil {
		return err
	}
	raw := make([]byte, 4*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint32(raw[4*i:], v)
	}
	db.Set(thresholdKey(t), raw)
	return nil
}

// fakeLedger only tracks balances and the pause flag. A burn above the
// balance fails after modifying the store.
type fakeLedger struct{}

func balanceKey(a stablecoin.Address) []byte { return append([]byte("bal:"), a...) }

var pausedKey = []byte("paused")

func balanceOf(db stablecoin.ReadOnlyKVStore, a stablecoin.Address) uint64 {
	raw := db.Get(balanceKey(a))
	if raw == nil {
		return 0
	}
	return binary.BigEndian.Uint64(raw)
}

func setBalance(db stablecoin.KVStore, a stablecoin.Address, v uint64) {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, v)
	db.Set(balanceKey(a), raw)
}

func (fakeLedger) Mint(ctx stablecoin.Context, db stablecoin.KVStore, to stablecoin.Address, amount uint64) error {
	setBalance(db, to, balanceOf(db, to)+amount)
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent("Transfer").With("to", to).With("value", amount))
	return nil
}

func (fakeLedger) Burn(ctx stablecoin.Context, db stablecoin.KVStore, from, spender stablecoin.Address, amount uint64) error {
	have := balanceOf(db, from)
	if have < amount {
		setBalance(db, from, 0)
		return errors.Wrap(errors.ErrInsufficientBalance, "burn")
	}
	setBalance(db, from, have-amount)
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent("Transfer").With("from", from).With("value", amount))
	return nil
}

func (fakeLedger) SetPaused(ctx stablecoin.Context, db stablecoin.KVStore, paused bool) error {
	if db.Has(pausedKey) == paused {
		return errors.Wrap(errors.ErrInvalidState, "pause")
	}
	if paused {
		db.Set(pausedKey, []byte{1})
		stablecoin.EmitEvent(ctx, stablecoin.NewEvent("Paused"))
	} else {
		db.Delete(pausedKey)
		stablecoin.EmitEvent(ctx, stablecoin.NewEvent("Unpaused"))
	}
	return nil
}

type fakeWhitelist struct{}

func whitelistKey(a stablecoin.Address) []byte { return append([]byte("wl:"), a...) }

func (fakeWhitelist) Add(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		db.Set(whitelistKey(w), []byte{1})
	}
	return nil
}

func (fakeWhitelist) Remove(db stablecoin.KVStore, wallets []stablecoin.Address) error {
	for _, w := range wallets {
		db.Delete(whitelistKey(w))
	}
	return nil
}

func newTestController() *Controller {
	return NewController(fakeSignatories{}, fakeThresholds{}, fakeLedger{}, fakeWhitelist{})
}

// eventNames returns the names of all events in the log.
func eventNames(log *stablecoin.EventLog) []string {
	var names []string
	for _, e := range log.Events() {
		names = append(names, e.Name)
	}
	return names
}
