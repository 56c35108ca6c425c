package x

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// MaxWallets is the greatest number of addresses a single wallet list can
// hold.
const MaxWallets = 100

// ValidateWallets returns an error unless the list holds between one and
// MaxWallets valid and distinct addresses.
func ValidateWallets(wallets []stablecoin.Address) error {
	switch n := len(wallets); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "wallets")
	case n > MaxWallets:
		return errors.Wrapf(errors.ErrInvalidInput, "at most %d wallets allowed", MaxWallets)
	}
	seen := make(map[string]struct{}, len(wallets))
	for i, w := range wallets {
		if err := w.Validate(); err != nil {
			return errors.Wrapf(err, "wallet %d", i)
		}
		if _, ok := seen[string(w)]; ok {
			return errors.Wrapf(errors.ErrInvalidInput, "duplicated wallet %s", w)
		}
		seen[string(w)] = struct{}{}
	}
	return nil
}

// IndexOf returns the position of the address in the list or -1.
func IndexOf(list []stablecoin.Address, addr stablecoin.Address) int {
	for i, a := range list {
		if a.Equals(addr) {
			return i
		}
	}
	return -1
}
