/*
Package x holds what is shared by the extensions: authentication of the
caller and validation of wallet lists.
*/
package x

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// Authenticator tells which conditions signed the transaction being
// processed. Handlers receive one in their constructor and never look at
// signatures themselves.
type Authenticator interface {
	// GetConditions lists the fulfilled conditions, main signer first.
	GetConditions(stablecoin.Context) []stablecoin.Condition
	HasAddress(stablecoin.Context, stablecoin.Address) bool
}

// ChainAuth combines authenticators. Conditions keep the order of the
// authenticators that returned them.
func ChainAuth(auths ...Authenticator) Authenticator {
	return multiAuth(auths)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx stablecoin.Context) []stablecoin.Condition {
	var conds []stablecoin.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m multiAuth) HasAddress(ctx stablecoin.Context, addr stablecoin.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// Caller is the address of the main signer. Every operation is done on
// behalf of one caller, so a transaction without a signature is rejected.
func Caller(ctx stablecoin.Context, auth Authenticator) (stablecoin.Address, error) {
	conds := auth.GetConditions(ctx)
	if len(conds) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return conds[0].Address(), nil
}
