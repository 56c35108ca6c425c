package sigs

import (
	"context"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/x"
)

type signersKey struct{}

// withSigners is kept private. Only the decorator may tell who signed.
func withSigners(ctx stablecoin.Context, signers []stablecoin.Condition) stablecoin.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx stablecoin.Context) []stablecoin.Condition {
	signers, _ := ctx.Value(signersKey{}).([]stablecoin.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx stablecoin.Context, addr stablecoin.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
