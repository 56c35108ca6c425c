package weavetest

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/iov-one/stablecoin"
)

// NewCondition returns a random condition. Its address collides with no
// other.
func NewCondition() stablecoin.Condition {
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		panic(fmt.Sprintf("read random seed: %s", err))
	}
	return stablecoin.NewCondition("test", "rand", seed)
}

// Auth authenticates a fixed set of conditions. Signers come first, then
// Signer when it is set.
type Auth struct {
	Signer  stablecoin.Condition
	Signers []stablecoin.Condition
}

func (a *Auth) GetConditions(stablecoin.Context) []stablecoin.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := append([]stablecoin.Condition{}, a.Signers...)
	return append(conds, a.Signer)
}

func (a *Auth) HasAddress(ctx stablecoin.Context, addr stablecoin.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored in the context under Key.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context that authenticates conds.
func (a *CtxAuth) SetConditions(ctx stablecoin.Context, conds ...stablecoin.Condition) stablecoin.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx stablecoin.Context) []stablecoin.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []stablecoin.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx stablecoin.Context, addr stablecoin.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []stablecoin.Condition, addr stablecoin.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
