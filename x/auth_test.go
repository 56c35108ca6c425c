package x

import (
	"context"
	"testing"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/weavetest"
	"github.com/iov-one/stablecoin/weavetest/assert"
)

func TestCaller(t *testing.T) {
	owner := weavetest.NewCondition()
	signatory := weavetest.NewCondition()

	sigs := &weavetest.CtxAuth{Key: "sigs"}
	other := &weavetest.CtxAuth{Key: "other"}
	signed := sigs.SetConditions(context.Background(), signatory, owner)

	cases := map[string]struct {
		ctx        stablecoin.Context
		auth       Authenticator
		wantCaller stablecoin.Condition
		wantErr    *errors.Error
	}{
		"no signature": {
			ctx:     context.Background(),
			auth:    &weavetest.Auth{},
			wantErr: errors.ErrUnauthorized,
		},
		"single signer": {
			ctx:        context.Background(),
			auth:       &weavetest.Auth{Signer: owner},
			wantCaller: owner,
		},
		"first signature in context": {
			ctx:        signed,
			auth:       sigs,
			wantCaller: signatory,
		},
		"first authenticator wins": {
			ctx:        signed,
			auth:       ChainAuth(other, &weavetest.Auth{Signer: owner}, sigs),
			wantCaller: owner,
		},
		"signatures under another key": {
			ctx:     signed,
			auth:    other,
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			caller, err := Caller(tc.ctx, tc.auth)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantCaller.Address(), caller)
			}
		})
	}
}

func TestChainAuth(t *testing.T) {
	a, b, c := weavetest.NewCondition(), weavetest.NewCondition(), weavetest.NewCondition()
	auth := ChainAuth(
		&weavetest.Auth{Signer: b},
		&weavetest.Auth{},
		&weavetest.Auth{Signers: []stablecoin.Condition{a}},
	)
	ctx := context.Background()

	assert.Equal(t, []stablecoin.Condition{b, a}, auth.GetConditions(ctx))
	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, c.Address()))

	assert.Nil(t, ChainAuth().GetConditions(ctx))
}
