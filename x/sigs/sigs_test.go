package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store"
	"github.com/iov-one/stablecoin/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signedTx carries raw sign bytes next to its signatures.
type signedTx struct {
	weavetest.Tx
	raw  []byte
	sigs []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)

func (tx *signedTx) GetSignatures() []*StdSignature { return tx.sigs }
func (tx *signedTx) GetSignBytes() ([]byte, error)  { return tx.raw, nil }

// signerRecorder keeps the signers the last call was authenticated with.
type signerRecorder struct {
	seen []stablecoin.Condition
}

func (r *signerRecorder) Check(ctx stablecoin.Context, _ stablecoin.KVStore, _ stablecoin.Tx) (*stablecoin.CheckResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &stablecoin.CheckResult{}, nil
}

func (r *signerRecorder) Deliver(ctx stablecoin.Context, _ stablecoin.KVStore, _ stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	r.seen = Authenticate{}.GetConditions(ctx)
	return &stablecoin.DeliverResult{}, nil
}

func TestDecorator(t *testing.T) {
	const chainID = "sigs-test"
	ctx := stablecoin.WithChainID(context.Background(), chainID)
	owner := GenPrivateKey()
	signatory := GenPrivateKey()
	raw := []byte("control/execute 2")

	sign := func(k *PrivateKey, seq int64) *StdSignature {
		sig, err := SignTx(k, &signedTx{raw: raw}, chainID, seq)
		require.NoError(t, err)
		return sig
	}

	cases := map[string]struct {
		decorator   Decorator
		sigs        [][]*StdSignature
		wantErr     *errors.Error
		wantSigners []stablecoin.Condition
	}{
		"single signature": {
			decorator:   NewDecorator(),
			sigs:        [][]*StdSignature{{sign(owner, 0)}},
			wantSigners: []stablecoin.Condition{owner.PublicKey().Condition()},
		},
		"two signers keep their order": {
			decorator: NewDecorator(),
			sigs:      [][]*StdSignature{{sign(signatory, 0), sign(owner, 0)}},
			wantSigners: []stablecoin.Condition{
				signatory.PublicKey().Condition(),
				owner.PublicKey().Condition(),
			},
		},
		"sequences follow each other": {
			decorator:   NewDecorator(),
			sigs:        [][]*StdSignature{{sign(owner, 0)}, {sign(owner, 1)}},
			wantSigners: []stablecoin.Condition{owner.PublicKey().Condition()},
		},
		"replay": {
			decorator: NewDecorator(),
			sigs:      [][]*StdSignature{{sign(owner, 0)}, {sign(owner, 0)}},
			wantErr:   ErrInvalidSequence,
		},
		"no signature": {
			decorator: NewDecorator(),
			sigs:      [][]*StdSignature{nil},
			wantErr:   errors.ErrUnauthorized,
		},
		"no signature allowed": {
			decorator:   NewDecorator().AllowMissingSigs(),
			sigs:        [][]*StdSignature{nil},
			wantSigners: []stablecoin.Condition{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			for _, phase := range []string{"check", "deliver"} {
				db := store.MemStore()
				next := &signerRecorder{}
				var err error
				for _, sigs := range tc.sigs {
					tx := &signedTx{raw: raw, sigs: sigs}
					if phase == "check" {
						_, err = tc.decorator.Check(ctx, db, tx, next)
					} else {
						_, err = tc.decorator.Deliver(ctx, db, tx, next)
					}
				}
				if !tc.wantErr.Is(err) {
					t.Fatalf("%s: unexpected error: %+v", phase, err)
				}
				if tc.wantErr == nil {
					assert.Equal(t, tc.wantSigners, next.seen, phase)
				}
			}
		})
	}
}

func TestDecoratorIgnoresUnsignedTx(t *testing.T) {
	ctx := stablecoin.WithChainID(context.Background(), "sigs-test")
	next := &signerRecorder{}
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "control/vote"}}
	_, err := NewDecorator().Deliver(ctx, store.MemStore(), tx, next)
	require.NoError(t, err)
	assert.Empty(t, next.seen)
}

func TestVerifySignature(t *testing.T) {
	const chainID = "test-chain"
	priv := GenPrivateKey()
	payload := []byte("vote on request 2")

	sign := func(k *PrivateKey, chain string, seq int64) *StdSignature {
		sig, err := SignTx(k, &signedTx{raw: payload}, chain, seq)
		require.NoError(t, err)
		return sig
	}
	forged := sign(GenPrivateKey(), chainID, 0)
	forged.Pubkey = priv.PublicKey()

	cases := map[string]struct {
		sig     *StdSignature
		wantErr *errors.Error
	}{
		"valid": {
			sig: sign(priv, chainID, 0),
		},
		"sequence ahead": {
			sig:     sign(priv, chainID, 3),
			wantErr: ErrInvalidSequence,
		},
		"another chain": {
			sig:     sign(priv, "other-chain", 0),
			wantErr: errors.ErrUnauthorized,
		},
		"signed by another key": {
			sig:     forged,
			wantErr: errors.ErrUnauthorized,
		},
		"no public key": {
			sig:     &StdSignature{Signature: []byte("sig")},
			wantErr: errors.ErrUnauthorized,
		},
		"short public key": {
			sig:     &StdSignature{Pubkey: []byte("key"), Signature: []byte("sig")},
			wantErr: errors.ErrUnauthorized,
		},
		"negative sequence": {
			sig:     &StdSignature{Sequence: -1, Pubkey: priv.PublicKey(), Signature: []byte("x")},
			wantErr: ErrInvalidSequence,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			cond, err := VerifySignature(db, tc.sig, payload, chainID)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			nonce, nerr := NextNonce(db, priv.PublicKey().Address())
			require.NoError(t, nerr)
			if tc.wantErr != nil {
				assert.Equal(t, int64(0), nonce)
				return
			}
			assert.Equal(t, priv.PublicKey().Condition(), cond)
			assert.Equal(t, int64(1), nonce)
		})
	}
}

func TestBuildSignBytes(t *testing.T) {
	digest := func(chainID string, seq int64) []byte {
		d, err := BuildSignBytes([]byte("transfer"), chainID, seq)
		require.NoError(t, err)
		return d
	}
	a := digest("chain-one", 1)
	assert.Len(t, a, 64)
	assert.Equal(t, a, digest("chain-one", 1))
	assert.NotEqual(t, a, digest("chain-one", 2))
	assert.NotEqual(t, a, digest("chain-two", 1))

	_, err := BuildSignBytes([]byte("transfer"), "bad chain!", 1)
	assert.True(t, errors.ErrInvalidInput.Is(err))
	_, err = BuildSignBytes([]byte("transfer"), "chain-one", -1)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestPrivateKeyFromSeed(t *testing.T) {
	priv := GenPrivateKey()
	restored, err := PrivateKeyFromSeed(priv.Seed())
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey(), restored.PublicKey())

	_, err = PrivateKeyFromSeed([]byte("short"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestCheckAndIncrementSequence(t *testing.T) {
	u := UserData{Pubkey: GenPrivateKey().PublicKey(), Sequence: 4}
	assert.True(t, ErrInvalidSequence.Is(u.CheckAndIncrementSequence(3)))
	assert.Equal(t, int64(4), u.Sequence)
	assert.NoError(t, u.CheckAndIncrementSequence(4))
	assert.Equal(t, int64(5), u.Sequence)

	u.Sequence = maxSequence
	assert.True(t, errors.ErrOverflow.Is(u.CheckAndIncrementSequence(maxSequence)))
	assert.NoError(t, u.Validate())
	assert.True(t, errors.ErrInvalidModel.Is((&UserData{}).Validate()))
}
