package sigs

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// VerifyTxSignatures checks every signature of tx and returns the
// conditions of the signers in signature order. A single bad signature
// fails the whole transaction.
func VerifyTxSignatures(db stablecoin.KVStore, tx SignedTx, chainID string) ([]stablecoin.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()
	signers := make([]stablecoin.Condition, len(sigs))
	for i, sig := range sigs {
		if signers[i], err = VerifySignature(db, sig, raw, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return signers, nil
}

// VerifySignature checks sig over signBytes and moves the sequence of the
// signer forward. The signer is stored on first use.
func VerifySignature(db stablecoin.KVStore, sig *StdSignature, signBytes []byte, chainID string) (stablecoin.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	key := PublicKey(sig.Pubkey)
	if !key.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	users := NewBucket()
	user, err := users.GetOrCreate(db, key)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := users.Save(db, user); err != nil {
		return nil, err
	}
	return key.Condition(), nil
}

// NextNonce is the sequence the next signature of signer must carry. An
// unknown signer starts at zero.
func NextNonce(db stablecoin.ReadOnlyKVStore, signer stablecoin.Address) (int64, error) {
	var user UserData
	err := NewBucket().One(db, signer, &user)
	if errors.ErrNotFound.Is(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "bucket")
	}
	return user.Sequence, nil
}
