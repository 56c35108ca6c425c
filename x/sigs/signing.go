package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// SignCodeV1 starts every signed payload. A new layout gets a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

/*
BuildSignBytes returns the digest a signer signs for a transaction. The
chain id and sequence are part of it, so a signature cannot be replayed on
another chain or a second time on this one.

The digest is the sha512 sum of

	| sign code | chain id length | chain id | sequence          | transaction |
	| 4 bytes   | 1 byte          | ascii    | 8 bytes, big end. | sign bytes  |
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !stablecoin.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}

	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// SignTx signs tx with the sequence the signer is expected to use next.
func SignTx(signer Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: signer.PublicKey(), Signature: sig}, nil
}
