package sigs

import (
	"crypto/rand"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// ConditionExt and ConditionType name the condition of an ed25519 public
	// key. Its data is the raw public key.
	ConditionExt  = "sigs"
	ConditionType = "ed25519"
)

// Signer is anything that can produce a signature for a message with a key
// backing known public key.
type Signer interface {
	Sign(message []byte) ([]byte, error)
	PublicKey() PublicKey
}

// PublicKey is a raw ed25519 public key.
type PublicKey []byte

// Validate returns an error if the key is of the wrong size.
func (p PublicKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrUnauthorized, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

// Verify returns true if the signature was created by the private key
// matching this public key.
func (p PublicKey) Verify(message, sig []byte) bool {
	if p.Validate() != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Condition returns the condition fulfilled by a signature of this key.
func (p PublicKey) Condition() stablecoin.Condition {
	return stablecoin.NewCondition(ConditionExt, ConditionType, p)
}

// Address returns the address controlled by this key.
func (p PublicKey) Address() stablecoin.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key implementing Signer.
type PrivateKey struct {
	key ed25519.PrivateKey
}

var _ Signer = (*PrivateKey)(nil)

// GenPrivateKey creates a new random private key.
func GenPrivateKey() *PrivateKey {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{key: key}
}

// PrivateKeyFromSeed deterministically derives a private key from a 32 byte
// seed.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "seed must be %d bytes", ed25519.SeedSize)
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Seed returns the seed this key was derived from.
func (k *PrivateKey) Seed() []byte {
	return k.key.Seed()
}

func (k *PrivateKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.key, message), nil
}

func (k *PrivateKey) PublicKey() PublicKey {
	pub := k.key.Public().(ed25519.PublicKey)
	return PublicKey(pub)
}
