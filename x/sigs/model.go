package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

const BucketName = "sigs"

// maxSequence is the greatest integer a javascript client represents
// exactly, Number.MAX_SAFE_INTEGER.
const maxSequence = 1<<53 - 1

// ErrInvalidSequence is returned for a signature whose sequence is not the
// one expected from its signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

// UserData is stored for every signer. Sequence is the value the next
// signature must carry.
type UserData struct {
	Pubkey   []byte `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64  `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case PublicKey(u.Pubkey).Validate() != nil:
		return errors.Wrap(errors.ErrInvalidModel, "pubkey")
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// CheckAndIncrementSequence moves the sequence forward when expected is the
// current value.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if expected != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", u.Sequence, expected)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

// Bucket keeps UserData by the address of the public key.
type Bucket struct {
	orm.ModelBucket
}

func NewBucket() Bucket {
	return Bucket{ModelBucket: orm.NewModelBucket(BucketName, &UserData{})}
}

// GetOrCreate returns the stored signer, or a new one at sequence zero.
func (b Bucket) GetOrCreate(db stablecoin.ReadOnlyKVStore, pubkey PublicKey) (*UserData, error) {
	var user UserData
	err := b.One(db, pubkey.Address(), &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	case err != nil:
		return nil, err
	}
	return &user, nil
}

func (b Bucket) Save(db stablecoin.KVStore, user *UserData) error {
	return b.Put(db, PublicKey(user.Pubkey).Address(), user)
}

// RegisterQuery serves the bucket under "/auth".
func RegisterQuery(qr stablecoin.QueryRouter) {
	NewBucket().Register("auth", qr)
}
