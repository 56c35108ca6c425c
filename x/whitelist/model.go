package whitelist

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// Member is a whitelisted address. It is stored under its own address.
type Member struct {
	Address stablecoin.Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
}

func (m *Member) Reset()         { *m = Member{} }
func (m *Member) String() string { return proto.CompactTextString(m) }
func (*Member) ProtoMessage()    {}

var _ orm.Model = (*Member)(nil)

func (m *Member) Validate() error {
	if err := m.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

const bucketName = "whitelist"

func newMemberBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Member{})
}
