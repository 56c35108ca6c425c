package signatory

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

const (
	pathTransferOwnershipMsg = "signatory/transfer_ownership"
	pathRenounceOwnershipMsg = "signatory/renounce_ownership"
)

// TransferOwnershipMsg makes another address the owner.
type TransferOwnershipMsg struct {
	NewOwner stablecoin.Address `protobuf:"bytes,1,opt,name=new_owner,json=newOwner,proto3" json:"new_owner,omitempty"`
}

func (m *TransferOwnershipMsg) Reset()         { *m = TransferOwnershipMsg{} }
func (m *TransferOwnershipMsg) String() string { return proto.CompactTextString(m) }
func (*TransferOwnershipMsg) ProtoMessage()    {}

var _ stablecoin.Msg = (*TransferOwnershipMsg)(nil)

func (TransferOwnershipMsg) Path() string {
	return pathTransferOwnershipMsg
}

func (m *TransferOwnershipMsg) Validate() error {
	if err := m.NewOwner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	return nil
}

// RenounceOwnershipMsg leaves the registry without an owner.
type RenounceOwnershipMsg struct{}

func (m *RenounceOwnershipMsg) Reset()         { *m = RenounceOwnershipMsg{} }
func (m *RenounceOwnershipMsg) String() string { return proto.CompactTextString(m) }
func (*RenounceOwnershipMsg) ProtoMessage()    {}

var _ stablecoin.Msg = (*RenounceOwnershipMsg)(nil)

func (RenounceOwnershipMsg) Path() string {
	return pathRenounceOwnershipMsg
}

func (*RenounceOwnershipMsg) Validate() error {
	return nil
}
