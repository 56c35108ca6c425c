package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

const (
	pathTransferMsg          = "ledger/transfer"
	pathApproveMsg           = "ledger/approve"
	pathTransferFromMsg      = "ledger/transfer_from"
	pathIncreaseAllowanceMsg = "ledger/increase_allowance"
	pathDecreaseAllowanceMsg = "ledger/decrease_allowance"
)

var (
	_ stablecoin.Msg = (*TransferMsg)(nil)
	_ stablecoin.Msg = (*ApproveMsg)(nil)
	_ stablecoin.Msg = (*TransferFromMsg)(nil)
	_ stablecoin.Msg = (*IncreaseAllowanceMsg)(nil)
	_ stablecoin.Msg = (*DecreaseAllowanceMsg)(nil)
)

// TransferMsg moves tokens of the signer to another account.
type TransferMsg struct {
	To     stablecoin.Address `protobuf:"bytes,1,opt,name=to,proto3" json:"to"`
	Amount uint64             `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return nil
}

// ApproveMsg sets the allowance of a spender over the signer's tokens.
type ApproveMsg struct {
	Spender stablecoin.Address `protobuf:"bytes,1,opt,name=spender,proto3" json:"spender"`
	Amount  uint64             `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *ApproveMsg) Reset()         { *m = ApproveMsg{} }
func (m *ApproveMsg) String() string { return proto.CompactTextString(m) }
func (*ApproveMsg) ProtoMessage()    {}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	return nil
}

// TransferFromMsg moves tokens of another account using the allowance it
// granted the signer.
type TransferFromMsg struct {
	From   stablecoin.Address `protobuf:"bytes,1,opt,name=from,proto3" json:"from"`
	To     stablecoin.Address `protobuf:"bytes,2,opt,name=to,proto3" json:"to"`
	Amount uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

func (m *TransferFromMsg) Reset()         { *m = TransferFromMsg{} }
func (m *TransferFromMsg) String() string { return proto.CompactTextString(m) }
func (*TransferFromMsg) ProtoMessage()    {}

func (TransferFromMsg) Path() string {
	return pathTransferFromMsg
}

func (m *TransferFromMsg) Validate() error {
	if err := m.From.Validate(); err != nil {
		return errors.Wrap(err, "from")
	}
	if err := m.To.Validate(); err != nil {
		return errors.Wrap(err, "to")
	}
	return nil
}

// IncreaseAllowanceMsg raises the allowance of a spender.
type IncreaseAllowanceMsg struct {
	Spender stablecoin.Address `protobuf:"bytes,1,opt,name=spender,proto3" json:"spender"`
	Amount  uint64             `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *IncreaseAllowanceMsg) Reset()         { *m = IncreaseAllowanceMsg{} }
func (m *IncreaseAllowanceMsg) String() string { return proto.CompactTextString(m) }
func (*IncreaseAllowanceMsg) ProtoMessage()    {}

func (IncreaseAllowanceMsg) Path() string {
	return pathIncreaseAllowanceMsg
}

func (m *IncreaseAllowanceMsg) Validate() error {
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return nil
}

// DecreaseAllowanceMsg lowers the allowance of a spender.
type DecreaseAllowanceMsg struct {
	Spender stablecoin.Address `protobuf:"bytes,1,opt,name=spender,proto3" json:"spender"`
	Amount  uint64             `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
}

func (m *DecreaseAllowanceMsg) Reset()         { *m = DecreaseAllowanceMsg{} }
func (m *DecreaseAllowanceMsg) String() string { return proto.CompactTextString(m) }
func (*DecreaseAllowanceMsg) ProtoMessage()    {}

func (DecreaseAllowanceMsg) Path() string {
	return pathDecreaseAllowanceMsg
}

func (m *DecreaseAllowanceMsg) Validate() error {
	if err := m.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	return nil
}
