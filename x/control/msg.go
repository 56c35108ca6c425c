package control

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
)

const (
	pathCreateTokenSupplyRequestMsg = "control/create_token_supply"
	pathCreateTransactionRequestMsg = "control/create_transaction"
	pathCreateSignatoryRequestMsg   = "control/create_signatory"
	pathCreateThresholdRequestMsg   = "control/create_threshold"
	pathCreateWhitelistRequestMsg   = "control/create_whitelist"
	pathUpdateTokenSupplyRequestMsg = "control/update_token_supply"
	pathUpdateTransactionRequestMsg = "control/update_transaction"
	pathUpdateSignatoryRequestMsg   = "control/update_signatory"
	pathUpdateThresholdRequestMsg   = "control/update_threshold"
	pathUpdateWhitelistRequestMsg   = "control/update_whitelist"
	pathVoteMsg                     = "control/vote"
	pathExecuteMsg                  = "control/execute"
	pathCancelRequestMsg            = "control/cancel"
)

var (
	_ stablecoin.Msg = (*CreateTokenSupplyRequestMsg)(nil)
	_ stablecoin.Msg = (*CreateTransactionRequestMsg)(nil)
	_ stablecoin.Msg = (*CreateSignatoryRequestMsg)(nil)
	_ stablecoin.Msg = (*CreateThresholdRequestMsg)(nil)
	_ stablecoin.Msg = (*CreateWhitelistRequestMsg)(nil)
	_ stablecoin.Msg = (*UpdateTokenSupplyRequestMsg)(nil)
	_ stablecoin.Msg = (*UpdateTransactionRequestMsg)(nil)
	_ stablecoin.Msg = (*UpdateSignatoryRequestMsg)(nil)
	_ stablecoin.Msg = (*UpdateThresholdRequestMsg)(nil)
	_ stablecoin.Msg = (*UpdateWhitelistRequestMsg)(nil)
	_ stablecoin.Msg = (*VoteMsg)(nil)
	_ stablecoin.Msg = (*ExecuteMsg)(nil)
	_ stablecoin.Msg = (*CancelRequestMsg)(nil)
)

// CreateTokenSupplyRequestMsg proposes to mint to or burn from a wallet.
type CreateTokenSupplyRequestMsg struct {
	Subtype Subtype            `protobuf:"varint,1,opt,name=subtype,proto3" json:"subtype"`
	ID      uint64             `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Amount  uint64             `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
	Wallet  stablecoin.Address `protobuf:"bytes,4,opt,name=wallet,proto3" json:"wallet"`
}

func (m *CreateTokenSupplyRequestMsg) Reset()         { *m = CreateTokenSupplyRequestMsg{} }
func (m *CreateTokenSupplyRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CreateTokenSupplyRequestMsg) ProtoMessage()    {}

func (CreateTokenSupplyRequestMsg) Path() string {
	return pathCreateTokenSupplyRequestMsg
}

func (m *CreateTokenSupplyRequestMsg) Payload() Payload {
	return &TokenSupplyPayload{Amount: m.Amount, Wallet: m.Wallet}
}

func (m *CreateTokenSupplyRequestMsg) Validate() error {
	if err := ValidateSubtype(RequestTypeTokenSupply, m.Subtype); err != nil {
		return err
	}
	return m.Payload().Validate()
}

// CreateTransactionRequestMsg proposes to pause or resume the ledger.
type CreateTransactionRequestMsg struct {
	Subtype Subtype `protobuf:"varint,1,opt,name=subtype,proto3" json:"subtype"`
	ID      uint64  `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
}

func (m *CreateTransactionRequestMsg) Reset()         { *m = CreateTransactionRequestMsg{} }
func (m *CreateTransactionRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CreateTransactionRequestMsg) ProtoMessage()    {}

func (CreateTransactionRequestMsg) Path() string {
	return pathCreateTransactionRequestMsg
}

func (m *CreateTransactionRequestMsg) Validate() error {
	return ValidateSubtype(RequestTypeTransaction, m.Subtype)
}

// CreateSignatoryRequestMsg proposes to add or remove signatories.
type CreateSignatoryRequestMsg struct {
	Subtype Subtype              `protobuf:"varint,1,opt,name=subtype,proto3" json:"subtype"`
	ID      uint64               `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Wallets []stablecoin.Address `protobuf:"bytes,3,rep,name=wallets,proto3" json:"wallets"`
}

func (m *CreateSignatoryRequestMsg) Reset()         { *m = CreateSignatoryRequestMsg{} }
func (m *CreateSignatoryRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CreateSignatoryRequestMsg) ProtoMessage()    {}

func (CreateSignatoryRequestMsg) Path() string {
	return pathCreateSignatoryRequestMsg
}

func (m *CreateSignatoryRequestMsg) Validate() error {
	if err := ValidateSubtype(RequestTypeSignatory, m.Subtype); err != nil {
		return err
	}
	return (&SignatoryPayload{Wallets: m.Wallets}).Validate()
}

// CreateThresholdRequestMsg proposes new quorums for all subtypes of the
// target type.
type CreateThresholdRequestMsg struct {
	ID         uint64      `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	TargetType RequestType `protobuf:"varint,2,opt,name=target_type,json=targetType,proto3" json:"target_type"`
	Thresholds []uint32    `protobuf:"varint,3,rep,packed,name=thresholds,proto3" json:"thresholds"`
}

func (m *CreateThresholdRequestMsg) Reset()         { *m = CreateThresholdRequestMsg{} }
func (m *CreateThresholdRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CreateThresholdRequestMsg) ProtoMessage()    {}

func (CreateThresholdRequestMsg) Path() string {
	return pathCreateThresholdRequestMsg
}

func (m *CreateThresholdRequestMsg) Payload() *ThresholdPayload {
	return &ThresholdPayload{TargetType: m.TargetType, Thresholds: m.Thresholds}
}

// Validate does not check the number of thresholds, a mismatch is reported
// by the handler as ErrInvalidThresholdCounts.
func (m *CreateThresholdRequestMsg) Validate() error {
	return m.Payload().Validate()
}

// CreateWhitelistRequestMsg proposes to add or remove whitelisted wallets.
type CreateWhitelistRequestMsg struct {
	Subtype Subtype              `protobuf:"varint,1,opt,name=subtype,proto3" json:"subtype"`
	ID      uint64               `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Wallets []stablecoin.Address `protobuf:"bytes,3,rep,name=wallets,proto3" json:"wallets"`
}

func (m *CreateWhitelistRequestMsg) Reset()         { *m = CreateWhitelistRequestMsg{} }
func (m *CreateWhitelistRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CreateWhitelistRequestMsg) ProtoMessage()    {}

func (CreateWhitelistRequestMsg) Path() string {
	return pathCreateWhitelistRequestMsg
}

func (m *CreateWhitelistRequestMsg) Validate() error {
	if err := ValidateSubtype(RequestTypeWhitelist, m.Subtype); err != nil {
		return err
	}
	return (&WhitelistPayload{Wallets: m.Wallets}).Validate()
}

// UpdateTokenSupplyRequestMsg replaces the amount and wallet of a token
// supply request. The subtype is kept.
type UpdateTokenSupplyRequestMsg struct {
	ID     uint64             `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Amount uint64             `protobuf:"varint,2,opt,name=amount,proto3" json:"amount"`
	Wallet stablecoin.Address `protobuf:"bytes,3,opt,name=wallet,proto3" json:"wallet"`
}

func (m *UpdateTokenSupplyRequestMsg) Reset()         { *m = UpdateTokenSupplyRequestMsg{} }
func (m *UpdateTokenSupplyRequestMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateTokenSupplyRequestMsg) ProtoMessage()    {}

func (UpdateTokenSupplyRequestMsg) Path() string {
	return pathUpdateTokenSupplyRequestMsg
}

func (m *UpdateTokenSupplyRequestMsg) Payload() Payload {
	return &TokenSupplyPayload{Amount: m.Amount, Wallet: m.Wallet}
}

func (m *UpdateTokenSupplyRequestMsg) Validate() error {
	return m.Payload().Validate()
}

// UpdateTransactionRequestMsg changes whether a transaction request pauses
// or resumes the ledger.
type UpdateTransactionRequestMsg struct {
	ID      uint64  `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Subtype Subtype `protobuf:"varint,2,opt,name=subtype,proto3" json:"subtype"`
}

func (m *UpdateTransactionRequestMsg) Reset()         { *m = UpdateTransactionRequestMsg{} }
func (m *UpdateTransactionRequestMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateTransactionRequestMsg) ProtoMessage()    {}

func (UpdateTransactionRequestMsg) Path() string {
	return pathUpdateTransactionRequestMsg
}

func (m *UpdateTransactionRequestMsg) Validate() error {
	return ValidateSubtype(RequestTypeTransaction, m.Subtype)
}

// UpdateSignatoryRequestMsg replaces the wallets of a signatory request.
type UpdateSignatoryRequestMsg struct {
	ID      uint64               `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Wallets []stablecoin.Address `protobuf:"bytes,2,rep,name=wallets,proto3" json:"wallets"`
}

func (m *UpdateSignatoryRequestMsg) Reset()         { *m = UpdateSignatoryRequestMsg{} }
func (m *UpdateSignatoryRequestMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateSignatoryRequestMsg) ProtoMessage()    {}

func (UpdateSignatoryRequestMsg) Path() string {
	return pathUpdateSignatoryRequestMsg
}

func (m *UpdateSignatoryRequestMsg) Payload() Payload {
	return &SignatoryPayload{Wallets: m.Wallets}
}

func (m *UpdateSignatoryRequestMsg) Validate() error {
	return m.Payload().Validate()
}

// UpdateThresholdRequestMsg replaces the quorums of a threshold request.
// The target type is kept.
type UpdateThresholdRequestMsg struct {
	ID         uint64   `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Thresholds []uint32 `protobuf:"varint,2,rep,packed,name=thresholds,proto3" json:"thresholds"`
}

func (m *UpdateThresholdRequestMsg) Reset()         { *m = UpdateThresholdRequestMsg{} }
func (m *UpdateThresholdRequestMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateThresholdRequestMsg) ProtoMessage()    {}

func (UpdateThresholdRequestMsg) Path() string {
	return pathUpdateThresholdRequestMsg
}

func (m *UpdateThresholdRequestMsg) Payload() Payload {
	return &ThresholdPayload{Thresholds: m.Thresholds}
}

// Validate accepts any values. They can only be checked against the target
// type stored with the request, which Controller.Update does.
func (m *UpdateThresholdRequestMsg) Validate() error {
	return nil
}

// UpdateWhitelistRequestMsg replaces the wallets of a whitelist request.
type UpdateWhitelistRequestMsg struct {
	ID      uint64               `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	Wallets []stablecoin.Address `protobuf:"bytes,2,rep,name=wallets,proto3" json:"wallets"`
}

func (m *UpdateWhitelistRequestMsg) Reset()         { *m = UpdateWhitelistRequestMsg{} }
func (m *UpdateWhitelistRequestMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateWhitelistRequestMsg) ProtoMessage()    {}

func (UpdateWhitelistRequestMsg) Path() string {
	return pathUpdateWhitelistRequestMsg
}

func (m *UpdateWhitelistRequestMsg) Payload() Payload {
	return &WhitelistPayload{Wallets: m.Wallets}
}

func (m *UpdateWhitelistRequestMsg) Validate() error {
	return m.Payload().Validate()
}

// VoteMsg approves a request or withdraws an approval.
type VoteMsg struct {
	Type    RequestType `protobuf:"varint,1,opt,name=type,proto3" json:"type"`
	ID      uint64      `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
	Approve bool        `protobuf:"varint,3,opt,name=approve,proto3" json:"approve"`
}

func (m *VoteMsg) Reset()         { *m = VoteMsg{} }
func (m *VoteMsg) String() string { return proto.CompactTextString(m) }
func (*VoteMsg) ProtoMessage()    {}

func (VoteMsg) Path() string {
	return pathVoteMsg
}

func (m *VoteMsg) Validate() error {
	return m.Type.Validate()
}

// ExecuteMsg applies an accepted request.
type ExecuteMsg struct {
	Type RequestType `protobuf:"varint,1,opt,name=type,proto3" json:"type"`
	ID   uint64      `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

func (ExecuteMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteMsg) Validate() error {
	return m.Type.Validate()
}

// CancelRequestMsg terminates a request that was not executed.
type CancelRequestMsg struct {
	Type RequestType `protobuf:"varint,1,opt,name=type,proto3" json:"type"`
	ID   uint64      `protobuf:"varint,2,opt,name=id,proto3" json:"id"`
}

func (m *CancelRequestMsg) Reset()         { *m = CancelRequestMsg{} }
func (m *CancelRequestMsg) String() string { return proto.CompactTextString(m) }
func (*CancelRequestMsg) ProtoMessage()    {}

func (CancelRequestMsg) Path() string {
	return pathCancelRequestMsg
}

func (m *CancelRequestMsg) Validate() error {
	return m.Type.Validate()
}
