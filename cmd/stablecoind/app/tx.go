package stablecoind

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x/control"
	"github.com/iov-one/stablecoin/x/ledger"
	"github.com/iov-one/stablecoin/x/signatory"
	"github.com/iov-one/stablecoin/x/sigs"
)

// Tx is the transaction format of the application. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures,omitempty"`

	CreateTokenSupplyRequestMsg *control.CreateTokenSupplyRequestMsg `protobuf:"bytes,10,opt,name=create_token_supply_request_msg" json:"create_token_supply_request_msg,omitempty"`
	CreateTransactionRequestMsg *control.CreateTransactionRequestMsg `protobuf:"bytes,11,opt,name=create_transaction_request_msg" json:"create_transaction_request_msg,omitempty"`
	CreateSignatoryRequestMsg   *control.CreateSignatoryRequestMsg   `protobuf:"bytes,12,opt,name=create_signatory_request_msg" json:"create_signatory_request_msg,omitempty"`
	CreateThresholdRequestMsg   *control.CreateThresholdRequestMsg   `protobuf:"bytes,13,opt,name=create_threshold_request_msg" json:"create_threshold_request_msg,omitempty"`
	CreateWhitelistRequestMsg   *control.CreateWhitelistRequestMsg   `protobuf:"bytes,14,opt,name=create_whitelist_request_msg" json:"create_whitelist_request_msg,omitempty"`
	UpdateTokenSupplyRequestMsg *control.UpdateTokenSupplyRequestMsg `protobuf:"bytes,15,opt,name=update_token_supply_request_msg" json:"update_token_supply_request_msg,omitempty"`
	UpdateTransactionRequestMsg *control.UpdateTransactionRequestMsg `protobuf:"bytes,16,opt,name=update_transaction_request_msg" json:"update_transaction_request_msg,omitempty"`
	UpdateSignatoryRequestMsg   *control.UpdateSignatoryRequestMsg   `protobuf:"bytes,17,opt,name=update_signatory_request_msg" json:"update_signatory_request_msg,omitempty"`
	UpdateThresholdRequestMsg   *control.UpdateThresholdRequestMsg   `protobuf:"bytes,18,opt,name=update_threshold_request_msg" json:"update_threshold_request_msg,omitempty"`
	UpdateWhitelistRequestMsg   *control.UpdateWhitelistRequestMsg   `protobuf:"bytes,19,opt,name=update_whitelist_request_msg" json:"update_whitelist_request_msg,omitempty"`
	VoteMsg                     *control.VoteMsg                     `protobuf:"bytes,20,opt,name=vote_msg" json:"vote_msg,omitempty"`
	ExecuteMsg                  *control.ExecuteMsg                  `protobuf:"bytes,21,opt,name=execute_msg" json:"execute_msg,omitempty"`
	CancelRequestMsg            *control.CancelRequestMsg            `protobuf:"bytes,22,opt,name=cancel_request_msg" json:"cancel_request_msg,omitempty"`

	TransferMsg          *ledger.TransferMsg          `protobuf:"bytes,30,opt,name=transfer_msg" json:"transfer_msg,omitempty"`
	ApproveMsg           *ledger.ApproveMsg           `protobuf:"bytes,31,opt,name=approve_msg" json:"approve_msg,omitempty"`
	TransferFromMsg      *ledger.TransferFromMsg      `protobuf:"bytes,32,opt,name=transfer_from_msg" json:"transfer_from_msg,omitempty"`
	IncreaseAllowanceMsg *ledger.IncreaseAllowanceMsg `protobuf:"bytes,33,opt,name=increase_allowance_msg" json:"increase_allowance_msg,omitempty"`
	DecreaseAllowanceMsg *ledger.DecreaseAllowanceMsg `protobuf:"bytes,34,opt,name=decrease_allowance_msg" json:"decrease_allowance_msg,omitempty"`

	TransferOwnershipMsg *signatory.TransferOwnershipMsg `protobuf:"bytes,40,opt,name=transfer_ownership_msg" json:"transfer_ownership_msg,omitempty"`
	RenounceOwnershipMsg *signatory.RenounceOwnershipMsg `protobuf:"bytes,41,opt,name=renounce_ownership_msg" json:"renounce_ownership_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ stablecoin.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (stablecoin.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot decode transaction: %s", err)
	}
	return tx, nil
}

func (tx *Tx) messages() []stablecoin.Msg {
	return []stablecoin.Msg{
		tx.CreateTokenSupplyRequestMsg,
		tx.CreateTransactionRequestMsg,
		tx.CreateSignatoryRequestMsg,
		tx.CreateThresholdRequestMsg,
		tx.CreateWhitelistRequestMsg,
		tx.UpdateTokenSupplyRequestMsg,
		tx.UpdateTransactionRequestMsg,
		tx.UpdateSignatoryRequestMsg,
		tx.UpdateThresholdRequestMsg,
		tx.UpdateWhitelistRequestMsg,
		tx.VoteMsg,
		tx.ExecuteMsg,
		tx.CancelRequestMsg,
		tx.TransferMsg,
		tx.ApproveMsg,
		tx.TransferFromMsg,
		tx.IncreaseAllowanceMsg,
		tx.DecreaseAllowanceMsg,
		tx.TransferOwnershipMsg,
		tx.RenounceOwnershipMsg,
	}
}

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (stablecoin.Msg, error) {
	var found stablecoin.Msg
	for _, m := range tx.messages() {
		if reflect.ValueOf(m).IsNil() {
			continue
		}
		if found != nil {
			return nil, errors.Wrap(errors.ErrInvalidMsg, "more than one message")
		}
		found = m
	}
	if found == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return found, nil
}

// SetMsg puts the message into its field, replacing any message that was
// set before.
func (tx *Tx) SetMsg(msg stablecoin.Msg) error {
	signatures := tx.Signatures
	tx.Reset()
	tx.Signatures = signatures

	switch m := msg.(type) {
	case *control.CreateTokenSupplyRequestMsg:
		tx.CreateTokenSupplyRequestMsg = m
	case *control.CreateTransactionRequestMsg:
		tx.CreateTransactionRequestMsg = m
	case *control.CreateSignatoryRequestMsg:
		tx.CreateSignatoryRequestMsg = m
	case *control.CreateThresholdRequestMsg:
		tx.CreateThresholdRequestMsg = m
	case *control.CreateWhitelistRequestMsg:
		tx.CreateWhitelistRequestMsg = m
	case *control.UpdateTokenSupplyRequestMsg:
		tx.UpdateTokenSupplyRequestMsg = m
	case *control.UpdateTransactionRequestMsg:
		tx.UpdateTransactionRequestMsg = m
	case *control.UpdateSignatoryRequestMsg:
		tx.UpdateSignatoryRequestMsg = m
	case *control.UpdateThresholdRequestMsg:
		tx.UpdateThresholdRequestMsg = m
	case *control.UpdateWhitelistRequestMsg:
		tx.UpdateWhitelistRequestMsg = m
	case *control.VoteMsg:
		tx.VoteMsg = m
	case *control.ExecuteMsg:
		tx.ExecuteMsg = m
	case *control.CancelRequestMsg:
		tx.CancelRequestMsg = m
	case *ledger.TransferMsg:
		tx.TransferMsg = m
	case *ledger.ApproveMsg:
		tx.ApproveMsg = m
	case *ledger.TransferFromMsg:
		tx.TransferFromMsg = m
	case *ledger.IncreaseAllowanceMsg:
		tx.IncreaseAllowanceMsg = m
	case *ledger.DecreaseAllowanceMsg:
		tx.DecreaseAllowanceMsg = m
	case *signatory.TransferOwnershipMsg:
		tx.TransferOwnershipMsg = m
	case *signatory.RenounceOwnershipMsg:
		tx.RenounceOwnershipMsg = m
	default:
		return errors.Wrapf(errors.ErrInvalidType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := proto.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}
