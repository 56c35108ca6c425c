package control

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x"
)

// Payload is the type specific content of a request. The set of
// implementations is closed, each belongs to exactly one RequestType.
type Payload interface {
	Validate() error
	RequestType() RequestType

	payload()
}

var (
	_ Payload = (*TokenSupplyPayload)(nil)
	_ Payload = (*TransactionPayload)(nil)
	_ Payload = (*SignatoryPayload)(nil)
	_ Payload = (*ThresholdPayload)(nil)
	_ Payload = (*WhitelistPayload)(nil)
)

// TokenSupplyPayload mints to or burns from a wallet.
type TokenSupplyPayload struct {
	Amount uint64             `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
	Wallet stablecoin.Address `protobuf:"bytes,2,opt,name=wallet,proto3" json:"wallet,omitempty"`
}

func (m *TokenSupplyPayload) Reset()         { *m = TokenSupplyPayload{} }
func (m *TokenSupplyPayload) String() string { return proto.CompactTextString(m) }
func (*TokenSupplyPayload) ProtoMessage()    {}

func (*TokenSupplyPayload) payload()                 {}
func (*TokenSupplyPayload) RequestType() RequestType { return RequestTypeTokenSupply }

func (p *TokenSupplyPayload) Validate() error {
	if p.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "amount must be positive")
	}
	if err := p.Wallet.Validate(); err != nil {
		return errors.Wrap(err, "wallet")
	}
	return nil
}

// TransactionPayload carries nothing. The subtype of the request decides
// whether the ledger is paused or resumed.
type TransactionPayload struct{}

func (m *TransactionPayload) Reset()         { *m = TransactionPayload{} }
func (m *TransactionPayload) String() string { return proto.CompactTextString(m) }
func (*TransactionPayload) ProtoMessage()    {}

func (*TransactionPayload) payload()                 {}
func (*TransactionPayload) RequestType() RequestType { return RequestTypeTransaction }
func (*TransactionPayload) Validate() error          { return nil }

// SignatoryPayload lists the wallets added to or removed from the signatory
// set.
type SignatoryPayload struct {
	Wallets []stablecoin.Address `protobuf:"bytes,1,rep,name=wallets,proto3" json:"wallets,omitempty"`
}

func (m *SignatoryPayload) Reset()         { *m = SignatoryPayload{} }
func (m *SignatoryPayload) String() string { return proto.CompactTextString(m) }
func (*SignatoryPayload) ProtoMessage()    {}

func (*SignatoryPayload) payload()                 {}
func (*SignatoryPayload) RequestType() RequestType { return RequestTypeSignatory }

func (p *SignatoryPayload) Validate() error {
	return x.ValidateWallets(p.Wallets)
}

// ThresholdPayload replaces all thresholds of the target type. Values are
// indexed by subtype.
type ThresholdPayload struct {
	TargetType RequestType `protobuf:"varint,1,opt,name=target_type,json=targetType,proto3" json:"target_type,omitempty"`
	Thresholds []uint32    `protobuf:"varint,2,rep,packed,name=thresholds,proto3" json:"thresholds,omitempty"`
}

func (m *ThresholdPayload) Reset()         { *m = ThresholdPayload{} }
func (m *ThresholdPayload) String() string { return proto.CompactTextString(m) }
func (*ThresholdPayload) ProtoMessage()    {}

func (*ThresholdPayload) payload()                 {}
func (*ThresholdPayload) RequestType() RequestType { return RequestTypeThreshold }

// Validate checks the target type, then that there is one value per subtype
// of it, then that every value is at least one.
func (p *ThresholdPayload) Validate() error {
	if err := p.TargetType.Validate(); err != nil {
		return errors.Wrap(err, "target type")
	}
	if err := CheckThresholdCount(p.TargetType, p.Thresholds); err != nil {
		return err
	}
	return ValidateThresholds(p.Thresholds)
}

// ValidateThresholds returns an error if any value is below one.
func ValidateThresholds(values []uint32) error {
	for i, v := range values {
		if v < 1 {
			return errors.Wrapf(errors.ErrInvalidInput, "threshold %d must be at least 1", i)
		}
	}
	return nil
}

// CheckThresholdCount returns ErrInvalidThresholdCounts unless there is
// exactly one value per subtype of the target type.
func CheckThresholdCount(t RequestType, values []uint32) error {
	if want := SubtypeCount(t); len(values) != want {
		return errors.Wrapf(errors.ErrInvalidThresholdCounts,
			"%s needs %d thresholds, got %d", t, want, len(values))
	}
	return nil
}

// WhitelistPayload lists the wallets added to or removed from the whitelist.
type WhitelistPayload struct {
	Wallets []stablecoin.Address `protobuf:"bytes,1,rep,name=wallets,proto3" json:"wallets,omitempty"`
}

func (m *WhitelistPayload) Reset()         { *m = WhitelistPayload{} }
func (m *WhitelistPayload) String() string { return proto.CompactTextString(m) }
func (*WhitelistPayload) ProtoMessage()    {}

func (*WhitelistPayload) payload()                 {}
func (*WhitelistPayload) RequestType() RequestType { return RequestTypeWhitelist }

func (p *WhitelistPayload) Validate() error {
	return x.ValidateWallets(p.Wallets)
}
