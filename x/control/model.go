package control

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// Request is a proposed privileged operation. Exactly one of the payload
// fields is set and it must match the type.
type Request struct {
	Type      RequestType          `protobuf:"varint,1,opt,name=type,proto3" json:"type"`
	Subtype   Subtype              `protobuf:"varint,2,opt,name=subtype,proto3" json:"subtype"`
	ID        uint64               `protobuf:"varint,3,opt,name=id,proto3" json:"id"`
	Creator   stablecoin.Address   `protobuf:"bytes,4,opt,name=creator,proto3" json:"creator"`
	Status    Status               `protobuf:"varint,5,opt,name=status,proto3" json:"status"`
	Approvals []stablecoin.Address `protobuf:"bytes,6,rep,name=approvals,proto3" json:"approvals,omitempty"`

	TokenSupply *TokenSupplyPayload `protobuf:"bytes,7,opt,name=token_supply,json=tokenSupply,proto3" json:"token_supply,omitempty"`
	Transaction *TransactionPayload `protobuf:"bytes,8,opt,name=transaction,proto3" json:"transaction,omitempty"`
	Signatory   *SignatoryPayload   `protobuf:"bytes,9,opt,name=signatory,proto3" json:"signatory,omitempty"`
	Threshold   *ThresholdPayload   `protobuf:"bytes,10,opt,name=threshold,proto3" json:"threshold,omitempty"`
	Whitelist   *WhitelistPayload   `protobuf:"bytes,11,opt,name=whitelist,proto3" json:"whitelist,omitempty"`
}

func (m *Request) Reset()         { *m = Request{} }
func (m *Request) String() string { return proto.CompactTextString(m) }
func (*Request) ProtoMessage()    {}

var _ orm.Model = (*Request)(nil)

// Payload returns the populated payload variant or nil if none is set.
func (r *Request) Payload() Payload {
	var set []Payload
	if r.TokenSupply != nil {
		set = append(set, r.TokenSupply)
	}
	if r.Transaction != nil {
		set = append(set, r.Transaction)
	}
	if r.Signatory != nil {
		set = append(set, r.Signatory)
	}
	if r.Threshold != nil {
		set = append(set, r.Threshold)
	}
	if r.Whitelist != nil {
		set = append(set, r.Whitelist)
	}
	if len(set) != 1 {
		return nil
	}
	return set[0]
}

// SetPayload replaces the payload and sets the request type to match it.
func (r *Request) SetPayload(p Payload) {
	r.TokenSupply = nil
	r.Transaction = nil
	r.Signatory = nil
	r.Threshold = nil
	r.Whitelist = nil

	switch p := p.(type) {
	case *TokenSupplyPayload:
		r.TokenSupply = p
	case *TransactionPayload:
		r.Transaction = p
	case *SignatoryPayload:
		r.Signatory = p
	case *ThresholdPayload:
		r.Threshold = p
	case *WhitelistPayload:
		r.Whitelist = p
	default:
		return
	}
	r.Type = p.RequestType()
}

// Validate checks the request record.
func (r *Request) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := ValidateSubtype(r.Type, r.Subtype); err != nil {
		return err
	}
	if err := r.Status.Validate(); err != nil {
		return err
	}
	if err := r.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	for i, a := range r.Approvals {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "approval %d", i)
		}
	}
	p := r.Payload()
	if p == nil {
		return errors.Wrap(errors.ErrInvalidModel, "exactly one payload must be set")
	}
	if p.RequestType() != r.Type {
		return errors.Wrapf(errors.ErrInvalidModel, "%s payload on a %s request", p.RequestType(), r.Type)
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "payload")
	}
	if r.Threshold != nil {
		return CheckThresholdCount(r.Threshold.TargetType, r.Threshold.Thresholds)
	}
	return nil
}

// Key returns the primary key of the request.
func (r *Request) Key() []byte {
	return RequestKey(r.Type, r.ID)
}

// RequestKey is the composite key of a request. Each type owns a separate id
// space, all requests of one type share the one byte prefix.
func RequestKey(t RequestType, id uint64) []byte {
	key := make([]byte, 9)
	key[0] = byte(t)
	binary.BigEndian.PutUint64(key[1:], id)
	return key
}

// TypePrefix returns the key prefix shared by all requests of a type.
func TypePrefix(t RequestType) []byte {
	return []byte{byte(t)}
}

const bucketName = "request"

func newRequestBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Request{})
}
