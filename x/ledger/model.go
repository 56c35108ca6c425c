package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// Token is the metadata of the token.
type Token struct {
	Name     string `protobuf:"bytes,1,opt,name=name,proto3" json:"name"`
	Symbol   string `protobuf:"bytes,2,opt,name=symbol,proto3" json:"symbol"`
	Decimals uint32 `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return proto.CompactTextString(m) }
func (*Token) ProtoMessage()    {}

// DefaultToken is used until genesis configures the token.
func DefaultToken() *Token {
	return &Token{Name: "StableToken", Symbol: "ST", Decimals: 6}
}

// maxDecimals keeps 10^decimals within uint64.
const maxDecimals = 18

func (t *Token) Validate() error {
	if t.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if t.Symbol == "" {
		return errors.Wrap(errors.ErrEmpty, "symbol")
	}
	if t.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInvalidInput, "at most %d decimals", maxDecimals)
	}
	return nil
}

// Balance is the amount held by an address.
type Balance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount"`
}

func (m *Balance) Reset()         { *m = Balance{} }
func (m *Balance) String() string { return proto.CompactTextString(m) }
func (*Balance) ProtoMessage()    {}
func (*Balance) Validate() error  { return nil }

// Allowance is the amount a spender may move on behalf of an owner.
type Allowance struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount"`
}

func (m *Allowance) Reset()         { *m = Allowance{} }
func (m *Allowance) String() string { return proto.CompactTextString(m) }
func (*Allowance) ProtoMessage()    {}
func (*Allowance) Validate() error  { return nil }

// Supply is the total amount of tokens in existence.
type Supply struct {
	Total uint64 `protobuf:"varint,1,opt,name=total,proto3" json:"total"`
}

func (m *Supply) Reset()         { *m = Supply{} }
func (m *Supply) String() string { return proto.CompactTextString(m) }
func (*Supply) ProtoMessage()    {}
func (*Supply) Validate() error  { return nil }

// PauseState tells whether token movements are suspended.
type PauseState struct {
	Paused bool `protobuf:"varint,1,opt,name=paused,proto3" json:"paused"`
}

func (m *PauseState) Reset()         { *m = PauseState{} }
func (m *PauseState) String() string { return proto.CompactTextString(m) }
func (*PauseState) ProtoMessage()    {}
func (*PauseState) Validate() error  { return nil }

// Policy holds the ledger settings that are fixed at genesis.
type Policy struct {
	EnforceWhitelist bool `protobuf:"varint,1,opt,name=enforce_whitelist,json=enforceWhitelist,proto3" json:"enforce_whitelist"`
}

func (m *Policy) Reset()         { *m = Policy{} }
func (m *Policy) String() string { return proto.CompactTextString(m) }
func (*Policy) ProtoMessage()    {}
func (*Policy) Validate() error  { return nil }

var (
	_ orm.Model = (*Token)(nil)
	_ orm.Model = (*Balance)(nil)
	_ orm.Model = (*Allowance)(nil)
	_ orm.Model = (*Supply)(nil)
	_ orm.Model = (*PauseState)(nil)
	_ orm.Model = (*Policy)(nil)
)

// TreasuryAddress is the account of the ledger itself. Tokens held by it
// can be burned by any executor without an allowance.
var TreasuryAddress = stablecoin.NewCondition("ledger", "treasury", []byte("token")).Address()

// singletonKey is the key of every single record bucket.
var singletonKey = []byte("state")

// allowanceKey is the owner address followed by the spender address, so
// that all allowances of an owner share a prefix.
func allowanceKey(owner, spender stablecoin.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}

type buckets struct {
	token     orm.ModelBucket
	balance   orm.ModelBucket
	allowance orm.ModelBucket
	supply    orm.ModelBucket
	pause     orm.ModelBucket
	policy    orm.ModelBucket
}

func newBuckets() buckets {
	return buckets{
		token:     orm.NewModelBucket("token", &Token{}),
		balance:   orm.NewModelBucket("balance", &Balance{}),
		allowance: orm.NewModelBucket("allowance", &Allowance{}),
		supply:    orm.NewModelBucket("supply", &Supply{}),
		pause:     orm.NewModelBucket("pause", &PauseState{}),
		policy:    orm.NewModelBucket("policy", &Policy{}),
	}
}
