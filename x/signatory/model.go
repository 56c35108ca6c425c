package signatory

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// Registry is the persisted state of the signatory set.
type Registry struct {
	// Owner is implicitly authorized. It is empty once ownership was
	// renounced.
	Owner stablecoin.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// Signatories are kept in insertion order.
	Signatories []stablecoin.Address `protobuf:"bytes,2,rep,name=signatories,proto3" json:"signatories,omitempty"`
}

func (m *Registry) Reset()         { *m = Registry{} }
func (m *Registry) String() string { return proto.CompactTextString(m) }
func (*Registry) ProtoMessage()    {}

var _ orm.Model = (*Registry)(nil)

// Validate ensures all addresses are valid and signatories are distinct.
func (r *Registry) Validate() error {
	if len(r.Owner) != 0 {
		if err := r.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	seen := make(map[string]struct{}, len(r.Signatories))
	for i, s := range r.Signatories {
		if err := s.Validate(); err != nil {
			return errors.Wrapf(err, "signatory %d", i)
		}
		if _, ok := seen[string(s)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "signatory %s", s)
		}
		seen[string(s)] = struct{}{}
	}
	return nil
}

// IsAuthorized returns true if the address is the owner or a signatory.
func (r *Registry) IsAuthorized(addr stablecoin.Address) bool {
	if len(addr) == 0 {
		return false
	}
	if r.Owner.Equals(addr) {
		return true
	}
	return r.indexOf(addr) >= 0
}

func (r *Registry) indexOf(addr stablecoin.Address) int {
	for i, s := range r.Signatories {
		if s.Equals(addr) {
			return i
		}
	}
	return -1
}

const bucketName = "signatory"

var registryKey = []byte("registry")

func newRegistryBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Registry{})
}
