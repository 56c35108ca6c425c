package threshold

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
	"github.com/iov-one/stablecoin/x/control"
)

// DefaultThreshold is the quorum of a subtype that was never configured.
const DefaultThreshold uint32 = 1

// Thresholds holds the quorums of one request type, indexed by subtype.
type Thresholds struct {
	Type   control.RequestType `protobuf:"varint,1,opt,name=type,proto3" json:"type"`
	Values []uint32            `protobuf:"varint,2,rep,packed,name=values,proto3" json:"values"`
}

func (m *Thresholds) Reset()         { *m = Thresholds{} }
func (m *Thresholds) String() string { return proto.CompactTextString(m) }
func (*Thresholds) ProtoMessage()    {}

var _ orm.Model = (*Thresholds)(nil)

func (t *Thresholds) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := control.CheckThresholdCount(t.Type, t.Values); err != nil {
		return err
	}
	if err := control.ValidateThresholds(t.Values); err != nil {
		return errors.Wrap(err, "values")
	}
	return nil
}

// defaults returns the thresholds of a type that was never configured.
func defaults(t control.RequestType) *Thresholds {
	values := make([]uint32, control.SubtypeCount(t))
	for i := range values {
		values[i] = DefaultThreshold
	}
	return &Thresholds{Type: t, Values: values}
}

const bucketName = "threshold"

func newThresholdBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Thresholds{})
}

func typeKey(t control.RequestType) []byte {
	return []byte{byte(t)}
}
