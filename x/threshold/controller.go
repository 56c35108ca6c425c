package threshold

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
	"github.com/iov-one/stablecoin/x/control"
)

// Controller owns the threshold table.
type Controller struct {
	bucket orm.ModelBucket
}

var _ control.Thresholds = (*Controller)(nil)

// NewController returns a controller of the threshold table.
func NewController() *Controller {
	return &Controller{bucket: newThresholdBucket()}
}

func (c *Controller) load(db stablecoin.ReadOnlyKVStore, t control.RequestType) (*Thresholds, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var th Thresholds
	switch err := c.bucket.One(db, typeKey(t), &th); {
	case err == nil:
		return &th, nil
	case errors.ErrNotFound.Is(err):
		return defaults(t), nil
	default:
		return nil, errors.Wrapf(err, "cannot load %s thresholds", t)
	}
}

// Get returns the quorum of a request type and subtype.
func (c *Controller) Get(db stablecoin.ReadOnlyKVStore, t control.RequestType, s control.Subtype) (uint32, error) {
	if err := control.ValidateSubtype(t, s); err != nil {
		return 0, err
	}
	th, err := c.load(db, t)
	if err != nil {
		return 0, err
	}
	return th.Values[s], nil
}

// All returns the quorums of every subtype of a type, indexed by subtype.
func (c *Controller) All(db stablecoin.ReadOnlyKVStore, t control.RequestType) ([]uint32, error) {
	th, err := c.load(db, t)
	if err != nil {
		return nil, err
	}
	return th.Values, nil
}

// Set replaces all quorums of a type. There must be exactly one value per
// subtype and each must be at least one, otherwise nothing is written.
func (c *Controller) Set(db stablecoin.KVStore, t control.RequestType, values []uint32) error {
	th := &Thresholds{Type: t, Values: append([]uint32(nil), values...)}
	if err := th.Validate(); err != nil {
		return errors.Wrapf(err, "%s thresholds", t)
	}
	return c.bucket.Put(db, typeKey(t), th)
}
