package control

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/orm"
)

// Events emitted by the request lifecycle.
const (
	EventRequestCreated     = "RequestCreated"
	EventRequestUpdated     = "RequestUpdated"
	EventRequestCancelled   = "RequestCancelled"
	EventRequestApproval    = "RequestApproval"
	EventSignatoriesUpdated = "SignatoriesUpdated"
	EventThresholdUpdated   = "ThresholdUpdated"
	EventWhitelistUpdated   = "WhitelistUpdated"
)

// Controller owns all control requests. It is the only component that
// writes to the request bucket.
type Controller struct {
	bucket      orm.ModelBucket
	signatories Signatories
	thresholds  Thresholds
	ledger      Ledger
	whitelist   Whitelist
}

// NewController returns a controller that authorizes callers with the
// signatories, counts votes against the thresholds and applies executed
// requests to the given components.
func NewController(s Signatories, t Thresholds, l Ledger, w Whitelist) *Controller {
	return &Controller{
		bucket:      newRequestBucket(),
		signatories: s,
		thresholds:  t,
		ledger:      l,
		whitelist:   w,
	}
}

func (c *Controller) authorize(db stablecoin.ReadOnlyKVStore, caller stablecoin.Address) error {
	ok, err := c.signatories.IsAuthorized(db, caller)
	if err != nil {
		return errors.Wrap(err, "cannot check authorization")
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not a signatory", caller)
	}
	return nil
}

// Create stores a new request of the payload type. The caller becomes the
// creator of the request.
func (c *Controller) Create(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, subtype Subtype, id uint64, p Payload) (*Request, error) {
	if err := c.authorize(db, caller); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "payload")
	}
	t := p.RequestType()
	if err := ValidateSubtype(t, subtype); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "payload")
	}
	key := RequestKey(t, id)
	if c.bucket.Has(db, key) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "%s request %d", t, id)
	}

	req := &Request{
		Subtype: subtype,
		ID:      id,
		Creator: caller,
		Status:  StatusInProgress,
	}
	req.SetPayload(p)
	if err := c.bucket.Put(db, key, req); err != nil {
		return nil, err
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventRequestCreated).
		With("reqType", uint32(t)).
		With("subType", uint32(subtype)).
		With("owner", caller).
		With("reqId", id))
	return req, nil
}

// Get returns the request of a type with the given id.
func (c *Controller) Get(db stablecoin.ReadOnlyKVStore, t RequestType, id uint64) (*Request, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var req Request
	if err := c.bucket.One(db, RequestKey(t, id), &req); err != nil {
		return nil, errors.Wrapf(err, "%s request %d", t, id)
	}
	return &req, nil
}

// List returns all requests of a type ordered by id.
func (c *Controller) List(db stablecoin.ReadOnlyKVStore, t RequestType) ([]*Request, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var reqs []*Request
	if _, err := c.bucket.ByPrefix(db, TypePrefix(t), &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// loadOwn returns a request that the caller created.
func (c *Controller) loadOwn(db stablecoin.ReadOnlyKVStore, caller stablecoin.Address, t RequestType, id uint64) (*Request, error) {
	req, err := c.Get(db, t, id)
	if err != nil {
		return nil, err
	}
	if !req.Creator.Equals(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the creator can change the request")
	}
	return req, nil
}

// Update replaces the payload of a request that is still in progress.
// Approvals already cast are kept. A threshold update keeps the target type
// of the request.
func (c *Controller) Update(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, id uint64, p Payload) error {
	if p == nil {
		return errors.Wrap(errors.ErrEmpty, "payload")
	}
	t := p.RequestType()
	req, err := c.loadOwn(db, caller, t, id)
	if err != nil {
		return err
	}
	if req.Status != StatusInProgress {
		return errors.Wrapf(errors.ErrInvalidState, "cannot update %s request", req.Status)
	}
	if tp, ok := p.(*ThresholdPayload); ok {
		// the target type is fixed at creation
		p = &ThresholdPayload{TargetType: req.Threshold.TargetType, Thresholds: tp.Thresholds}
	}
	if err := p.Validate(); err != nil {
		return errors.Wrap(err, "payload")
	}
	req.SetPayload(p)
	return c.saveUpdated(ctx, db, req)
}

// UpdateSubtype changes the subtype of a transaction request that is still
// in progress. The subtype is the only content of such a request.
func (c *Controller) UpdateSubtype(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, id uint64, subtype Subtype) error {
	if err := ValidateSubtype(RequestTypeTransaction, subtype); err != nil {
		return err
	}
	req, err := c.loadOwn(db, caller, RequestTypeTransaction, id)
	if err != nil {
		return err
	}
	if req.Status != StatusInProgress {
		return errors.Wrapf(errors.ErrInvalidState, "cannot update %s request", req.Status)
	}
	req.Subtype = subtype
	return c.saveUpdated(ctx, db, req)
}

func (c *Controller) saveUpdated(ctx stablecoin.Context, db stablecoin.KVStore, req *Request) error {
	if err := c.bucket.Put(db, req.Key(), req); err != nil {
		return err
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventRequestUpdated).
		With("reqType", uint32(req.Type)).
		With("reqId", req.ID))
	return nil
}

// Cancel terminates a request that was not executed yet. Only the creator
// can cancel.
func (c *Controller) Cancel(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, t RequestType, id uint64) error {
	req, err := c.loadOwn(db, caller, t, id)
	if err != nil {
		return err
	}
	if req.Status.Terminal() {
		return errors.Wrapf(errors.ErrInvalidState, "cannot cancel %s request", req.Status)
	}
	req.Status = StatusCancelled
	if err := c.bucket.Put(db, req.Key(), req); err != nil {
		return err
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventRequestCancelled).
		With("reqType", uint32(t)).
		With("reqId", id))
	return nil
}
