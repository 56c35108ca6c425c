package control

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x"
)

// Vote adds the caller to the approvals of a request or withdraws the
// approval. Voting twice the same way changes nothing. Once the approvals
// reach the threshold of the request type and subtype the request is
// accepted, withdrawing votes later does not revert it.
func (c *Controller) Vote(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, t RequestType, id uint64, approve bool) error {
	if err := c.authorize(db, caller); err != nil {
		return err
	}
	req, err := c.Get(db, t, id)
	if err != nil {
		return err
	}
	if req.Status != StatusInProgress {
		return errors.Wrapf(errors.ErrInvalidState, "cannot vote on %s request", req.Status)
	}

	i := x.IndexOf(req.Approvals, caller)
	switch {
	case approve && i < 0:
		req.Approvals = append(req.Approvals, caller)
	case !approve && i >= 0:
		req.Approvals = append(req.Approvals[:i], req.Approvals[i+1:]...)
	}

	threshold, err := c.thresholds.Get(db, req.Type, req.Subtype)
	if err != nil {
		return errors.Wrap(err, "cannot load threshold")
	}
	if uint64(len(req.Approvals)) >= uint64(threshold) {
		req.Status = StatusAccepted
	}
	if err := c.bucket.Put(db, req.Key(), req); err != nil {
		return err
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventRequestApproval).
		With("reqType", uint32(t)).
		With("reqId", id).
		With("signatory", caller).
		With("isApproved", approve))
	return nil
}
