package signatory

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x"
)

// RegisterQuery registers the signatory registry under "/signatories".
func RegisterQuery(qr stablecoin.QueryRouter) {
	qr.Register("/signatories", newRegistryBucket().Singleton(registryKey))
}

// RegisterRoutes registers handlers for ownership messages.
func RegisterRoutes(r stablecoin.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathTransferOwnershipMsg, &transferOwnershipHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathRenounceOwnershipMsg, &renounceOwnershipHandler{auth: auth, ctrl: ctrl})
}

type transferOwnershipHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ stablecoin.Handler = (*transferOwnershipHandler)(nil)

func (h *transferOwnershipHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *transferOwnershipHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	if err := h.ctrl.TransferOwnership(ctx, db, caller, msg.NewOwner); err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Tags: events.Tags()}, nil
}

func (h *transferOwnershipHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (*TransferOwnershipMsg, stablecoin.Address, error) {
	var msg TransferOwnershipMsg
	if err := stablecoin.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type renounceOwnershipHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ stablecoin.Handler = (*renounceOwnershipHandler)(nil)

func (h *renounceOwnershipHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *renounceOwnershipHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	if err := h.ctrl.RenounceOwnership(ctx, db, caller); err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Tags: events.Tags()}, nil
}

func (h *renounceOwnershipHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (stablecoin.Address, error) {
	var msg RenounceOwnershipMsg
	if err := stablecoin.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return x.Caller(ctx, h.auth)
}
