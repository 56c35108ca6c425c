package control

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x"
)

// RegisterQuery registers requests under "/requests". The key is the
// request type byte followed by the big endian id, the prefix query with a
// single type byte lists all requests of that type.
func RegisterQuery(qr stablecoin.QueryRouter) {
	newRequestBucket().Register("requests", qr)
}

// RegisterRoutes registers handlers for all control messages.
func RegisterRoutes(r stablecoin.Registry, auth x.Authenticator, ctrl *Controller) {
	handle := func(newMsg func() stablecoin.Msg, run runFn) {
		r.Handle(newMsg().Path(), &requestHandler{auth: auth, newMsg: newMsg, run: run})
	}

	handle(func() stablecoin.Msg { return &CreateTokenSupplyRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CreateTokenSupplyRequestMsg)
		return created(ctrl.Create(ctx, db, caller, msg.Subtype, msg.ID, msg.Payload()))
	})
	handle(func() stablecoin.Msg { return &CreateTransactionRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CreateTransactionRequestMsg)
		return created(ctrl.Create(ctx, db, caller, msg.Subtype, msg.ID, &TransactionPayload{}))
	})
	handle(func() stablecoin.Msg { return &CreateSignatoryRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CreateSignatoryRequestMsg)
		return created(ctrl.Create(ctx, db, caller, msg.Subtype, msg.ID, &SignatoryPayload{Wallets: msg.Wallets}))
	})
	handle(func() stablecoin.Msg { return &CreateThresholdRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CreateThresholdRequestMsg)
		return created(ctrl.Create(ctx, db, caller, SubtypeUpdate, msg.ID, msg.Payload()))
	})
	handle(func() stablecoin.Msg { return &CreateWhitelistRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CreateWhitelistRequestMsg)
		return created(ctrl.Create(ctx, db, caller, msg.Subtype, msg.ID, &WhitelistPayload{Wallets: msg.Wallets}))
	})

	handle(func() stablecoin.Msg { return &UpdateTokenSupplyRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*UpdateTokenSupplyRequestMsg)
		return nil, ctrl.Update(ctx, db, caller, msg.ID, msg.Payload())
	})
	handle(func() stablecoin.Msg { return &UpdateTransactionRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*UpdateTransactionRequestMsg)
		return nil, ctrl.UpdateSubtype(ctx, db, caller, msg.ID, msg.Subtype)
	})
	handle(func() stablecoin.Msg { return &UpdateSignatoryRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*UpdateSignatoryRequestMsg)
		return nil, ctrl.Update(ctx, db, caller, msg.ID, msg.Payload())
	})
	handle(func() stablecoin.Msg { return &UpdateThresholdRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*UpdateThresholdRequestMsg)
		return nil, ctrl.Update(ctx, db, caller, msg.ID, msg.Payload())
	})
	handle(func() stablecoin.Msg { return &UpdateWhitelistRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*UpdateWhitelistRequestMsg)
		return nil, ctrl.Update(ctx, db, caller, msg.ID, msg.Payload())
	})

	handle(func() stablecoin.Msg { return &VoteMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*VoteMsg)
		return nil, ctrl.Vote(ctx, db, caller, msg.Type, msg.ID, msg.Approve)
	})
	handle(func() stablecoin.Msg { return &ExecuteMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*ExecuteMsg)
		if err := ctrl.Execute(ctx, db, caller, msg.Type, msg.ID); err != nil {
			return nil, err
		}
		stablecoin.GetLogger(ctx).Debug("request executed", "type", msg.Type, "id", msg.ID)
		return RequestKey(msg.Type, msg.ID), nil
	})
	handle(func() stablecoin.Msg { return &CancelRequestMsg{} }, func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, m stablecoin.Msg) ([]byte, error) {
		msg := m.(*CancelRequestMsg)
		return nil, ctrl.Cancel(ctx, db, caller, msg.Type, msg.ID)
	})
}

// runFn applies a validated message on behalf of the caller. It returns the
// data of the deliver result.
type runFn func(ctx stablecoin.Context, db stablecoin.KVStore, caller stablecoin.Address, msg stablecoin.Msg) ([]byte, error)

func created(req *Request, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return req.Key(), nil
}

// requestHandler loads a control message and runs it for the main signer
// of the transaction. Check only validates the message and the signer, all
// state checks happen on deliver.
type requestHandler struct {
	auth   x.Authenticator
	newMsg func() stablecoin.Msg
	run    runFn
}

var _ stablecoin.Handler = (*requestHandler)(nil)

func (h *requestHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *requestHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	data, err := h.run(ctx, db, caller, msg)
	if err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Data: data, Tags: events.Tags()}, nil
}

func (h *requestHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (stablecoin.Msg, stablecoin.Address, error) {
	msg := h.newMsg()
	if err := stablecoin.LoadMsg(tx, msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return msg, caller, nil
}
