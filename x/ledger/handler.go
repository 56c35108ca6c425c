package ledger

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x"
)

// RegisterQuery registers ledger state under "/balances", "/allowances",
// "/supply", "/token" and "/paused". Balances are keyed by address,
// allowances by owner followed by spender.
func RegisterQuery(qr stablecoin.QueryRouter) {
	b := newBuckets()
	b.balance.Register("balances", qr)
	b.allowance.Register("allowances", qr)
	qr.Register("/supply", b.supply.Singleton(singletonKey))
	qr.Register("/token", b.token.Singleton(singletonKey))
	qr.Register("/paused", b.pause.Singleton(singletonKey))
}

// RegisterRoutes registers handlers for token movements and allowances.
func RegisterRoutes(r stablecoin.Registry, auth x.Authenticator, ctrl *Controller) {
	r.Handle(pathTransferMsg, &transferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTransferFromMsg, &transferFromHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathApproveMsg, &allowanceHandler{auth: auth, ctrl: ctrl, newMsg: func() stablecoin.Msg { return &ApproveMsg{} }})
	r.Handle(pathIncreaseAllowanceMsg, &allowanceHandler{auth: auth, ctrl: ctrl, newMsg: func() stablecoin.Msg { return &IncreaseAllowanceMsg{} }})
	r.Handle(pathDecreaseAllowanceMsg, &allowanceHandler{auth: auth, ctrl: ctrl, newMsg: func() stablecoin.Msg { return &DecreaseAllowanceMsg{} }})
}

type transferHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ stablecoin.Handler = (*transferHandler)(nil)

func (h *transferHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *transferHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, from, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	if err := h.ctrl.Transfer(ctx, db, from, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Tags: events.Tags()}, nil
}

func (h *transferHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (*TransferMsg, stablecoin.Address, error) {
	var msg TransferMsg
	if err := stablecoin.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	from, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, from, nil
}

type transferFromHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ stablecoin.Handler = (*transferFromHandler)(nil)

func (h *transferFromHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *transferFromHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, spender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	if err := h.ctrl.TransferFrom(ctx, db, spender, msg.From, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Tags: events.Tags()}, nil
}

func (h *transferFromHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (*TransferFromMsg, stablecoin.Address, error) {
	var msg TransferFromMsg
	if err := stablecoin.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	spender, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, spender, nil
}

// allowanceHandler serves the three messages that change the allowance the
// signer grants a spender.
type allowanceHandler struct {
	auth   x.Authenticator
	ctrl   *Controller
	newMsg func() stablecoin.Msg
}

var _ stablecoin.Handler = (*allowanceHandler)(nil)

func (h *allowanceHandler) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &stablecoin.CheckResult{}, nil
}

func (h *allowanceHandler) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx) (*stablecoin.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := stablecoin.WithEvents(ctx)
	switch msg := msg.(type) {
	case *ApproveMsg:
		err = h.ctrl.Approve(ctx, db, owner, msg.Spender, msg.Amount)
	case *IncreaseAllowanceMsg:
		err = h.ctrl.IncreaseAllowance(ctx, db, owner, msg.Spender, msg.Amount)
	case *DecreaseAllowanceMsg:
		err = h.ctrl.DecreaseAllowance(ctx, db, owner, msg.Spender, msg.Amount)
	default:
		err = errors.Wrapf(errors.ErrInvalidMsg, "unexpected %T", msg)
	}
	if err != nil {
		return nil, err
	}
	return &stablecoin.DeliverResult{Tags: events.Tags()}, nil
}

func (h *allowanceHandler) validate(ctx stablecoin.Context, tx stablecoin.Tx) (stablecoin.Msg, stablecoin.Address, error) {
	msg := h.newMsg()
	if err := stablecoin.LoadMsg(tx, msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return msg, owner, nil
}
