package ledger

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x/control"
)

// Events emitted by the ledger.
const (
	EventTransfer = "Transfer"
	EventApproval = "Approval"
	EventPaused   = "Paused"
	EventUnpaused = "Unpaused"
)

// Whitelist decides which addresses can receive tokens when the whitelist
// policy is enabled.
type Whitelist interface {
	IsWhitelisted(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (bool, error)
}

// Controller owns all ledger state.
type Controller struct {
	b         buckets
	whitelist Whitelist
}

var _ control.Ledger = (*Controller)(nil)

// NewController returns a ledger controller. The whitelist is consulted
// only when the policy stored at genesis enables it.
func NewController(w Whitelist) *Controller {
	return &Controller{b: newBuckets(), whitelist: w}
}

// Holding is the initial balance of an address.
type Holding struct {
	Address stablecoin.Address `json:"address"`
	Amount  uint64             `json:"amount"`
}

// Init stores the token metadata, the policy and the initial balances. The
// total supply is the sum of all balances.
func (c *Controller) Init(db stablecoin.KVStore, token *Token, policy *Policy, holdings []Holding) error {
	if err := c.b.token.Put(db, singletonKey, token); err != nil {
		return err
	}
	if err := c.b.policy.Put(db, singletonKey, policy); err != nil {
		return err
	}
	var total uint64
	for i, h := range holdings {
		if err := h.Address.Validate(); err != nil {
			return errors.Wrapf(err, "holding %d", i)
		}
		if c.b.balance.Has(db, h.Address) {
			return errors.Wrapf(errors.ErrDuplicate, "holding %s", h.Address)
		}
		if total+h.Amount < total {
			return errors.Wrap(errors.ErrOverflow, "total supply")
		}
		total += h.Amount
		if err := c.setBalance(db, h.Address, h.Amount); err != nil {
			return err
		}
	}
	return c.b.supply.Put(db, singletonKey, &Supply{Total: total})
}

// Token returns the token metadata.
func (c *Controller) Token(db stablecoin.ReadOnlyKVStore) (*Token, error) {
	var t Token
	switch err := c.b.token.One(db, singletonKey, &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return DefaultToken(), nil
	default:
		return nil, err
	}
}

// Policy returns the ledger policy.
func (c *Controller) Policy(db stablecoin.ReadOnlyKVStore) (*Policy, error) {
	var p Policy
	if err := c.b.policy.One(db, singletonKey, &p); err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &p, nil
}

// BalanceOf returns the amount held by an address.
func (c *Controller) BalanceOf(db stablecoin.ReadOnlyKVStore, addr stablecoin.Address) (uint64, error) {
	var b Balance
	if err := c.b.balance.One(db, addr, &b); err != nil && !errors.ErrNotFound.Is(err) {
		return 0, err
	}
	return b.Amount, nil
}

// Allowance returns the amount the spender may move on behalf of the owner.
func (c *Controller) Allowance(db stablecoin.ReadOnlyKVStore, owner, spender stablecoin.Address) (uint64, error) {
	var a Allowance
	if err := c.b.allowance.One(db, allowanceKey(owner, spender), &a); err != nil && !errors.ErrNotFound.Is(err) {
		return 0, err
	}
	return a.Amount, nil
}

// TotalSupply returns the amount of tokens in existence.
func (c *Controller) TotalSupply(db stablecoin.ReadOnlyKVStore) (uint64, error) {
	var s Supply
	if err := c.b.supply.One(db, singletonKey, &s); err != nil && !errors.ErrNotFound.Is(err) {
		return 0, err
	}
	return s.Total, nil
}

// Paused returns true while token movements are suspended.
func (c *Controller) Paused(db stablecoin.ReadOnlyKVStore) (bool, error) {
	var p PauseState
	if err := c.b.pause.One(db, singletonKey, &p); err != nil && !errors.ErrNotFound.Is(err) {
		return false, err
	}
	return p.Paused, nil
}

// SetPaused suspends or resumes token movements. It fails if the ledger is
// already in the requested state.
func (c *Controller) SetPaused(ctx stablecoin.Context, db stablecoin.KVStore, paused bool) error {
	current, err := c.Paused(db)
	if err != nil {
		return err
	}
	if current == paused {
		if paused {
			return errors.Wrap(errors.ErrInvalidState, "already paused")
		}
		return errors.Wrap(errors.ErrInvalidState, "not paused")
	}
	if err := c.b.pause.Put(db, singletonKey, &PauseState{Paused: paused}); err != nil {
		return err
	}
	name := EventUnpaused
	if paused {
		name = EventPaused
	}
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(name))
	return nil
}

// Mint creates tokens on the recipient account.
func (c *Controller) Mint(ctx stablecoin.Context, db stablecoin.KVStore, to stablecoin.Address, amount uint64) error {
	if err := c.checkActive(db); err != nil {
		return err
	}
	if err := c.checkRecipient(db, to); err != nil {
		return err
	}
	total, err := c.TotalSupply(db)
	if err != nil {
		return err
	}
	if total+amount < total {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	if err := c.credit(db, to, amount); err != nil {
		return err
	}
	if err := c.b.supply.Put(db, singletonKey, &Supply{Total: total + amount}); err != nil {
		return err
	}
	emitTransfer(ctx, nil, to, amount)
	return nil
}

// Burn destroys tokens of a wallet. The spender burns from its own wallet
// or from the treasury freely, burning from any other wallet consumes the
// allowance that wallet granted the spender.
func (c *Controller) Burn(ctx stablecoin.Context, db stablecoin.KVStore, from, spender stablecoin.Address, amount uint64) error {
	if err := c.checkActive(db); err != nil {
		return err
	}
	if err := from.Validate(); err != nil {
		return errors.Wrap(err, "wallet")
	}
	if err := c.debit(db, from, amount); err != nil {
		return err
	}
	if !from.Equals(spender) && !from.Equals(TreasuryAddress) {
		if _, err := c.spendAllowance(db, from, spender, amount); err != nil {
			return err
		}
	}
	total, err := c.TotalSupply(db)
	if err != nil {
		return err
	}
	if total < amount {
		return errors.Wrap(errors.ErrInvalidState, "total supply below burned amount")
	}
	if err := c.b.supply.Put(db, singletonKey, &Supply{Total: total - amount}); err != nil {
		return err
	}
	emitTransfer(ctx, from, nil, amount)
	return nil
}

// Transfer moves tokens between accounts.
func (c *Controller) Transfer(ctx stablecoin.Context, db stablecoin.KVStore, from, to stablecoin.Address, amount uint64) error {
	if err := c.checkActive(db); err != nil {
		return err
	}
	if err := c.move(db, from, to, amount); err != nil {
		return err
	}
	emitTransfer(ctx, from, to, amount)
	return nil
}

// TransferFrom moves tokens of the owner on behalf of the spender,
// consuming the allowance.
func (c *Controller) TransferFrom(ctx stablecoin.Context, db stablecoin.KVStore, spender, from, to stablecoin.Address, amount uint64) error {
	if err := c.checkActive(db); err != nil {
		return err
	}
	left, err := c.spendAllowance(db, from, spender, amount)
	if err != nil {
		return err
	}
	if err := c.move(db, from, to, amount); err != nil {
		return err
	}
	emitTransfer(ctx, from, to, amount)
	emitApproval(ctx, from, spender, left)
	return nil
}

// Approve sets the amount the spender may move on behalf of the owner.
func (c *Controller) Approve(ctx stablecoin.Context, db stablecoin.KVStore, owner, spender stablecoin.Address, amount uint64) error {
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if err := c.setAllowance(db, owner, spender, amount); err != nil {
		return err
	}
	emitApproval(ctx, owner, spender, amount)
	return nil
}

// IncreaseAllowance raises the allowance of the spender.
func (c *Controller) IncreaseAllowance(ctx stablecoin.Context, db stablecoin.KVStore, owner, spender stablecoin.Address, added uint64) error {
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	current, err := c.Allowance(db, owner, spender)
	if err != nil {
		return err
	}
	if current+added < current {
		return errors.Wrap(errors.ErrOverflow, "allowance")
	}
	if err := c.setAllowance(db, owner, spender, current+added); err != nil {
		return err
	}
	emitApproval(ctx, owner, spender, current+added)
	return nil
}

// DecreaseAllowance lowers the allowance of the spender. It cannot go below
// zero.
func (c *Controller) DecreaseAllowance(ctx stablecoin.Context, db stablecoin.KVStore, owner, spender stablecoin.Address, subtracted uint64) error {
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	left, err := c.spendAllowance(db, owner, spender, subtracted)
	if err != nil {
		return errors.Wrap(err, "decreased allowance below zero")
	}
	emitApproval(ctx, owner, spender, left)
	return nil
}

func (c *Controller) checkActive(db stablecoin.ReadOnlyKVStore) error {
	paused, err := c.Paused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrap(errors.ErrPaused, "token movements are suspended")
	}
	return nil
}

func (c *Controller) checkRecipient(db stablecoin.ReadOnlyKVStore, to stablecoin.Address) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	policy, err := c.Policy(db)
	if err != nil {
		return err
	}
	if !policy.EnforceWhitelist {
		return nil
	}
	if c.whitelist == nil {
		return errors.Wrap(errors.ErrHuman, "whitelist policy without a whitelist")
	}
	ok, err := c.whitelist.IsWhitelisted(db, to)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotWhitelisted, "recipient %s", to)
	}
	return nil
}

func (c *Controller) move(db stablecoin.KVStore, from, to stablecoin.Address, amount uint64) error {
	if err := c.checkRecipient(db, to); err != nil {
		return err
	}
	if err := c.debit(db, from, amount); err != nil {
		return err
	}
	return c.credit(db, to, amount)
}

func (c *Controller) debit(db stablecoin.KVStore, addr stablecoin.Address, amount uint64) error {
	have, err := c.BalanceOf(db, addr)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrInsufficientBalance, "%s holds %d, needs %d", addr, have, amount)
	}
	return c.setBalance(db, addr, have-amount)
}

func (c *Controller) credit(db stablecoin.KVStore, addr stablecoin.Address, amount uint64) error {
	have, err := c.BalanceOf(db, addr)
	if err != nil {
		return err
	}
	if have+amount < have {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.setBalance(db, addr, have+amount)
}

// setBalance removes empty accounts from the store.
func (c *Controller) setBalance(db stablecoin.KVStore, addr stablecoin.Address, amount uint64) error {
	if amount == 0 {
		if !c.b.balance.Has(db, addr) {
			return nil
		}
		return c.b.balance.Delete(db, addr)
	}
	return c.b.balance.Put(db, addr, &Balance{Amount: amount})
}

// spendAllowance lowers the allowance and returns what is left.
func (c *Controller) spendAllowance(db stablecoin.KVStore, owner, spender stablecoin.Address, amount uint64) (uint64, error) {
	current, err := c.Allowance(db, owner, spender)
	if err != nil {
		return 0, err
	}
	if current < amount {
		return 0, errors.Wrapf(errors.ErrInsufficientAllowance, "allowance is %d, needs %d", current, amount)
	}
	left := current - amount
	return left, c.setAllowance(db, owner, spender, left)
}

func (c *Controller) setAllowance(db stablecoin.KVStore, owner, spender stablecoin.Address, amount uint64) error {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		if !c.b.allowance.Has(db, key) {
			return nil
		}
		return c.b.allowance.Delete(db, key)
	}
	return c.b.allowance.Put(db, key, &Allowance{Amount: amount})
}

// account formats an address for events. Minted tokens come from and
// burned tokens go to the empty address.
func account(a stablecoin.Address) string {
	if len(a) == 0 {
		return ""
	}
	return a.String()
}

func emitTransfer(ctx stablecoin.Context, from, to stablecoin.Address, value uint64) {
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventTransfer).
		With("from", account(from)).
		With("to", account(to)).
		With("value", value))
}

func emitApproval(ctx stablecoin.Context, owner, spender stablecoin.Address, value uint64) {
	stablecoin.EmitEvent(ctx, stablecoin.NewEvent(EventApproval).
		With("owner", owner).
		With("spender", spender).
		With("value", value))
}
