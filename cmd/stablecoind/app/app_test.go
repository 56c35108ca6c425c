package stablecoind

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/app"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x/control"
	"github.com/iov-one/stablecoin/x/ledger"
	"github.com/iov-one/stablecoin/x/signatory"
	"github.com/iov-one/stablecoin/x/sigs"
	"github.com/iov-one/stablecoin/x/threshold"
	"github.com/iov-one/stablecoin/x/utils"
	"github.com/iov-one/stablecoin/x/whitelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "test-stablecoin"

// 10000 tokens with 6 decimals
const tenThousand = 10000 * 1000000

// testNode drives the application the way tendermint does, one block per
// transaction.
type testNode struct {
	t      *testing.T
	app    app.BaseApp
	query  app.QueryClient
	height int64
	nonces map[string]int64
}

type dict map[string]interface{}

func newTestNode(t *testing.T, appState dict) *testNode {
	t.Helper()

	base, err := Application(Name, Stack(utils.NewMetrics()), TxDecoder, "", false)
	require.NoError(t, err)
	base.WithInit(Initializers())
	base.WithLogger(log.NewNopLogger())

	raw, err := json.Marshal(appState)
	require.NoError(t, err)
	base.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: raw})
	base.Commit()

	return &testNode{
		t:      t,
		app:    base,
		query:  app.NewQueryClient(base),
		height: 1,
		nonces: make(map[string]int64),
	}
}

// governed returns the app state of a chain owned by owner.
func governed(owner stablecoin.Address, enforceWhitelist bool, holdings ...ledger.Holding) dict {
	if holdings == nil {
		holdings = []ledger.Holding{}
	}
	return dict{
		"signatory": dict{
			"owner":       owner,
			"signatories": []stablecoin.Address{},
		},
		"ledger": dict{
			"token":             ledger.DefaultToken(),
			"enforce_whitelist": enforceWhitelist,
			"balances":          holdings,
		},
	}
}

// run signs the message with key and processes it in its own block. A
// message rejected by CheckTx never reaches DeliverTx.
func (n *testNode) run(key *sigs.PrivateKey, msg stablecoin.Msg) error {
	n.t.Helper()

	tx := &Tx{}
	require.NoError(n.t, tx.SetMsg(msg))
	signer := key.PublicKey().Address().String()
	sig, err := sigs.SignTx(key, tx, testChainID, n.nonces[signer])
	require.NoError(n.t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	bz, err := proto.Marshal(tx)
	require.NoError(n.t, err)

	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: testChainID, Height: n.height, Time: time.Now()},
	})
	defer func() {
		n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
		n.app.Commit()
	}()

	if res := n.app.CheckTx(bz); res.Code != errors.SuccessABCICode {
		return errors.FromABCI(res.Code, res.Log)
	}
	// a checked transaction increments the nonce even if delivery fails
	n.nonces[signer]++
	_, err = stablecoin.ParseDeliverOrError(n.app.DeliverTx(bz))
	return err
}

func (n *testNode) mustRun(key *sigs.PrivateKey, msg stablecoin.Msg) {
	n.t.Helper()
	require.NoError(n.t, n.run(key, msg))
}

// pass votes for the request with every voter and executes it as the
// creator.
func (n *testNode) pass(creator *sigs.PrivateKey, t control.RequestType, id uint64, voters ...*sigs.PrivateKey) {
	n.t.Helper()
	if len(voters) == 0 {
		voters = []*sigs.PrivateKey{creator}
	}
	for _, v := range voters {
		n.mustRun(v, &control.VoteMsg{Type: t, ID: id, Approve: true})
	}
	n.mustRun(creator, &control.ExecuteMsg{Type: t, ID: id})
}

func (n *testNode) request(t control.RequestType, id uint64) *control.Request {
	n.t.Helper()
	var req control.Request
	require.NoError(n.t, n.query.One("/requests", control.RequestKey(t, id), &req))
	return &req
}

func (n *testNode) balance(addr stablecoin.Address) uint64 {
	n.t.Helper()
	var b ledger.Balance
	switch err := n.query.One("/balances", addr, &b); {
	case errors.ErrNotFound.Is(err):
		return 0
	default:
		require.NoError(n.t, err)
	}
	return b.Amount
}

func (n *testNode) supply() uint64 {
	n.t.Helper()
	var s ledger.Supply
	switch err := n.query.One("/supply", nil, &s); {
	case errors.ErrNotFound.Is(err):
		return 0
	default:
		require.NoError(n.t, err)
	}
	return s.Total
}

func (n *testNode) paused() bool {
	n.t.Helper()
	var p ledger.PauseState
	switch err := n.query.One("/paused", nil, &p); {
	case errors.ErrNotFound.Is(err):
		return false
	default:
		require.NoError(n.t, err)
	}
	return p.Paused
}

func (n *testNode) registry() *signatory.Registry {
	n.t.Helper()
	var r signatory.Registry
	require.NoError(n.t, n.query.One("/signatories", nil, &r))
	return &r
}

func (n *testNode) thresholds(t control.RequestType) []uint32 {
	n.t.Helper()
	var th threshold.Thresholds
	switch err := n.query.One("/thresholds", []byte{byte(t)}, &th); {
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		require.NoError(n.t, err)
	}
	return th.Values
}

func (n *testNode) whitelisted(addr stablecoin.Address) bool {
	n.t.Helper()
	var m whitelist.Member
	switch err := n.query.One("/whitelist", addr, &m); {
	case errors.ErrNotFound.Is(err):
		return false
	default:
		require.NoError(n.t, err)
	}
	return true
}

func addr(key *sigs.PrivateKey) stablecoin.Address {
	return key.PublicKey().Address()
}

func TestMintScenario(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      2,
		Amount:  tenThousand,
		Wallet:  addr(user1),
	})
	req := n.request(control.RequestTypeTokenSupply, 2)
	assert.Equal(t, control.StatusInProgress, req.Status)
	assert.Empty(t, req.Approvals)
	assert.Equal(t, addr(owner), req.Creator)

	n.mustRun(owner, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 2, Approve: true})
	req = n.request(control.RequestTypeTokenSupply, 2)
	assert.Equal(t, control.StatusAccepted, req.Status)
	assert.Equal(t, []stablecoin.Address{addr(owner)}, req.Approvals)

	n.mustRun(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 2})
	assert.Equal(t, control.StatusExecuted, n.request(control.RequestTypeTokenSupply, 2).Status)
	assert.EqualValues(t, tenThousand, n.balance(addr(user1)))
	assert.EqualValues(t, tenThousand, n.supply())

	// the side effect is applied only once
	err := n.run(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 2})
	assert.True(t, errors.ErrInvalidState.Is(err), "%+v", err)
	assert.EqualValues(t, tenThousand, n.balance(addr(user1)))
}

func TestQuorumOfTwo(t *testing.T) {
	owner, user1, user2 := sigs.GenPrivateKey(), sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &control.CreateSignatoryRequestMsg{
		Subtype: control.SubtypeAdd,
		ID:      1,
		Wallets: []stablecoin.Address{addr(user1), addr(user2)},
	})
	n.pass(owner, control.RequestTypeSignatory, 1)
	assert.Equal(t, []stablecoin.Address{addr(user1), addr(user2)}, n.registry().Signatories)

	// ids are counted per type
	n.mustRun(owner, &control.CreateThresholdRequestMsg{
		ID:         1,
		TargetType: control.RequestTypeTokenSupply,
		Thresholds: []uint32{2, 2},
	})
	n.pass(owner, control.RequestTypeThreshold, 1)
	assert.Equal(t, []uint32{2, 2}, n.thresholds(control.RequestTypeTokenSupply))

	n.mustRun(user1, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      1,
		Amount:  500,
		Wallet:  addr(user2),
	})
	n.mustRun(user1, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})
	// a repeated vote is counted once
	n.mustRun(user1, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})
	req := n.request(control.RequestTypeTokenSupply, 1)
	assert.Equal(t, control.StatusInProgress, req.Status)
	assert.Len(t, req.Approvals, 1)

	err := n.run(user1, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.True(t, errors.ErrNotApproved.Is(err), "%+v", err)
	assert.EqualValues(t, 0, n.balance(addr(user2)))

	n.mustRun(user2, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})
	assert.Equal(t, control.StatusAccepted, n.request(control.RequestTypeTokenSupply, 1).Status)

	// an accepted request takes no more votes
	err = n.run(user1, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: false})
	assert.True(t, errors.ErrInvalidState.Is(err), "%+v", err)
	req = n.request(control.RequestTypeTokenSupply, 1)
	assert.Equal(t, control.StatusAccepted, req.Status)
	assert.Equal(t, []stablecoin.Address{addr(user1), addr(user2)}, req.Approvals)

	n.mustRun(user1, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.EqualValues(t, 500, n.balance(addr(user2)))
}

func TestThresholdSelfGovernance(t *testing.T) {
	owner := sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &control.CreateThresholdRequestMsg{
		ID:         1,
		TargetType: control.RequestTypeSignatory,
		Thresholds: []uint32{3, 3},
	})
	req := n.request(control.RequestTypeThreshold, 1)
	assert.Equal(t, control.RequestTypeSignatory, req.Threshold.TargetType)

	err := n.run(owner, &control.CreateThresholdRequestMsg{
		ID:         2,
		TargetType: control.RequestTypeSignatory,
		Thresholds: []uint32{3, 3, 3},
	})
	assert.True(t, errors.ErrInvalidThresholdCounts.Is(err), "%+v", err)
	models, err := n.query.Query("/requests", stablecoin.KeyQueryMod, control.RequestKey(control.RequestTypeThreshold, 2))
	require.NoError(t, err)
	assert.Empty(t, models)

	n.pass(owner, control.RequestTypeThreshold, 1)
	assert.Equal(t, []uint32{3, 3}, n.thresholds(control.RequestTypeSignatory))
	// other types keep the default quorum
	assert.Nil(t, n.thresholds(control.RequestTypeTokenSupply))
}

func TestPauseBlocksTransfers(t *testing.T) {
	owner, user1, user2 := sigs.GenPrivateKey(), sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false, ledger.Holding{Address: addr(user1), Amount: 1000}))

	n.mustRun(user1, &ledger.TransferMsg{To: addr(user2), Amount: 100})
	assert.EqualValues(t, 100, n.balance(addr(user2)))

	n.mustRun(owner, &control.CreateTransactionRequestMsg{Subtype: control.SubtypePause, ID: 1})
	n.pass(owner, control.RequestTypeTransaction, 1)
	assert.True(t, n.paused())

	err := n.run(user1, &ledger.TransferMsg{To: addr(user2), Amount: 100})
	assert.True(t, errors.ErrPaused.Is(err), "%+v", err)
	n.mustRun(user1, &ledger.ApproveMsg{Spender: addr(user2), Amount: 50})
	err = n.run(user2, &ledger.TransferFromMsg{From: addr(user1), To: addr(user2), Amount: 50})
	assert.True(t, errors.ErrPaused.Is(err), "%+v", err)
	assert.EqualValues(t, 100, n.balance(addr(user2)))

	n.mustRun(owner, &control.CreateTransactionRequestMsg{Subtype: control.SubtypeUnpause, ID: 2})
	n.pass(owner, control.RequestTypeTransaction, 2)
	assert.False(t, n.paused())

	n.mustRun(user1, &ledger.TransferMsg{To: addr(user2), Amount: 100})
	n.mustRun(user2, &ledger.TransferFromMsg{From: addr(user1), To: addr(user2), Amount: 50})
	assert.EqualValues(t, 250, n.balance(addr(user2)))
	assert.EqualValues(t, 750, n.balance(addr(user1)))
}

func TestUnauthorizedCallsLeaveStateUnchanged(t *testing.T) {
	owner, stranger := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      1,
		Amount:  10,
		Wallet:  addr(stranger),
	})

	cases := map[string]stablecoin.Msg{
		"create": &control.CreateTokenSupplyRequestMsg{
			Subtype: control.SubtypeMint,
			ID:      2,
			Amount:  10,
			Wallet:  addr(stranger),
		},
		"vote":    &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true},
		"execute": &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1},
		"cancel":  &control.CancelRequestMsg{Type: control.RequestTypeTokenSupply, ID: 1},
		"update": &control.UpdateTokenSupplyRequestMsg{
			ID:     1,
			Amount: 20,
			Wallet: addr(stranger),
		},
		"transfer ownership": &signatory.TransferOwnershipMsg{NewOwner: addr(stranger)},
	}
	for name, msg := range cases {
		err := n.run(stranger, msg)
		assert.True(t, errors.ErrUnauthorized.Is(err), "%s: %+v", name, err)
	}

	req := n.request(control.RequestTypeTokenSupply, 1)
	assert.Equal(t, control.StatusInProgress, req.Status)
	assert.Empty(t, req.Approvals)
	assert.EqualValues(t, 10, req.TokenSupply.Amount)
	assert.Equal(t, addr(owner), n.registry().Owner)

	models, err := n.query.Query("/requests", stablecoin.KeyQueryMod, control.RequestKey(control.RequestTypeTokenSupply, 2))
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestUpdateAndCancel(t *testing.T) {
	owner, user1, user2 := sigs.GenPrivateKey(), sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	create := &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      1,
		Amount:  5,
		Wallet:  addr(user1),
	}
	n.mustRun(owner, create)
	err := n.run(owner, create)
	assert.True(t, errors.ErrDuplicate.Is(err), "%+v", err)

	n.mustRun(owner, &control.UpdateTokenSupplyRequestMsg{ID: 1, Amount: 7, Wallet: addr(user2)})
	req := n.request(control.RequestTypeTokenSupply, 1)
	assert.EqualValues(t, 7, req.TokenSupply.Amount)
	assert.Equal(t, addr(user2), req.TokenSupply.Wallet)
	assert.Equal(t, control.SubtypeMint, req.Subtype)

	n.mustRun(owner, &control.CancelRequestMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.Equal(t, control.StatusCancelled, n.request(control.RequestTypeTokenSupply, 1).Status)

	blocked := map[string]stablecoin.Msg{
		"vote":    &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true},
		"execute": &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1},
		"update":  &control.UpdateTokenSupplyRequestMsg{ID: 1, Amount: 9, Wallet: addr(user2)},
		"cancel":  &control.CancelRequestMsg{Type: control.RequestTypeTokenSupply, ID: 1},
	}
	for name, msg := range blocked {
		err := n.run(owner, msg)
		assert.True(t, errors.ErrInvalidState.Is(err), "%s: %+v", name, err)
	}
	assert.EqualValues(t, 0, n.balance(addr(user2)))
	assert.EqualValues(t, 7, n.request(control.RequestTypeTokenSupply, 1).TokenSupply.Amount)

	err = n.run(owner, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 99, Approve: true})
	assert.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestBurnNeedsAllowance(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false, ledger.Holding{Address: addr(user1), Amount: 1000}))

	n.mustRun(owner, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeBurn,
		ID:      1,
		Amount:  400,
		Wallet:  addr(user1),
	})
	n.mustRun(owner, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})

	err := n.run(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.True(t, errors.ErrInsufficientAllowance.Is(err), "%+v", err)
	// a failed effect keeps the request executable
	assert.Equal(t, control.StatusAccepted, n.request(control.RequestTypeTokenSupply, 1).Status)
	assert.EqualValues(t, 1000, n.balance(addr(user1)))

	n.mustRun(user1, &ledger.ApproveMsg{Spender: addr(owner), Amount: 400})
	n.mustRun(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.Equal(t, control.StatusExecuted, n.request(control.RequestTypeTokenSupply, 1).Status)
	assert.EqualValues(t, 600, n.balance(addr(user1)))
	assert.EqualValues(t, 600, n.supply())
}

func TestWhitelistEnforced(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), true))

	n.mustRun(owner, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      1,
		Amount:  100,
		Wallet:  addr(user1),
	})
	n.mustRun(owner, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})
	err := n.run(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.True(t, errors.ErrNotWhitelisted.Is(err), "%+v", err)

	n.mustRun(owner, &control.CreateWhitelistRequestMsg{
		Subtype: control.SubtypeAdd,
		ID:      1,
		Wallets: []stablecoin.Address{addr(user1)},
	})
	n.pass(owner, control.RequestTypeWhitelist, 1)
	assert.True(t, n.whitelisted(addr(user1)))

	n.mustRun(owner, &control.ExecuteMsg{Type: control.RequestTypeTokenSupply, ID: 1})
	assert.EqualValues(t, 100, n.balance(addr(user1)))

	n.mustRun(owner, &control.CreateWhitelistRequestMsg{
		Subtype: control.SubtypeRemove,
		ID:      2,
		Wallets: []stablecoin.Address{addr(user1)},
	})
	n.pass(owner, control.RequestTypeWhitelist, 2)
	assert.False(t, n.whitelisted(addr(user1)))
}

func TestOwnershipTransfer(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &signatory.TransferOwnershipMsg{NewOwner: addr(user1)})
	assert.Equal(t, addr(user1), n.registry().Owner)

	err := n.run(owner, &control.CreateTransactionRequestMsg{Subtype: control.SubtypePause, ID: 1})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	n.mustRun(user1, &control.CreateTransactionRequestMsg{Subtype: control.SubtypePause, ID: 1})

	n.mustRun(user1, &signatory.RenounceOwnershipMsg{})
	// the creator keeps control of own requests
	n.mustRun(user1, &control.CancelRequestMsg{Type: control.RequestTypeTransaction, ID: 1})
	err = n.run(user1, &control.CreateTransactionRequestMsg{Subtype: control.SubtypePause, ID: 2})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	err = n.run(user1, &signatory.RenounceOwnershipMsg{})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}

func TestRemovedSignatoryKeepsApprovals(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false))

	n.mustRun(owner, &control.CreateSignatoryRequestMsg{
		Subtype: control.SubtypeAdd,
		ID:      1,
		Wallets: []stablecoin.Address{addr(user1)},
	})
	n.pass(owner, control.RequestTypeSignatory, 1)

	n.mustRun(owner, &control.CreateTokenSupplyRequestMsg{
		Subtype: control.SubtypeMint,
		ID:      1,
		Amount:  10,
		Wallet:  addr(owner),
	})
	n.mustRun(user1, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: true})

	n.mustRun(owner, &control.CreateSignatoryRequestMsg{
		Subtype: control.SubtypeRemove,
		ID:      2,
		Wallets: []stablecoin.Address{addr(user1)},
	})
	n.pass(owner, control.RequestTypeSignatory, 2)
	assert.Empty(t, n.registry().Signatories)

	assert.Equal(t, []stablecoin.Address{addr(user1)}, n.request(control.RequestTypeTokenSupply, 1).Approvals)
	err := n.run(user1, &control.VoteMsg{Type: control.RequestTypeTokenSupply, ID: 1, Approve: false})
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}

func TestReplayedTransactionIsRejected(t *testing.T) {
	owner, user1 := sigs.GenPrivateKey(), sigs.GenPrivateKey()
	n := newTestNode(t, governed(addr(owner), false, ledger.Holding{Address: addr(user1), Amount: 10}))

	n.mustRun(user1, &ledger.TransferMsg{To: addr(owner), Amount: 1})
	// reuse the first nonce
	n.nonces[addr(user1).String()] = 0
	err := n.run(user1, &ledger.TransferMsg{To: addr(owner), Amount: 1})
	assert.True(t, sigs.ErrInvalidSequence.Is(err), "%+v", err)
	assert.EqualValues(t, 9, n.balance(addr(user1)))
}
