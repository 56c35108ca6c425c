package control

import (
	"context"
	"testing"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store"
	"github.com/iov-one/stablecoin/weavetest"
	"github.com/iov-one/stablecoin/weavetest/assert"
)

func TestExecute(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	wallet := weavetest.NewCondition().Address()
	wallet2 := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Prepare    func(db stablecoin.KVStore)
		Subtype    Subtype
		Payload    Payload
		WantEvents []string
		WantState  func(t testing.TB, db stablecoin.KVStore)
	}{
		"mint": {
			Subtype:    SubtypeMint,
			Payload:    &TokenSupplyPayload{Amount: 10000000000, Wallet: wallet},
			WantEvents: []string{"Transfer"},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, uint64(10000000000), balanceOf(db, wallet))
			},
		},
		"burn": {
			Prepare:    func(db stablecoin.KVStore) { setBalance(db, wallet, 50) },
			Subtype:    SubtypeBurn,
			Payload:    &TokenSupplyPayload{Amount: 20, Wallet: wallet},
			WantEvents: []string{"Transfer"},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, uint64(30), balanceOf(db, wallet))
			},
		},
		"pause": {
			Subtype:    SubtypePause,
			Payload:    &TransactionPayload{},
			WantEvents: []string{"Paused"},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, true, db.Has(pausedKey))
			},
		},
		"unpause": {
			Prepare:    func(db stablecoin.KVStore) { db.Set(pausedKey, []byte{1}) },
			Subtype:    SubtypeUnpause,
			Payload:    &TransactionPayload{},
			WantEvents: []string{"Unpaused"},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, false, db.Has(pausedKey))
			},
		},
		"add signatories": {
			Subtype:    SubtypeAdd,
			Payload:    &SignatoryPayload{Wallets: []stablecoin.Address{wallet, wallet2}},
			WantEvents: []string{EventSignatoriesUpdated},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, true, db.Has(signatoryKey(wallet)))
				assert.Equal(t, true, db.Has(signatoryKey(wallet2)))
			},
		},
		"remove signatories": {
			Prepare:    func(db stablecoin.KVStore) { _ = fakeSignatories{}.Add(db, []stablecoin.Address{wallet}) },
			Subtype:    SubtypeRemove,
			Payload:    &SignatoryPayload{Wallets: []stablecoin.Address{wallet}},
			WantEvents: []string{EventSignatoriesUpdated},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, false, db.Has(signatoryKey(wallet)))
			},
		},
		"update thresholds": {
			Subtype:    SubtypeUpdate,
			Payload:    &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{3, 2}},
			WantEvents: []string{EventThresholdUpdated},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				add, err := fakeThresholds{}.Get(db, RequestTypeSignatory, SubtypeAdd)
				assert.Nil(t, err)
				assert.Equal(t, uint32(2), add)
			},
		},
		"whitelist": {
			Subtype:    SubtypeAdd,
			Payload:    &WhitelistPayload{Wallets: []stablecoin.Address{wallet2}},
			WantEvents: []string{EventWhitelistUpdated},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, true, db.Has(whitelistKey(wallet2)))
			},
		},
		"remove from whitelist": {
			Prepare:    func(db stablecoin.KVStore) { _ = fakeWhitelist{}.Add(db, []stablecoin.Address{wallet2}) },
			Subtype:    SubtypeRemove,
			Payload:    &WhitelistPayload{Wallets: []stablecoin.Address{wallet2}},
			WantEvents: []string{EventWhitelistUpdated},
			WantState: func(t testing.TB, db stablecoin.KVStore) {
				assert.Equal(t, false, db.Has(whitelistKey(wallet2)))
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := newTestController()
			assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator}))
			if tc.Prepare != nil {
				tc.Prepare(db)
			}
			rt := tc.Payload.RequestType()
			_, err := ctrl.Create(context.Background(), db, creator, tc.Subtype, 1, tc.Payload)
			assert.Nil(t, err)
			assert.Nil(t, ctrl.Vote(context.Background(), db, creator, rt, 1, true))

			ctx, events := stablecoin.WithEvents(context.Background())
			assert.Nil(t, ctrl.Execute(ctx, db, creator, rt, 1))
			assert.Equal(t, tc.WantEvents, eventNames(events))
			tc.WantState(t, db)

			req, err := ctrl.Get(db, rt, 1)
			assert.Nil(t, err)
			assert.Equal(t, StatusExecuted, req.Status)

			// the effect is applied only once
			assert.IsErr(t, errors.ErrInvalidState, ctrl.Execute(ctx, db, creator, rt, 1))
			assert.Equal(t, len(tc.WantEvents), len(events.Events()))
		})
	}
}

func TestExecutePreconditions(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := newTestController()
	ctx := context.Background()
	assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator, other}))
	assert.Nil(t, fakeThresholds{}.Set(db, RequestTypeTokenSupply, []uint32{2, 2}))

	_, err := ctrl.Create(ctx, db, creator, SubtypeMint, 2, &TokenSupplyPayload{Amount: 10, Wallet: other})
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Vote(ctx, db, other, RequestTypeTokenSupply, 2, true))

	assert.IsErr(t, errors.ErrNotApproved, ctrl.Execute(ctx, db, creator, RequestTypeTokenSupply, 2))
	assert.IsErr(t, errors.ErrNotFound, ctrl.Execute(ctx, db, creator, RequestTypeTokenSupply, 3))

	assert.Nil(t, ctrl.Vote(ctx, db, creator, RequestTypeTokenSupply, 2, true))
	// only the creator executes, even when the request is accepted
	assert.IsErr(t, errors.ErrUnauthorized, ctrl.Execute(ctx, db, other, RequestTypeTokenSupply, 2))
	assert.Nil(t, ctrl.Execute(ctx, db, creator, RequestTypeTokenSupply, 2))
	assert.Equal(t, uint64(10), balanceOf(db, other))
}

func TestFailedExecutionIsRolledBack(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	wallet := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := newTestController()
	assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator}))
	setBalance(db, wallet, 5)

	_, err := ctrl.Create(context.Background(), db, creator, SubtypeBurn, 1, &TokenSupplyPayload{Amount: 10, Wallet: wallet})
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Vote(context.Background(), db, creator, RequestTypeTokenSupply, 1, true))

	ctx, events := stablecoin.WithEvents(context.Background())
	assert.IsErr(t, errors.ErrInsufficientBalance, ctrl.Execute(ctx, db, creator, RequestTypeTokenSupply, 1))
	assert.Equal(t, 0, len(events.Events()))
	// the fake zeroed the balance before failing
	assert.Equal(t, uint64(5), balanceOf(db, wallet))
	req, err := ctrl.Get(db, RequestTypeTokenSupply, 1)
	assert.Nil(t, err)
	assert.Equal(t, StatusAccepted, req.Status)

	// retry once the balance is sufficient
	setBalance(db, wallet, 15)
	assert.Nil(t, ctrl.Execute(ctx, db, creator, RequestTypeTokenSupply, 1))
	assert.Equal(t, uint64(5), balanceOf(db, wallet))
}

func TestExecuteEventAttributes(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := newTestController()
	assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator}))

	_, err := ctrl.Create(context.Background(), db, creator, SubtypeAdd, 7, &SignatoryPayload{Wallets: []stablecoin.Address{a, b}})
	assert.Nil(t, err)
	_, err = ctrl.Create(context.Background(), db, creator, SubtypeUpdate, 7, &ThresholdPayload{TargetType: RequestTypeWhitelist, Thresholds: []uint32{1, 2}})
	assert.Nil(t, err)
	assert.Nil(t, ctrl.Vote(context.Background(), db, creator, RequestTypeSignatory, 7, true))
	assert.Nil(t, ctrl.Vote(context.Background(), db, creator, RequestTypeThreshold, 7, true))

	ctx, events := stablecoin.WithEvents(context.Background())
	assert.Nil(t, ctrl.Execute(ctx, db, creator, RequestTypeSignatory, 7))
	assert.Nil(t, ctrl.Execute(ctx, db, creator, RequestTypeThreshold, 7))
	assert.Equal(t, 2, len(events.Events()))

	sigs := events.Events()[0]
	v, _ := sigs.Attr("reqType")
	assert.Equal(t, "1", v)
	v, _ = sigs.Attr("signatoryAddress")
	assert.Equal(t, a.String()+","+b.String(), v)

	th := events.Events()[1]
	v, _ = th.Attr("reqType")
	assert.Equal(t, "4", v)
	v, _ = th.Attr("reqId")
	assert.Equal(t, "7", v)
}
