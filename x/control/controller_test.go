package control

import (
	"context"
	"fmt"
	"testing"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store"
	"github.com/iov-one/stablecoin/weavetest"
	"github.com/iov-one/stablecoin/weavetest/assert"
)

func TestCreate(t *testing.T) {
	signer := weavetest.NewCondition().Address()
	stranger := weavetest.NewCondition().Address()
	wallet := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Caller  stablecoin.Address
		Subtype Subtype
		ID      uint64
		Payload Payload
		WantErr *errors.Error
	}{
		"mint request": {
			Caller:  signer,
			Subtype: SubtypeMint,
			ID:      2,
			Payload: &TokenSupplyPayload{Amount: 10000, Wallet: wallet},
		},
		"same id in another namespace": {
			Caller:  signer,
			Subtype: SubtypePause,
			ID:      1,
			Payload: &TransactionPayload{},
		},
		"duplicated id": {
			Caller:  signer,
			Subtype: SubtypeAdd,
			ID:      1,
			Payload: &SignatoryPayload{Wallets: []stablecoin.Address{wallet}},
			WantErr: errors.ErrDuplicate,
		},
		"not a signatory": {
			Caller:  stranger,
			Subtype: SubtypeMint,
			ID:      3,
			Payload: &TokenSupplyPayload{Amount: 1, Wallet: wallet},
			WantErr: errors.ErrUnauthorized,
		},
		"threshold for signatory requests": {
			Caller:  signer,
			Subtype: SubtypeUpdate,
			ID:      1,
			Payload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{3, 3}},
		},
		"threshold count mismatch": {
			Caller:  signer,
			Subtype: SubtypeUpdate,
			ID:      1,
			Payload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{3, 3, 3}},
			WantErr: errors.ErrInvalidThresholdCounts,
		},
		"threshold without values": {
			Caller:  signer,
			Subtype: SubtypeUpdate,
			ID:      1,
			Payload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{}},
			WantErr: errors.ErrInvalidThresholdCounts,
		},
		"threshold count is checked before the values": {
			Caller:  signer,
			Subtype: SubtypeUpdate,
			ID:      1,
			Payload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{0, 3, 3}},
			WantErr: errors.ErrInvalidThresholdCounts,
		},
		"threshold below one": {
			Caller:  signer,
			Subtype: SubtypeUpdate,
			ID:      1,
			Payload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{0, 3}},
			WantErr: errors.ErrInvalidInput,
		},
		"unknown subtype": {
			Caller:  signer,
			Subtype: Subtype(2),
			ID:      4,
			Payload: &WhitelistPayload{Wallets: []stablecoin.Address{wallet}},
			WantErr: errors.ErrInvalidInput,
		},
		"zero amount": {
			Caller:  signer,
			Subtype: SubtypeBurn,
			ID:      5,
			Payload: &TokenSupplyPayload{Wallet: wallet},
			WantErr: errors.ErrInvalidAmount,
		},
		"no wallets": {
			Caller:  signer,
			Subtype: SubtypeAdd,
			ID:      6,
			Payload: &WhitelistPayload{},
			WantErr: errors.ErrEmpty,
		},
		"no payload": {
			Caller:  signer,
			ID:      7,
			WantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := newTestController()
			assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{signer}))
			// id 1 of the signatory namespace is taken
			_, err := ctrl.Create(context.Background(), db, signer, SubtypeRemove, 1,
				&SignatoryPayload{Wallets: []stablecoin.Address{wallet}})
			assert.Nil(t, err)

			ctx, events := stablecoin.WithEvents(context.Background())
			req, err := ctrl.Create(ctx, db, tc.Caller, tc.Subtype, tc.ID, tc.Payload)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err != nil {
				assert.Equal(t, 0, len(events.Events()))
				return
			}

			got, err := ctrl.Get(db, tc.Payload.RequestType(), tc.ID)
			assert.Nil(t, err)
			assert.Equal(t, req, got)
			assert.Equal(t, StatusInProgress, got.Status)
			assert.Equal(t, 0, len(got.Approvals))
			assert.Equal(t, tc.Caller, got.Creator)
			assert.Equal(t, tc.Payload, got.Payload())

			assert.Equal(t, []string{EventRequestCreated}, eventNames(events))
			e := events.Events()[0]
			owner, _ := e.Attr("owner")
			assert.Equal(t, tc.Caller.String(), owner)
			reqType, _ := e.Attr("reqType")
			assert.Equal(t, fmt.Sprint(uint32(tc.Payload.RequestType())), reqType)
		})
	}
}

func TestGetAndList(t *testing.T) {
	signer := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := newTestController()
	assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{signer}))

	_, err := ctrl.Get(db, RequestTypeTransaction, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = ctrl.Get(db, RequestType(7), 1)
	assert.IsErr(t, errors.ErrInvalidInput, err)

	// ids are listed in numeric order, not in creation order
	for _, id := range []uint64{300, 2, 1 << 40} {
		_, err := ctrl.Create(context.Background(), db, signer, SubtypePause, id, &TransactionPayload{})
		assert.Nil(t, err)
	}
	_, err = ctrl.Create(context.Background(), db, signer, SubtypeAdd, 5,
		&WhitelistPayload{Wallets: []stablecoin.Address{signer}})
	assert.Nil(t, err)

	reqs, err := ctrl.List(db, RequestTypeTransaction)
	assert.Nil(t, err)
	var ids []uint64
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []uint64{2, 300, 1 << 40}, ids)

	reqs, err = ctrl.List(db, RequestTypeSignatory)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(reqs))
}

func TestUpdate(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()
	wallet := weavetest.NewCondition().Address()
	wallet2 := weavetest.NewCondition().Address()

	cases := map[string]struct {
		// Create is called by the creator, then Vote by other approves
		// it when Approve is set.
		Create      Payload
		Subtype     Subtype
		Approve     bool
		Caller      stablecoin.Address
		Update      Payload
		WantErr     *errors.Error
		WantPayload Payload
	}{
		"token supply": {
			Create:      &TokenSupplyPayload{Amount: 10, Wallet: wallet},
			Subtype:     SubtypeMint,
			Caller:      creator,
			Update:      &TokenSupplyPayload{Amount: 20, Wallet: wallet2},
			WantPayload: &TokenSupplyPayload{Amount: 20, Wallet: wallet2},
		},
		"signatory wallets": {
			Create:      &SignatoryPayload{Wallets: []stablecoin.Address{wallet}},
			Subtype:     SubtypeAdd,
			Caller:      creator,
			Update:      &SignatoryPayload{Wallets: []stablecoin.Address{wallet, wallet2}},
			WantPayload: &SignatoryPayload{Wallets: []stablecoin.Address{wallet, wallet2}},
		},
		"threshold keeps the target type": {
			Create:      &ThresholdPayload{TargetType: RequestTypeWhitelist, Thresholds: []uint32{2, 2}},
			Subtype:     SubtypeUpdate,
			Caller:      creator,
			Update:      &ThresholdPayload{Thresholds: []uint32{5, 5}},
			WantPayload: &ThresholdPayload{TargetType: RequestTypeWhitelist, Thresholds: []uint32{5, 5}},
		},
		"threshold count of the target type": {
			Create:      &ThresholdPayload{TargetType: RequestTypeThreshold, Thresholds: []uint32{2}},
			Subtype:     SubtypeUpdate,
			Caller:      creator,
			Update:      &ThresholdPayload{Thresholds: []uint32{5, 5}},
			WantErr:     errors.ErrInvalidThresholdCounts,
			WantPayload: &ThresholdPayload{TargetType: RequestTypeThreshold, Thresholds: []uint32{2}},
		},
		"threshold without values": {
			Create:      &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{2, 2}},
			Subtype:     SubtypeUpdate,
			Caller:      creator,
			Update:      &ThresholdPayload{Thresholds: []uint32{}},
			WantErr:     errors.ErrInvalidThresholdCounts,
			WantPayload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{2, 2}},
		},
		"threshold count before values": {
			Create:      &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{2, 2}},
			Subtype:     SubtypeUpdate,
			Caller:      creator,
			Update:      &ThresholdPayload{Thresholds: []uint32{0, 3, 3}},
			WantErr:     errors.ErrInvalidThresholdCounts,
			WantPayload: &ThresholdPayload{TargetType: RequestTypeSignatory, Thresholds: []uint32{2, 2}},
		},
		"not the creator": {
			Create:      &WhitelistPayload{Wallets: []stablecoin.Address{wallet}},
			Subtype:     SubtypeRemove,
			Caller:      other,
			Update:      &WhitelistPayload{Wallets: []stablecoin.Address{wallet2}},
			WantErr:     errors.ErrUnauthorized,
			WantPayload: &WhitelistPayload{Wallets: []stablecoin.Address{wallet}},
		},
		"accepted request": {
			Create:      &WhitelistPayload{Wallets: []stablecoin.Address{wallet}},
			Subtype:     SubtypeAdd,
			Approve:     true,
			Caller:      creator,
			Update:      &WhitelistPayload{Wallets: []stablecoin.Address{wallet2}},
			WantErr:     errors.ErrInvalidState,
			WantPayload: &WhitelistPayload{Wallets: []stablecoin.Address{wallet}},
		},
		"invalid payload": {
			Create:      &TokenSupplyPayload{Amount: 10, Wallet: wallet},
			Subtype:     SubtypeBurn,
			Caller:      creator,
			Update:      &TokenSupplyPayload{Amount: 10},
			WantErr:     errors.ErrInvalidInput,
			WantPayload: &TokenSupplyPayload{Amount: 10, Wallet: wallet},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := newTestController()
			assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator, other}))
			rt := tc.Create.RequestType()
			// a quorum of two keeps a single vote in progress
			assert.Nil(t, fakeThresholds{}.Set(db, rt, uint32s(SubtypeCount(rt), 2)))

			_, err := ctrl.Create(context.Background(), db, creator, tc.Subtype, 9, tc.Create)
			assert.Nil(t, err)
			assert.Nil(t, ctrl.Vote(context.Background(), db, other, rt, 9, true))
			if tc.Approve {
				assert.Nil(t, ctrl.Vote(context.Background(), db, creator, rt, 9, true))
			}

			ctx, events := stablecoin.WithEvents(context.Background())
			if err := ctrl.Update(ctx, db, tc.Caller, 9, tc.Update); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			req, err := ctrl.Get(db, rt, 9)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantPayload, req.Payload())
			assert.Equal(t, tc.Subtype, req.Subtype)
			// approvals survive an update
			assert.Equal(t, other, req.Approvals[0])
			if tc.WantErr == nil {
				assert.Equal(t, []string{EventRequestUpdated}, eventNames(events))
			}
		})
	}
}

func TestUpdateSubtype(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()
	db := store.MemStore()
	ctrl := newTestController()
	assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator, other}))
	ctx := context.Background()

	_, err := ctrl.Create(ctx, db, creator, SubtypePause, 1, &TransactionPayload{})
	assert.Nil(t, err)

	assert.IsErr(t, errors.ErrUnauthorized, ctrl.UpdateSubtype(ctx, db, other, 1, SubtypeUnpause))
	assert.IsErr(t, errors.ErrInvalidInput, ctrl.UpdateSubtype(ctx, db, creator, 1, Subtype(2)))
	assert.IsErr(t, errors.ErrNotFound, ctrl.UpdateSubtype(ctx, db, creator, 2, SubtypeUnpause))
	assert.Nil(t, ctrl.UpdateSubtype(ctx, db, creator, 1, SubtypeUnpause))

	req, err := ctrl.Get(db, RequestTypeTransaction, 1)
	assert.Nil(t, err)
	assert.Equal(t, SubtypeUnpause, req.Subtype)

	assert.Nil(t, ctrl.Cancel(ctx, db, creator, RequestTypeTransaction, 1))
	assert.IsErr(t, errors.ErrInvalidState, ctrl.UpdateSubtype(ctx, db, creator, 1, SubtypePause))
}

func TestCancel(t *testing.T) {
	creator := weavetest.NewCondition().Address()
	other := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Prepare func(t testing.TB, db stablecoin.KVStore, ctrl *Controller)
		Caller  stablecoin.Address
		WantErr *errors.Error
	}{
		"in progress": {
			Caller: creator,
		},
		"accepted": {
			Prepare: func(t testing.TB, db stablecoin.KVStore, ctrl *Controller) {
				assert.Nil(t, ctrl.Vote(context.Background(), db, other, RequestTypeTransaction, 1, true))
			},
			Caller: creator,
		},
		"executed": {
			Prepare: func(t testing.TB, db stablecoin.KVStore, ctrl *Controller) {
				assert.Nil(t, ctrl.Vote(context.Background(), db, other, RequestTypeTransaction, 1, true))
				assert.Nil(t, ctrl.Execute(context.Background(), db, creator, RequestTypeTransaction, 1))
			},
			Caller:  creator,
			WantErr: errors.ErrInvalidState,
		},
		"already cancelled": {
			Prepare: func(t testing.TB, db stablecoin.KVStore, ctrl *Controller) {
				assert.Nil(t, ctrl.Cancel(context.Background(), db, creator, RequestTypeTransaction, 1))
			},
			Caller:  creator,
			WantErr: errors.ErrInvalidState,
		},
		"not the creator": {
			Caller:  other,
			WantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := newTestController()
			assert.Nil(t, fakeSignatories{}.Add(db, []stablecoin.Address{creator, other}))
			_, err := ctrl.Create(context.Background(), db, creator, SubtypePause, 1, &TransactionPayload{})
			assert.Nil(t, err)
			if tc.Prepare != nil {
				tc.Prepare(t, db, ctrl)
			}
			before, err := ctrl.Get(db, RequestTypeTransaction, 1)
			assert.Nil(t, err)

			ctx, events := stablecoin.WithEvents(context.Background())
			err = ctrl.Cancel(ctx, db, tc.Caller, RequestTypeTransaction, 1)
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			after, err := ctrl.Get(db, RequestTypeTransaction, 1)
			assert.Nil(t, err)
			if tc.WantErr != nil {
				assert.Equal(t, before, after)
				return
			}
			assert.Equal(t, StatusCancelled, after.Status)
			assert.Equal(t, []string{EventRequestCancelled}, eventNames(events))

			// a cancelled request is frozen
			assert.IsErr(t, errors.ErrInvalidState, ctrl.Vote(context.Background(), db, other, RequestTypeTransaction, 1, true))
			assert.IsErr(t, errors.ErrInvalidState, ctrl.Execute(context.Background(), db, creator, RequestTypeTransaction, 1))
			assert.IsErr(t, errors.ErrInvalidState, ctrl.Update(context.Background(), db, creator, 1, &TransactionPayload{}))
		})
	}
}

func uint32s(n int, v uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = v
	}
	return out
}
