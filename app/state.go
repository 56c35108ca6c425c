package app

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

// chainState tracks the committed store together with the two caches that
// collect the writes of the block being processed. The deliver cache becomes
// the next version on commit, the check cache is thrown away.
type chainState struct {
	committed stablecoin.CommitKVStore
	deliver   stablecoin.KVCacheWrap
	check     stablecoin.KVCacheWrap
}

// openState loads the latest saved version of kv. It panics when the
// database cannot be read, as there is nothing the node can do without it.
func openState(kv stablecoin.CommitKVStore) *chainState {
	if err := kv.LoadLatestVersion(); err != nil {
		panic(errors.Wrap(err, "load latest version"))
	}
	st := &chainState{committed: kv}
	st.reset()
	return st
}

func (st *chainState) reset() {
	st.deliver = st.committed.CacheWrap()
	st.check = st.committed.CacheWrap()
}

// last describes the most recent commit.
func (st *chainState) last() stablecoin.CommitID {
	return st.committed.LatestVersion()
}

func (st *chainState) height() int64 {
	return st.last().Version
}

// commit persists everything written during delivery and starts fresh
// caches for the next block.
func (st *chainState) commit() (stablecoin.CommitID, error) {
	if err := st.deliver.Write(); err != nil {
		return stablecoin.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	st.check.Discard()
	id := st.committed.Commit()
	st.reset()
	return id, nil
}

// snapshot gives a view of the last commit that no pending write can reach.
func (st *chainState) snapshot() stablecoin.ReadOnlyKVStore {
	return st.committed.CacheWrap()
}

// chainIDKey lives under the _sc: prefix that is reserved for application
// bookkeeping and never used by an extension bucket.
const chainIDKey = "_sc:chainID"

func loadChainID(kv stablecoin.ReadOnlyKVStore) string {
	return string(kv.Get([]byte(chainIDKey)))
}

// saveChainID records the chain id. It can be done once only.
func saveChainID(kv stablecoin.KVStore, chainID string) error {
	if !stablecoin.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id: %v", chainID)
	}
	key := []byte(chainIDKey)
	if kv.Has(key) {
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis and cannot change")
	}
	kv.Set(key, []byte(chainID))
	return nil
}
