/*
Package iavl provides the durable commit store of the application. State is
kept in an iavl merkle tree persisted in a goleveldb database.
*/
package iavl

import (
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistorySize is the number of committed versions kept on disk.
	// Zero keeps all of them.
	DefaultHistorySize = 20
)

// CommitStore holds the application state in a versioned tree. Writes
// change the working tree, reads through Get see the last saved version.
type CommitStore struct {
	tree    *iavl.MutableTree
	history int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens, or creates, the named leveldb database in dir.
func NewCommitStore(dir, name string) CommitStore {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		panic(errors.Wrapf(errors.ErrDatabase, "open %s/%s: %s", dir, name, err))
	}
	return newCommitStore(db)
}

// NewMemCommitStore creates a commit store backed by an in-memory database.
// Nothing is persisted.
func NewMemCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{
		tree:    iavl.NewMutableTree(db, DefaultCacheSize),
		history: DefaultHistorySize,
	}
}

// Get reads the last saved version. It returns nil before the first
// commit.
func (s CommitStore) Get(key []byte) []byte {
	version := s.tree.Version()
	if version == 0 {
		return nil
	}
	_, value := s.tree.GetVersioned(key, version)
	return value
}

// Commit saves the working tree as a new version. Versions older than the
// history size are pruned.
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(errors.Wrap(errors.ErrDatabase, err.Error()))
	}
	if prune := version - s.history; s.history > 0 && prune > 0 && s.tree.VersionExists(prune) {
		if err := s.tree.DeleteVersion(prune); err != nil {
			panic(errors.Wrapf(errors.ErrDatabase, "prune version %d: %s", prune, err))
		}
	}
	return store.CommitID{Version: version, Hash: hash}
}

// LoadLatestVersion loads the last version saved to disk.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns the version and root hash of the last save.
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap returns a cache over the working tree. Writing the cache
// changes the working tree only, the changes are saved by the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter exposes the working tree as a KVStore.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return store.Cacheable(workingTree{tree: s.tree})
}

type workingTree struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = workingTree{}

func (w workingTree) Get(key []byte) []byte {
	_, value := w.tree.Get(key)
	return value
}

func (w workingTree) Has(key []byte) bool {
	return w.tree.Has(key)
}

func (w workingTree) Set(key, value []byte) {
	w.tree.Set(key, value)
}

func (w workingTree) Delete(key []byte) {
	w.tree.Remove(key)
}

func (w workingTree) NewBatch() store.Batch {
	return store.NewOpBatch(w)
}

func (w workingTree) Iterator(start, end []byte) store.Iterator {
	return w.load(start, end, true)
}

func (w workingTree) ReverseIterator(start, end []byte) store.Iterator {
	return w.load(start, end, false)
}

// load reads the whole range up front, so that the tree can be written
// while the iterator is open.
func (w workingTree) load(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	w.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(models)
}
