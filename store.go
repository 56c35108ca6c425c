package stablecoin

// Keys and values passed to or returned by any of the store interfaces are
// read only. A nil key makes Get, Has, Set and Delete panic.

// ReadOnlyKVStore gives access to the data without changing it.
type ReadOnlyKVStore interface {
	// Get returns nil when the key is not set.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks the keys in [start, end) in ascending order. A nil
	// bound leaves that side of the range open.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks the same range in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write side shared by stores and batches.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the store every handler and controller works with.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a range of keys:
//
//	it := db.Iterator(start, end)
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		key, value := it.Key(), it.Value()
//	}
//
// Next, Key and Value panic once Valid has returned false.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a cache on top of itself. Handlers use it to
// run a block of writes that is kept or rolled back as one, much like a
// database savepoint.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes on top of a parent store. Reads see the pending
// writes, the parent does not until Write is called. Discard drops them.
// Both leave the cache empty and ready for reuse.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the versioned store the application state lives in.
// Changes are made through a CacheWrap and saved as a new version by Commit.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) []byte
	CacheWrap() KVCacheWrap
	Commit() CommitID
	// LoadLatestVersion restores the last complete version, so a crash
	// during a commit leaves the previous state.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID names a saved version by number and merkle root. The root is the
// app hash reported to tendermint.
type CommitID struct {
	Version int64
	Hash    []byte
}
