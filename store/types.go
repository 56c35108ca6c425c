/*
Package store implements the key value stores the application state lives
in: a btree backed cache wrap usable over any KVStore, an in-memory store for
tests and plain helpers for batches and iterators. The durable store is in
store/iavl.

The interfaces are declared in the root package so that extensions need not
import this one. They are aliased here for implementations.
*/
package store

import "github.com/iov-one/stablecoin"

type (
	Model            = stablecoin.Model
	CommitID         = stablecoin.CommitID
	ReadOnlyKVStore  = stablecoin.ReadOnlyKVStore
	SetDeleter       = stablecoin.SetDeleter
	KVStore          = stablecoin.KVStore
	CacheableKVStore = stablecoin.CacheableKVStore
	KVCacheWrap      = stablecoin.KVCacheWrap
	CommitKVStore    = stablecoin.CommitKVStore
	Batch            = stablecoin.Batch
	Iterator         = stablecoin.Iterator
)
