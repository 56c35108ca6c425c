package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of the pending writes tree. Cache
// wraps live for a single transaction or block, so they stay small.
const btreeDegree = 8

// CacheStore keeps writes in an ordered btree on top of a parent store.
// Keys that were never written are read from the parent. Write moves the
// final state of every written key into the parent.
type CacheStore struct {
	parent  KVStore
	pending *btree.BTree
}

var _ KVCacheWrap = (*CacheStore)(nil)

// NewCacheStore returns an empty cache over parent.
func NewCacheStore(parent KVStore) *CacheStore {
	return &CacheStore{
		parent:  parent,
		pending: btree.New(btreeDegree),
	}
}

// entry is a pending write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

func (c *CacheStore) lookup(key []byte) (*entry, bool) {
	item := c.pending.Get(&entry{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*entry), true
}

// Get returns the pending value of the key or the parent one.
func (c *CacheStore) Get(key []byte) []byte {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil
		}
		return e.value
	}
	return c.parent.Get(key)
}

// Has returns true if the key holds a value.
func (c *CacheStore) Has(key []byte) bool {
	if e, ok := c.lookup(key); ok {
		return !e.deleted
	}
	return c.parent.Has(key)
}

func (c *CacheStore) Set(key, value []byte) {
	c.pending.ReplaceOrInsert(&entry{key: key, value: value})
}

func (c *CacheStore) Delete(key []byte) {
	c.pending.ReplaceOrInsert(&entry{key: key, deleted: true})
}

// NewBatch returns a batch writing into this cache.
func (c *CacheStore) NewBatch() Batch {
	return NewOpBatch(c)
}

// CacheWrap returns a cache on top of this one. Writing it only changes
// this cache.
func (c *CacheStore) CacheWrap() KVCacheWrap {
	return NewCacheStore(c)
}

// Write applies all pending writes to the parent and empties the cache.
func (c *CacheStore) Write() error {
	c.pending.Ascend(func(i btree.Item) bool {
		e := i.(*entry)
		if e.deleted {
			c.parent.Delete(e.key)
		} else {
			c.parent.Set(e.key, e.value)
		}
		return true
	})
	c.Discard()
	return nil
}

// Discard drops all pending writes.
func (c *CacheStore) Discard() {
	c.pending = btree.New(btreeDegree)
}

// Iterator returns keys from start (inclusive) to end (exclusive) in
// ascending order. A nil bound is open.
func (c *CacheStore) Iterator(start, end []byte) Iterator {
	return newMergeIterator(c.collect(start, end), c.parent.Iterator(start, end), true)
}

// ReverseIterator returns the same range as Iterator in descending order.
func (c *CacheStore) ReverseIterator(start, end []byte) Iterator {
	pending := c.collect(start, end)
	for i, j := 0, len(pending)-1; i < j; i, j = i+1, j-1 {
		pending[i], pending[j] = pending[j], pending[i]
	}
	return newMergeIterator(pending, c.parent.ReverseIterator(start, end), false)
}

// collect returns the pending entries of the range in ascending order.
func (c *CacheStore) collect(start, end []byte) []*entry {
	var res []*entry
	visit := func(i btree.Item) bool {
		res = append(res, i.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.pending.Ascend(visit)
	case start == nil:
		c.pending.AscendLessThan(&entry{key: end}, visit)
	case end == nil:
		c.pending.AscendGreaterOrEqual(&entry{key: start}, visit)
	default:
		c.pending.AscendRange(&entry{key: start}, &entry{key: end}, visit)
	}
	return res
}

// mergeIterator joins a snapshot of pending entries with the parent
// iterator. A pending entry shadows the parent entry with the same key.
type mergeIterator struct {
	pending   []*entry
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(pending []*entry, parent Iterator, ascending bool) *mergeIterator {
	it := &mergeIterator{pending: pending, parent: parent, ascending: ascending}
	it.skipDeleted()
	return it
}

type cursor int

const (
	atPending cursor = iota
	atParent
	atBoth
	atEnd
)

// head tells which source holds the next key.
func (m *mergeIterator) head() cursor {
	hasPending, hasParent := len(m.pending) > 0, m.parent.Valid()
	switch {
	case !hasPending && !hasParent:
		return atEnd
	case !hasParent:
		return atPending
	case !hasPending:
		return atParent
	}
	cmp := bytes.Compare(m.pending[0].key, m.parent.Key())
	if !m.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return atPending
	case cmp > 0:
		return atParent
	default:
		return atBoth
	}
}

func (m *mergeIterator) advance(at cursor) {
	switch at {
	case atPending:
		m.pending = m.pending[1:]
	case atParent:
		m.parent.Next()
	case atBoth:
		m.pending = m.pending[1:]
		m.parent.Next()
	}
}

func (m *mergeIterator) skipDeleted() {
	for {
		at := m.head()
		if at != atPending && at != atBoth {
			return
		}
		if !m.pending[0].deleted {
			return
		}
		m.advance(at)
	}
}

func (m *mergeIterator) Valid() bool {
	return m.head() != atEnd
}

func (m *mergeIterator) Next() {
	at := m.head()
	if at == atEnd {
		panic("iterator is exhausted")
	}
	m.advance(at)
	m.skipDeleted()
}

func (m *mergeIterator) Key() []byte {
	switch m.head() {
	case atPending, atBoth:
		return m.pending[0].key
	case atParent:
		return m.parent.Key()
	}
	panic("iterator is exhausted")
}

func (m *mergeIterator) Value() []byte {
	switch m.head() {
	case atPending, atBoth:
		return m.pending[0].value
	case atParent:
		return m.parent.Value()
	}
	panic("iterator is exhausted")
}

func (m *mergeIterator) Close() {
	m.parent.Close()
	m.pending = nil
}
