package store

// MemStore returns an in-memory store, useful for tests. Nothing below the
// returned cache persists it, so writing it drops the data.
func MemStore() CacheableKVStore {
	return NewCacheStore(Empty{})
}

// Cacheable adds cache wraps to a store that lacks them.
func Cacheable(kv KVStore) CacheableKVStore {
	return cacheable{KVStore: kv}
}

type cacheable struct {
	KVStore
}

func (c cacheable) CacheWrap() KVCacheWrap {
	return NewCacheStore(c.KVStore)
}

// Empty is a store without data. Writes are dropped.
type Empty struct{}

var _ KVStore = Empty{}

func (Empty) Get(key []byte) []byte                      { return nil }
func (Empty) Has(key []byte) bool                        { return false }
func (Empty) Set(key, value []byte)                      {}
func (Empty) Delete(key []byte)                          {}
func (Empty) Iterator(start, end []byte) Iterator        { return NewSliceIterator(nil) }
func (Empty) ReverseIterator(start, end []byte) Iterator { return NewSliceIterator(nil) }
func (e Empty) NewBatch() Batch                          { return NewOpBatch(e) }

// SliceIterator iterates over preloaded models in slice order.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) > 0
}

func (s *SliceIterator) Next() {
	s.current()
	s.models = s.models[1:]
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.models = nil
}

func (s *SliceIterator) current() Model {
	if len(s.models) == 0 {
		panic("iterator is exhausted")
	}
	return s.models[0]
}

// Op is a single recorded write.
type Op struct {
	Key    []byte
	Value  []byte
	Delete bool
}

// SetOp records setting key to value.
func SetOp(key, value []byte) Op {
	return Op{Key: key, Value: value}
}

// DelOp records removing key.
func DelOp(key []byte) Op {
	return Op{Key: key, Delete: true}
}

// Apply runs the operation on out.
func (o Op) Apply(out SetDeleter) {
	if o.Delete {
		out.Delete(o.Key)
	} else {
		out.Set(o.Key, o.Value)
	}
}

// OpBatch records writes and replays them in order on Write. It is not
// atomic, a panic half way leaves the output partially written.
type OpBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*OpBatch)(nil)

func NewOpBatch(out SetDeleter) *OpBatch {
	return &OpBatch{out: out}
}

func (b *OpBatch) Set(key, value []byte) {
	b.ops = append(b.ops, SetOp(key, value))
}

func (b *OpBatch) Delete(key []byte) {
	b.ops = append(b.ops, DelOp(key))
}

// Write replays all recorded operations and forgets them.
func (b *OpBatch) Write() error {
	for _, op := range b.ops {
		op.Apply(b.out)
	}
	b.ops = nil
	return nil
}

// Ops returns the recorded operations that were not written yet.
func (b *OpBatch) Ops() []Op {
	return b.ops
}
