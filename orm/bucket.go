/*
Package orm splits the key space into named buckets. A bucket holds models
of a single protobuf type under "<name>:<key>" and answers key and prefix
queries over them.
*/
package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr is a *[]T or *[]*T where T is the model of a bucket. The
// element type is checked at runtime.
type ModelSlicePtr interface{}

// ModelBucket is a prefixed subspace of the DB that stores models of a
// single type.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

var _ stablecoin.QueryHandler = ModelBucket{}

// NewModelBucket returns a bucket that stores instances of given model type
// under a prefix derived from the name.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", m))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		model:  tp.Elem(),
	}
}

// Name returns the bucket name.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey returns the prefixed key. The result never shares memory with the
// bucket prefix.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append(make([]byte, 0, len(b.prefix)+len(key)), b.prefix...), key...)
}

// One loads the model stored under key into dest, or returns ErrNotFound.
func (b ModelBucket) One(db stablecoin.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.assertModel(dest); err != nil {
		return err
	}
	raw := db.Get(b.DBKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "cannot decode %s: %s", b.name, err)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db stablecoin.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Put saves given model in the database. The model is validated first.
func (b ModelBucket) Put(db stablecoin.KVStore, key []byte, m Model) error {
	if err := b.assertModel(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s model", b.name)
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot encode %s: %s", b.name, err)
	}
	db.Set(b.DBKey(key), raw)
	return nil
}

// Delete removes an entity with given primary key from the database.
// It returns ErrNotFound if an entity with given key does not exist.
func (b ModelBucket) Delete(db stablecoin.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	if !db.Has(dbkey) {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	db.Delete(dbkey)
	return nil
}

// ByPrefix loads all models which key starts with given prefix into the
// destination, in key order. Destination must be a pointer to a slice of
// models, []MyModel or []*MyModel. It returns the keys of loaded models,
// without the bucket prefix.
func (b ModelBucket) ByPrefix(db stablecoin.ReadOnlyKVStore, prefix []byte, destination ModelSlicePtr) ([][]byte, error) {
	dest, pointers, err := b.sliceOf(destination)
	if err != nil {
		return nil, err
	}

	var keys [][]byte
	start, end := prefixRange(b.DBKey(prefix))
	it := db.Iterator(start, end)
	defer it.Close()
	for ; it.Valid(); it.Next() {
		val := reflect.New(b.model)
		if err := proto.Unmarshal(it.Value(), val.Interface().(proto.Message)); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot decode %s: %s", b.name, err)
		}
		if !pointers {
			val = val.Elem()
		}
		dest.Set(reflect.Append(dest, val))
		keys = append(keys, it.Key()[len(b.prefix):])
	}
	return keys, nil
}

// Register registers this bucket for queries under "/" + name. An empty name
// uses the bucket name.
func (b ModelBucket) Register(name string, r stablecoin.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter. The key mod returns a single
// entity stored under given key, the prefix mod all entities which key
// starts with given data.
func (b ModelBucket) Query(db stablecoin.ReadOnlyKVStore, mod string, data []byte) ([]stablecoin.Model, error) {
	switch mod {
	case stablecoin.KeyQueryMod:
		key := b.DBKey(data)
		value := db.Get(key)
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []stablecoin.Model{stablecoin.Pair(key, value)}, nil
	case stablecoin.PrefixQueryMod:
		start, end := prefixRange(b.DBKey(data))
		return ConsumeIterator(db.Iterator(start, end)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod %q", mod)
	}
}

// sliceOf returns the slice destination points to, and whether its elements
// are pointers.
func (b ModelBucket) sliceOf(destination ModelSlicePtr) (reflect.Value, bool, error) {
	ptr := reflect.ValueOf(destination)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() || ptr.Elem().Kind() != reflect.Slice {
		return reflect.Value{}, false, errors.Wrapf(errors.ErrInvalidType, "want *[]%s, got %T", b.model, destination)
	}
	elem := ptr.Elem().Type().Elem()
	pointers := elem.Kind() == reflect.Ptr
	if pointers {
		elem = elem.Elem()
	}
	if elem != b.model {
		return reflect.Value{}, false, errors.Wrapf(errors.ErrInvalidType, "%s bucket holds %s, not %s", b.name, b.model, elem)
	}
	return ptr.Elem(), pointers, nil
}

func (b ModelBucket) assertModel(m Model) error {
	tp := reflect.TypeOf(m)
	if tp == nil || tp.Kind() != reflect.Ptr || tp.Elem() != b.model {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be stored in %s bucket", m, b.name)
	}
	return nil
}
