package orm

import "github.com/iov-one/stablecoin"

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr stablecoin.Iterator) []stablecoin.Model {
	defer itr.Close()

	var res []stablecoin.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, stablecoin.Pair(itr.Key(), itr.Value()))
	}
	return res
}

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// singletonQuery serves a single entity of a bucket regardless of the query
// data.
type singletonQuery struct {
	bucket ModelBucket
	key    []byte
}

// Singleton returns a query handler for a bucket that holds one entity, stored
// under given key. Any query returns that entity, or nothing if it was never
// stored.
func (b ModelBucket) Singleton(key []byte) stablecoin.QueryHandler {
	return singletonQuery{bucket: b, key: key}
}

func (q singletonQuery) Query(db stablecoin.ReadOnlyKVStore, _ string, _ []byte) ([]stablecoin.Model, error) {
	return q.bucket.Query(db, stablecoin.KeyQueryMod, q.key)
}
