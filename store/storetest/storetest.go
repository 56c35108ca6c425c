/*
Package storetest checks KVStore implementations against a plain map model.
Random sequences of writes, reads, iterations and nested cache wraps are run
on the store under test and on the model, and every read must agree.
*/
package storetest

import (
	"bytes"
	"sort"
	"testing"

	"github.com/iov-one/stablecoin"
	"pgregory.net/rapid"
)

// Factory returns a fresh, empty store and a function releasing it.
type Factory func() (stablecoin.CacheableKVStore, func())

// Run checks the store returned by newStore on random operation sequences.
func Run(t *testing.T, newStore Factory) {
	rapid.Check(t, func(t *rapid.T) {
		kv, cleanup := newStore()
		defer cleanup()
		m := &machine{kv: kv, layers: []layer{{store: kv, model: model{}}}}
		t.Repeat(map[string]func(*rapid.T){
			"set":        m.set,
			"delete":     m.delete,
			"get":        m.get,
			"iterate":    m.iterate,
			"cache wrap": m.wrap,
			"write":      m.write,
			"discard":    m.discard,
			"":           m.check,
		})
	})
}

// Keys are drawn from a small alphabet so that operations collide often.
var keyGen = rapid.SliceOfN(rapid.ByteRange('a', 'd'), 1, 3)

// model maps a key to its value. A missing entry is an absent key.
type model map[string][]byte

func (m model) clone() model {
	c := make(model, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// layer is a store along with the state it is expected to hold.
type layer struct {
	store stablecoin.KVStore
	model model
}

type machine struct {
	kv     stablecoin.CacheableKVStore
	layers []layer
}

func (m *machine) top() *layer {
	return &m.layers[len(m.layers)-1]
}

func (m *machine) set(t *rapid.T) {
	key := keyGen.Draw(t, "key")
	value := rapid.SliceOfN(rapid.Byte(), 1, 8).Draw(t, "value")
	top := m.top()
	top.store.Set(key, value)
	top.model[string(key)] = value
}

func (m *machine) delete(t *rapid.T) {
	key := keyGen.Draw(t, "key")
	top := m.top()
	top.store.Delete(key)
	delete(top.model, string(key))
}

func (m *machine) get(t *rapid.T) {
	key := keyGen.Draw(t, "key")
	top := m.top()
	want, has := top.model[string(key)]
	if got := top.store.Get(key); !bytes.Equal(want, got) {
		t.Fatalf("get %q: want %q, got %q", key, want, got)
	}
	if got := top.store.Has(key); got != has {
		t.Fatalf("has %q: want %v, got %v", key, has, got)
	}
}

func (m *machine) iterate(t *rapid.T) {
	var start, end []byte
	if rapid.Bool().Draw(t, "bounded start") {
		start = keyGen.Draw(t, "start")
	}
	if rapid.Bool().Draw(t, "bounded end") {
		end = keyGen.Draw(t, "end")
	}
	if start != nil && end != nil && bytes.Compare(start, end) > 0 {
		start, end = end, start
	}
	ascending := rapid.Bool().Draw(t, "ascending")

	top := m.top()
	want := top.model.keys(start, end, ascending)
	var it stablecoin.Iterator
	if ascending {
		it = top.store.Iterator(start, end)
	} else {
		it = top.store.ReverseIterator(start, end)
	}
	defer it.Close()

	var got []string
	for ; it.Valid(); it.Next() {
		key := string(it.Key())
		if v := top.model[key]; !bytes.Equal(v, it.Value()) {
			t.Fatalf("iterate value of %q: want %q, got %q", key, v, it.Value())
		}
		got = append(got, key)
	}
	if len(want) != len(got) {
		t.Fatalf("iterate [%q, %q) ascending=%v: want %q, got %q", start, end, ascending, want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("iterate [%q, %q) ascending=%v: want %q, got %q", start, end, ascending, want, got)
		}
	}
}

func (m *machine) wrap(t *rapid.T) {
	if len(m.layers) > 3 {
		t.Skip("deep enough")
	}
	parent, ok := m.top().store.(stablecoin.CacheableKVStore)
	if !ok {
		t.Fatalf("%T does not support cache wraps", m.top().store)
	}
	m.layers = append(m.layers, layer{
		store: parent.CacheWrap(),
		model: m.top().model.clone(),
	})
}

func (m *machine) write(t *rapid.T) {
	if len(m.layers) == 1 {
		t.Skip("no cache wrap")
	}
	top := *m.top()
	if err := top.store.(stablecoin.KVCacheWrap).Write(); err != nil {
		t.Fatalf("write: %s", err)
	}
	m.layers = m.layers[:len(m.layers)-1]
	m.top().model = top.model
}

func (m *machine) discard(t *rapid.T) {
	if len(m.layers) == 1 {
		t.Skip("no cache wrap")
	}
	m.top().store.(stablecoin.KVCacheWrap).Discard()
	m.layers = m.layers[:len(m.layers)-1]
}

// check makes sure that pending writes of a cache never leak to the layer
// below it.
func (m *machine) check(t *rapid.T) {
	for _, l := range m.layers {
		for key, value := range l.model {
			if got := l.store.Get([]byte(key)); !bytes.Equal(value, got) {
				t.Fatalf("%q: want %q, got %q", key, value, got)
			}
		}
	}
}

// keys returns the sorted keys of the range, start inclusive and end
// exclusive.
func (m model) keys(start, end []byte, ascending bool) []string {
	var res []string
	for k := range m {
		if start != nil && k < string(start) {
			continue
		}
		if end != nil && k >= string(end) {
			continue
		}
		res = append(res, k)
	}
	sort.Strings(res)
	if !ascending {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}
