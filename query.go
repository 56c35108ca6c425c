package stablecoin

import "fmt"

// Query modifiers, given after "?" in the query path.
const (
	// KeyQueryMod looks up a single key.
	KeyQueryMod = ""
	// PrefixQueryMod returns every key starting with the query data.
	PrefixQueryMod = "prefix"
)

// Model is a key value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries of one path. The store holds the last
// committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds the query handlers of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches a query by its path, for example "/balances".
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with r.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics when path is already taken. Two extensions claiming one
// bucket name is a wiring mistake.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q is already registered", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
