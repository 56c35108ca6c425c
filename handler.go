package stablecoin

import (
	"encoding/json"

	"github.com/iov-one/stablecoin/errors"
)

// Handler processes the messages it is routed. Check runs for CheckTx and
// must not do more than validate, Deliver runs for DeliverTx and applies
// the message.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a handler, for example to authenticate the signers
// or to log the outcome. It decides whether and how next is called.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry maps a message path to its handler.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of the genesis file, one raw entry per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the entry under key into obj. A missing entry leaves
// obj unchanged.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}
