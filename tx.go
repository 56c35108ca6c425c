package stablecoin

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin/errors"
)

// Msg is the action a transaction asks for, for example creating a
// request or transferring tokens. Who asked for it is told by the
// signatures of the enclosing Tx.
type Msg interface {
	proto.Message

	// Path routes the message to its handler, for example
	// "control/vote". Only [0-9A-Za-z_\-/] may be used.
	Path() string

	// Validate checks the message on its own, without reading the state.
	Validate() error
}

// Tx is a message together with what is needed to authenticate it. The
// application defines the concrete type.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder reads a transaction from its wire form.
type TxDecoder func(txBytes []byte) (Tx, error)

const missingPath = "(missing)"

// GetPath is the path of the message of tx, for logging.
func GetPath(tx Tx) string {
	if tx == nil {
		return missingPath
	}
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return missingPath
}

// LoadMsg validates the message of tx and copies it into destination, which
// must be a pointer to the expected message type.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrInvalidMsg, "transaction carries no message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrHuman, "destination must be a pointer")
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %T", msg, destination)
	}
	dst.Elem().Set(src)
	return nil
}
