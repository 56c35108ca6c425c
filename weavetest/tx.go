package weavetest

import "github.com/iov-one/stablecoin"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg stablecoin.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ stablecoin.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (stablecoin.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg is a message with a configurable route. Use it to test routing and
// decorators that never look into the message content.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate method.
	Err error
}

var _ stablecoin.Msg = (*Msg)(nil)

func (m *Msg) Reset()         { *m = Msg{} }
func (m *Msg) String() string { return "weavetest.Msg " + m.RoutePath }
func (*Msg) ProtoMessage()    {}

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
