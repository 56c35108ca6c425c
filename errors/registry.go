package errors

import "fmt"

// Codes 2 to 99 are root errors shared by all extensions. An extension that
// needs its own category registers it from 100 up.
var (
	// ErrUnauthorized is returned when the caller is neither the owner nor a
	// signatory, or does not own the request it acts on.
	ErrUnauthorized = Register(2, "unauthorized")

	ErrNotFound     = Register(3, "not found")
	ErrInvalidMsg   = Register(4, "invalid message")
	ErrInvalidModel = Register(5, "invalid model")
	ErrDuplicate    = Register(6, "duplicate")

	// ErrHuman marks a code path that is unreachable when the application
	// is wired correctly.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	// ErrInvalidState is returned when the status of an entity does not
	// allow the action, for example voting on an executed request.
	ErrInvalidState = Register(10, "invalid state")

	ErrInvalidType   = Register(11, "invalid type")
	ErrInvalidAmount = Register(13, "invalid amount")
	ErrInvalidInput  = Register(14, "invalid input")
	ErrDatabase      = Register(15, "database")
	ErrOverflow      = Register(16, "an operation cannot be completed due to value overflow")

	// ErrNotApproved is returned when a request without enough approvals
	// is executed.
	ErrNotApproved = Register(17, "not approved")

	// ErrInvalidThresholdCounts is returned when a threshold list does not
	// hold one value per subtype of its request type.
	ErrInvalidThresholdCounts = Register(18, "invalid threshold counts")

	ErrInsufficientBalance   = Register(19, "insufficient balance")
	ErrInsufficientAllowance = Register(20, "insufficient allowance")

	// ErrPaused is returned for every token movement while the ledger is
	// paused.
	ErrPaused = Register(21, "paused")

	// ErrNotWhitelisted is returned when the whitelist is enforced and an
	// address taking part in a movement is not a member.
	ErrNotWhitelisted = Register(22, "not whitelisted")

	// ErrPanic wraps a recovered panic. Its message is never shown to a
	// client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every root error by code. Code 1 is kept for errors that
// wrap no root error.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a root error. It panics when the code is taken, so it
// must only be called while the program starts, usually from a package
// level var block.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		name := "internal"
		if prev != nil {
			name = prev.desc
		}
		panic(fmt.Sprintf("error code %d is already registered as %q", code, name))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// lookup returns the root error registered with code.
func lookup(code uint32) (*Error, bool) {
	e, ok := registry[code]
	return e, ok && e != nil
}
