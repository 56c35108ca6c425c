package errors

import "fmt"

const (
	// SuccessABCICode is the code of a response without an error.
	SuccessABCICode uint32 = 0

	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo gives the code and log of the ABCI response for err.
//
// The message of an error that wraps no root error, or of a recovered
// panic, may expose implementation details. Such errors are logged as
// "internal error" unless debug is set. In debug mode every log carries the
// full chain and stack.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := ABCICode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode || ErrPanic.Is(err):
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCICode is the code of the root error wrapped by err.
func ABCICode(err error) uint32 {
	if isNil(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	walk(err, func(layer error) bool {
		c, ok := layer.(interface{ ABCICode() uint32 })
		if ok {
			code = c.ABCICode()
		}
		return ok
	})
	return code
}

// FromABCI rebuilds an error from the code and log of a response. A known
// code gives an error wrapping its registered root, so clients match it with
// Is as if it was returned locally.
func FromABCI(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if root, ok := lookup(code); ok {
		return Wrap(root, log)
	}
	return Wrapf(Error{code: code, desc: "unknown error"}, "code %d: %s", code, log)
}
