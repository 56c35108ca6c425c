/*
Package errors holds the root errors of the application and the helpers to
wrap them.

A root error is a category with a stable ABCI code. Every error that reaches
a client wraps one, so that it can be matched with Is on both sides of the
wire. Wrapping adds context and records the stack of the innermost wrap,
printed with %+v.
*/
package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Error is a root error. Use Register to create one.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode is the code reported to tendermint clients.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New wraps e with description. It is the same as Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrap(e, fmt.Sprintf(format, args...))
}

// Is reports whether err is e or wraps it. A nil root matches only a nil
// err, which lets test tables leave the expected error out.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	return walk(err, func(layer error) bool { return layer == e })
}

// Wrap adds description to err. A nil err stays nil, so the result of a
// call can be wrapped without checking it first.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if !walk(err, hasStack) {
		err = errors.WithStack(err)
	}
	return &wrapped{msg: description, cause: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrapped struct {
	msg   string
	cause error
}

func (w *wrapped) Error() string {
	return w.msg + ": " + w.cause.Error()
}

func (w *wrapped) Cause() error {
	return w.cause
}

// Format prints the whole chain and the recorded stack with %+v.
func (w *wrapped) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.cause)
		return
	}
	fmt.Fprint(s, w.Error())
}

type causer interface {
	Cause() error
}

// walk calls match on err and on every error it wraps, outermost first,
// until match returns true.
func walk(err error, match func(error) bool) bool {
	for err != nil {
		if match(err) {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func hasStack(err error) bool {
	_, ok := err.(interface{ StackTrace() errors.StackTrace })
	return ok
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
