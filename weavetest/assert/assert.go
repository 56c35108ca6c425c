/*
Package assert holds the few assertions the state machine tests rely on.
Every helper stops the test on the first failed check.
*/
package assert

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// Tester is the part of testing.TB the assertions use.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// dump prints nested values in full, with pointers followed.
var dump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// Equal compares want and got with reflect.DeepEqual.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %s got  %s", dump.Sdump(want), dump.Sdump(got))
	}
}

// Nil accepts an untyped nil, or a nil value of a type that can hold one.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack when value is an error
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Panics fails unless fn panics.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr passes when got equals want, or when want has an Is method that
// matches got. Root errors of the errors package do.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if m, ok := want.(interface{ Is(error) bool }); ok && m.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}
