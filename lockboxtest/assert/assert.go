// Package assert provides the small set of assertions used by lockbox
// tests.
package assert

import (
	"reflect"
	"testing"

	"github.com/iov-one/lockbox/errors"
)

// Tester is the subset of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of an error.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) (isnil bool) {
	if value == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			isnil = false
		}
	}()
	return reflect.ValueOf(value).IsNil()
}

// Equal fails the test if values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// IsErr fails the test if err is not of the want kind. A nil want
// expects no error.
func IsErr(t Tester, want *errors.Error, err error) {
	t.Helper()
	if !want.Is(err) {
		t.Fatalf("want %v error, got %+v", want, err)
	}
}

// Panics fails the test if fn does not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// FieldError fails the test unless err contains exactly one error for the
// field and it is of the want kind. A nil want expects no error for the
// field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %q field errors, got %d: %+v", fieldName, len(errs), errs)
		}
		return
	}
	if len(errs) != 1 {
		t.Fatalf("want one %q field error, got %d: %+v", fieldName, len(errs), err)
	}
	if !want.Is(errs[0]) {
		t.Fatalf("want %q field error of %v kind, got %+v", fieldName, want, errs[0])
	}
}
