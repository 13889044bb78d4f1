package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnauthorized is returned when the caller is not allowed to
	// execute an action.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when requested data does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg is returned when a message cannot be handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned when a model cannot be persisted.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a record with the same unique key
	// already exists.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when a code path that must never be reached
	// is reached.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a value fails a not empty assertion.
	ErrEmpty = Register(9, "value is empty")

	// ErrState is returned when an entity is in a state that does not
	// allow the requested operation.
	ErrState = Register(10, "invalid state")

	// ErrType is returned when a value is not of the expected type.
	ErrType = Register(11, "invalid type")

	// ErrAmount is returned for an invalid amount of any asset.
	ErrAmount = Register(13, "invalid amount")

	// ErrInput is returned for malformed input.
	ErrInput = Register(14, "invalid input")

	// ErrExpired is returned for entities that are past their expiration.
	ErrExpired = Register(15, "expired")

	// ErrOverflow is returned when a computation result does not fit its
	// type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrCurrency is returned for an invalid currency ticker.
	ErrCurrency = Register(17, "invalid currency code")

	// ErrIteratorDone is returned by an iterator when there are no more
	// items to read.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrPanic is only set when a panic was recovered. Its message must
	// not reach the client.
	ErrPanic = Register(111222, "panic")
)

// Register returns a root error with the given code. Code uniqueness is
// enforced: registering a code twice panics.
//
// Call it only during program initialization.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

// usedCodes tracks registered codes. Code 1 is reserved for internal
// (unregistered) errors.
var usedCodes = map[uint32]*Error{
	1: nil,
}

// Error is a root error. Runtime errors wrap a root error so that clients
// can categorize them by their ABCI code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code clients see for this error kind.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New returns an instance of this error kind with additional description.
// It is equivalent to Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is New with formatting.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is returns true if the given error is of this kind. Wrapped errors are
// unwrapped using their Cause method. Aggregated errors match when any of
// their members match.
func (e *Error) Is(err error) bool {
	// reflect is needed to compare against a typed nil.
	if e == nil {
		return isNilErr(err)
	}

	for {
		if err == e {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, child := range u.Unpack() {
				if e.Is(child) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
}

// Wrap extends the error with additional information. Errors that do not
// carry an ABCI code are reported as internal. Wrapping nil returns nil.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	// Only the innermost layer records a stack trace.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace of the innermost layer for "%+v".
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s", e.Error())
		if st := stackTrace(e); st != nil {
			fmt.Fprintf(s, "%+v", st)
		}
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover captures a panic and assigns it to the given error as an
// ErrPanic instance. It must be called using defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found while unwrapping the
// error, or nil.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if v := reflect.ValueOf(err); v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return false
}
