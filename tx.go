package lockbox

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox/errors"
)

// Msg is an action a user requests. Its Path is used to route it to a
// handler.
type Msg interface {
	proto.Message

	// Path returns the routing path of the message, for example
	// "lockbox/create".
	Path() string

	// Validate checks the message without looking at the state.
	Validate() error
}

// Tx is a transaction, the envelope carrying one message together with
// the data required to authenticate it.
type Tx interface {
	proto.Message

	// GetMsg returns the single message of the transaction.
	GetMsg() (Msg, error)
}

// TxDecoder builds a transaction from its wire representation.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message of the transaction into destination, which
// must be a pointer to the concrete message type. The message is
// validated.
//
//	var msg CreateLockMsg
//	if err := lockbox.LoadMsg(tx, &msg); err != nil {
//		return err
//	}
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "transaction without a message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dest.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dest.Elem().Type(), msg)
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	dest.Elem().Set(src)
	return nil
}
