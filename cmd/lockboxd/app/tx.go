package lockboxd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/x/sigs"
	"github.com/iov-one/lockbox/x/timelock"
)

// Tx is the transaction envelope of the lockbox node. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	CreateLockMsg   *timelock.CreateLockMsg   `protobuf:"bytes,10,opt,name=create_lock_msg,proto3" json:"create_lock_msg,omitempty"`
	IncreaseLockMsg *timelock.IncreaseLockMsg `protobuf:"bytes,11,opt,name=increase_lock_msg,proto3" json:"increase_lock_msg,omitempty"`
	ReleaseLockMsg  *timelock.ReleaseLockMsg  `protobuf:"bytes,12,opt,name=release_lock_msg,proto3" json:"release_lock_msg,omitempty"`
	ReceiveTokenMsg *timelock.ReceiveTokenMsg `protobuf:"bytes,13,opt,name=receive_token_msg,proto3" json:"receive_token_msg,omitempty"`
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

// make sure tx fulfills all interfaces
var _ lockbox.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (lockbox.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "unmarshal tx: %s", err)
	}
	return tx, nil
}

// MarshalTx returns the protobuf encoding of the transaction.
func MarshalTx(tx *Tx) ([]byte, error) {
	bz, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal tx: %s", err)
	}
	return bz, nil
}

// GetMsg returns the single message set on the transaction.
func (tx *Tx) GetMsg() (lockbox.Msg, error) {
	var msgs []lockbox.Msg
	if tx.CreateLockMsg != nil {
		msgs = append(msgs, tx.CreateLockMsg)
	}
	if tx.IncreaseLockMsg != nil {
		msgs = append(msgs, tx.IncreaseLockMsg)
	}
	if tx.ReleaseLockMsg != nil {
		msgs = append(msgs, tx.ReleaseLockMsg)
	}
	if tx.ReceiveTokenMsg != nil {
		msgs = append(msgs, tx.ReceiveTokenMsg)
	}
	switch len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrMsg, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "transaction with %d messages", len(msgs))
	}
}

// SetMsg sets the message field matching the type of msg and clears all
// others.
func (tx *Tx) SetMsg(msg lockbox.Msg) error {
	tx.CreateLockMsg = nil
	tx.IncreaseLockMsg = nil
	tx.ReleaseLockMsg = nil
	tx.ReceiveTokenMsg = nil

	switch m := msg.(type) {
	case *timelock.CreateLockMsg:
		tx.CreateLockMsg = m
	case *timelock.IncreaseLockMsg:
		tx.IncreaseLockMsg = m
	case *timelock.ReleaseLockMsg:
		tx.ReleaseLockMsg = m
	case *timelock.ReceiveTokenMsg:
		tx.ReceiveTokenMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := MarshalTx(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
