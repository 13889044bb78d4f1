package timelock

import (
	"bytes"
	"encoding/json"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

// Deposit is a source of funds entering the lockbox. It is either a
// NativeDeposit or a TokenDeposit.
type Deposit interface {
	// Balance converts the deposit into the canonical balance form.
	Balance() (*Balance, error)

	isDeposit()
}

// NativeDeposit are native coins attached to a message.
type NativeDeposit struct {
	Coins []*coin.Coin
}

func (NativeDeposit) isDeposit() {}

// Balance normalizes the coins. A negative amount is rejected.
func (d NativeDeposit) Balance() (*Balance, error) {
	b, err := NewBalance(d.Coins)
	if err != nil {
		return nil, errors.Wrap(err, "native deposit")
	}
	return b, nil
}

// TokenDeposit is an amount of tokens credited by a token issuer.
type TokenDeposit struct {
	Token  lockbox.Address
	Amount uint64
}

func (TokenDeposit) isDeposit() {}

// Balance returns an empty balance for a zero amount.
func (d TokenDeposit) Balance() (*Balance, error) {
	if err := d.Token.Validate(); err != nil {
		return nil, errors.Wrap(err, "token")
	}
	if d.Amount == 0 {
		return &Balance{}, nil
	}
	return &Balance{Tokens: []*TokenAmount{{Token: d.Token, Amount: d.Amount}}}, nil
}

// ReceivePayload is the instruction embedded in a token notification.
// Exactly one of its fields must be set.
type ReceivePayload struct {
	Lock         *LockPayload         `json:"lock,omitempty"`
	IncreaseLock *IncreaseLockPayload `json:"increase_lock,omitempty"`
}

// LockPayload creates a lock funded with the received tokens.
type LockPayload struct {
	ID     string           `json:"id"`
	Expire lockbox.UnixTime `json:"expire"`
}

// IncreaseLockPayload adds the received tokens to a lock.
type IncreaseLockPayload struct {
	ID string `json:"id"`
}

// DecodeReceivePayload parses the JSON payload of a token notification.
// Any payload that is not exactly one known instruction fails with
// ErrMalformedPayload.
func DecodeReceivePayload(raw []byte) (*ReceivePayload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var p ReceivePayload
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "decode: %s", err)
	}
	if dec.More() {
		return nil, errors.Wrap(ErrMalformedPayload, "trailing data")
	}
	switch {
	case p.Lock != nil && p.IncreaseLock != nil:
		return nil, errors.Wrap(ErrMalformedPayload, "more than one instruction")
	case p.Lock == nil && p.IncreaseLock == nil:
		return nil, errors.Wrap(ErrMalformedPayload, "no instruction")
	}
	return &p, nil
}
