package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
)

const (
	pathCreateLockMsg   = "timelock/create"
	pathIncreaseLockMsg = "timelock/increase"
	pathReleaseLockMsg  = "timelock/release"
	pathReceiveTokenMsg = "timelock/receive"
)

var _ lockbox.Msg = (*CreateLockMsg)(nil)

func (CreateLockMsg) Path() string {
	return pathCreateLockMsg
}

// Validate checks the format only. An empty deposit and the expiry time
// are checked against the state by the controller.
func (m *CreateLockMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "ID", validateID(m.ID))
	err = errors.AppendField(err, "ExpiresAt", m.ExpiresAt.Validate())
	err = errors.AppendField(err, "Funds", validateFunds(m.Funds))
	return err
}

var _ lockbox.Msg = (*IncreaseLockMsg)(nil)

func (IncreaseLockMsg) Path() string {
	return pathIncreaseLockMsg
}

func (m *IncreaseLockMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "ID", validateID(m.ID))
	err = errors.AppendField(err, "Funds", validateFunds(m.Funds))
	return err
}

var _ lockbox.Msg = (*ReleaseLockMsg)(nil)

func (ReleaseLockMsg) Path() string {
	return pathReleaseLockMsg
}

func (m *ReleaseLockMsg) Validate() error {
	return errors.Field("ID", validateID(m.ID), "")
}

var _ lockbox.Msg = (*ReceiveTokenMsg)(nil)

func (ReceiveTokenMsg) Path() string {
	return pathReceiveTokenMsg
}

// Validate checks the sender address. The payload is decoded by the
// handler so that a broken payload is reported as ErrMalformedPayload.
func (m *ReceiveTokenMsg) Validate() error {
	if _, err := lockbox.ParseAddress(m.Sender); err != nil {
		return errors.Field("Sender", err, "")
	}
	return nil
}

func validateFunds(funds []*coin.Coin) error {
	for _, c := range funds {
		if c == nil {
			continue
		}
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
