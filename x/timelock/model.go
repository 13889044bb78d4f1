package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// maxIDLength limits the size of a lock ID.
const maxIDLength = 128

var _ orm.Model = (*Lock)(nil)

// Validate checks that the lock can be persisted.
func (l *Lock) Validate() error {
	var err error
	err = errors.AppendField(err, "Owner", l.Owner.Validate())
	err = errors.AppendField(err, "ID", validateID(l.ID))
	err = errors.AppendField(err, "CreatedAt", l.CreatedAt.Validate())
	if l.ExpiresAt <= l.CreatedAt {
		err = errors.Append(err, errors.Field("ExpiresAt", errors.ErrModel, "must be after creation time"))
	}
	err = errors.AppendField(err, "Funds", l.Funds.Validate())
	return err
}

func validateID(id string) error {
	switch {
	case id == "":
		return errors.Wrap(errors.ErrEmpty, "lock id")
	case len(id) > maxIDLength:
		return errors.Wrapf(errors.ErrInput, "lock id longer than %d", maxIDLength)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Configuration) Validate() error {
	var err error
	if len(c.Owner) != 0 {
		err = errors.AppendField(err, "Owner", c.Owner.Validate())
	}
	if c.MaxLockDuration <= 0 {
		err = errors.Append(err, errors.Field("MaxLockDuration", errors.ErrInput, "must be positive"))
	}
	return err
}

// LockView is the public representation of a lock returned by queries.
type LockView struct {
	ID        string           `json:"id"`
	Owner     lockbox.Address  `json:"owner"`
	CreatedAt lockbox.UnixTime `json:"created_at"`
	ExpiresAt lockbox.UnixTime `json:"expires_at"`
	Completed bool             `json:"complete"`
	Native    coin.Coins       `json:"native_balance"`
	Tokens    []TokenAmount    `json:"token_balances"`
}

// NewLockView returns a view independent from the lock.
func NewLockView(l *Lock) *LockView {
	funds := l.Funds.Clone()
	v := &LockView{
		ID:        l.ID,
		Owner:     l.Owner,
		CreatedAt: l.CreatedAt,
		ExpiresAt: l.ExpiresAt,
		Completed: l.Completed,
		Native:    funds.Coins(),
		Tokens:    []TokenAmount{},
	}
	if funds != nil {
		for _, t := range funds.Tokens {
			v.Tokens = append(v.Tokens, *t)
		}
	}
	return v
}
