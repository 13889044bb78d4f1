package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Actions recorded in a receipt.
const (
	ActionCreate   = "lock"
	ActionIncrease = "increase_lock"
	ActionRelease  = "unlock"
)

// Receipt describes the outcome of a successful lock operation.
type Receipt struct {
	Action string
	// Sender is the address that executed the action.
	Sender lockbox.Address
	ID     string
	// Transfers is set only when a lock is released.
	Transfers []TransferInstruction
}

// Controller implements the lifecycle of locks. Every method is a single
// step against the given store: it either succeeds or returns an error
// without writing anything the caller must keep.
type Controller interface {
	// CreateLock opens a new lock funded with deposit.
	CreateLock(db lockbox.KVStore, sender lockbox.Address, id string, expiresAt lockbox.UnixTime, deposit *Balance, now lockbox.UnixTime) (*Receipt, error)

	// IncreaseLock adds deposit to an existing lock of the sender.
	IncreaseLock(db lockbox.KVStore, sender lockbox.Address, id string, deposit *Balance) (*Receipt, error)

	// ReleaseLock completes an expired lock of the caller and returns
	// the transfers paying out its funds.
	ReleaseLock(db lockbox.KVStore, caller lockbox.Address, id string, now lockbox.UnixTime) (*Receipt, error)

	// QueryLock returns a single lock.
	QueryLock(db lockbox.ReadOnlyKVStore, owner lockbox.Address, id string) (*LockView, error)

	// QueryAllLocks returns all locks of the owner ordered by ID. The
	// result is empty if the owner has no locks.
	QueryAllLocks(db lockbox.ReadOnlyKVStore, owner lockbox.Address) ([]*LockView, error)
}

// NewController returns a controller using the given configuration.
func NewController(conf Configuration, bucket *LockBucket) Controller {
	return &controller{
		maxDuration: conf.MaxLockDuration,
		bucket:      bucket,
	}
}

type controller struct {
	maxDuration lockbox.UnixDuration
	bucket      *LockBucket
}

var _ Controller = (*controller)(nil)

func (c *controller) CreateLock(db lockbox.KVStore, sender lockbox.Address, id string, expiresAt lockbox.UnixTime, deposit *Balance, now lockbox.UnixTime) (*Receipt, error) {
	if err := sender.Validate(); err != nil {
		return nil, errors.Wrap(err, "sender")
	}
	if deposit.IsEmpty() {
		return nil, errors.Wrap(ErrEmptyDeposit, "create lock")
	}
	if expiresAt <= now {
		return nil, errors.Wrapf(ErrExpiryNotInFuture, "expires at %s, now %s", expiresAt, now)
	}
	if d := expiresAt.Sub(now); d >= c.maxDuration {
		return nil, errors.Wrapf(ErrDurationTooLong, "%s, max %s", d, c.maxDuration)
	}

	lock := &Lock{
		Owner:     sender,
		ID:        id,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		Funds:     deposit.Clone(),
		Completed: false,
	}
	if err := c.bucket.CreateLock(db, lock); err != nil {
		return nil, err
	}
	return &Receipt{Action: ActionCreate, Sender: sender, ID: id}, nil
}

// IncreaseLock does not check whether the lock was completed. Funds added
// to a completed lock cannot be withdrawn anymore.
func (c *controller) IncreaseLock(db lockbox.KVStore, sender lockbox.Address, id string, deposit *Balance) (*Receipt, error) {
	if err := sender.Validate(); err != nil {
		return nil, errors.Wrap(err, "sender")
	}
	if deposit.IsEmpty() {
		return nil, errors.Wrap(ErrEmptyDeposit, "increase lock")
	}
	lock, err := c.bucket.GetLock(db, sender, id)
	if err != nil {
		return nil, err
	}
	if lock.Funds == nil {
		lock.Funds = &Balance{}
	}
	if err := lock.Funds.Merge(deposit); err != nil {
		return nil, errors.Wrapf(err, "lock %q funds", id)
	}
	if err := c.bucket.SaveLock(db, lock); err != nil {
		return nil, err
	}
	return &Receipt{Action: ActionIncrease, Sender: sender, ID: id}, nil
}

// ReleaseLock keeps the funds recorded in the completed lock.
func (c *controller) ReleaseLock(db lockbox.KVStore, caller lockbox.Address, id string, now lockbox.UnixTime) (*Receipt, error) {
	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	lock, err := c.bucket.GetLock(db, caller, id)
	if err != nil {
		return nil, err
	}
	if lock.Completed {
		return nil, errors.Wrapf(ErrAlreadyCompleted, "lock %q", id)
	}
	if now <= lock.ExpiresAt {
		return nil, errors.Wrapf(ErrNotYetExpired, "lock %q expires at %s", id, lock.ExpiresAt)
	}

	lock.Completed = true
	if err := c.bucket.SaveLock(db, lock); err != nil {
		return nil, err
	}
	return &Receipt{
		Action:    ActionRelease,
		Sender:    caller,
		ID:        id,
		Transfers: lock.Funds.TransferInstructions(caller),
	}, nil
}

func (c *controller) QueryLock(db lockbox.ReadOnlyKVStore, owner lockbox.Address, id string) (*LockView, error) {
	lock, err := c.bucket.GetLock(db, owner, id)
	if err != nil {
		return nil, err
	}
	return NewLockView(lock), nil
}

func (c *controller) QueryAllLocks(db lockbox.ReadOnlyKVStore, owner lockbox.Address) ([]*LockView, error) {
	locks, err := c.bucket.OwnerLocks(db, owner)
	if err != nil {
		return nil, err
	}
	views := make([]*LockView, 0, len(locks))
	for _, l := range locks {
		views = append(views, NewLockView(l))
	}
	return views, nil
}
