package timelock

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/orm"
)

// LockBucket is the ledger of all locks, keyed by owner address followed
// by the lock ID. Addresses have a fixed length, so the locks of one
// owner are exactly the keys starting with that address.
type LockBucket struct {
	orm.ModelBucket
}

// NewLockBucket returns the bucket storing locks.
func NewLockBucket() *LockBucket {
	return &LockBucket{
		ModelBucket: orm.NewModelBucket("lock", &Lock{}),
	}
}

// lockKey returns the primary key of a lock.
func lockKey(owner lockbox.Address, id string) []byte {
	key := make([]byte, 0, len(owner)+len(id))
	key = append(key, owner...)
	return append(key, id...)
}

// GetLock returns the lock or ErrNotFound.
func (b *LockBucket) GetLock(db lockbox.ReadOnlyKVStore, owner lockbox.Address, id string) (*Lock, error) {
	var l Lock
	if err := b.One(db, lockKey(owner, id), &l); err != nil {
		return nil, errors.Wrapf(err, "lock %q", id)
	}
	return &l, nil
}

// CreateLock stores a new lock. It fails with ErrDuplicate if a lock with
// the same owner and ID exists, whatever its state. This is the only
// place where uniqueness is enforced.
func (b *LockBucket) CreateLock(db lockbox.KVStore, l *Lock) error {
	if err := b.Insert(db, lockKey(l.Owner, l.ID), l); err != nil {
		return errors.Wrapf(err, "lock %q", l.ID)
	}
	return nil
}

// SaveLock overwrites an existing lock.
func (b *LockBucket) SaveLock(db lockbox.KVStore, l *Lock) error {
	return b.Put(db, lockKey(l.Owner, l.ID), l)
}

// OwnerLocks returns all locks of the owner ordered by ID. Each call
// reads the store again.
func (b *LockBucket) OwnerLocks(db lockbox.ReadOnlyKVStore, owner lockbox.Address) ([]*Lock, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	it, err := b.PrefixScan(db, owner, false)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var locks []*Lock
	for {
		var l Lock
		switch _, err := it.LoadNext(&l); {
		case errors.ErrIteratorDone.Is(err):
			return locks, nil
		case err != nil:
			return nil, err
		}
		locks = append(locks, &l)
	}
}
