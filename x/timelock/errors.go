package timelock

import "github.com/iov-one/lockbox/errors"

// Lock lifecycle errors. Reserved codes are 1100 to 1109.
//
// A lock that already exists is reported with errors.ErrDuplicate, a
// missing lock with errors.ErrNotFound and an arithmetic overflow with
// errors.ErrOverflow.
var (
	ErrEmptyDeposit      = errors.Register(1100, "empty deposit")
	ErrExpiryNotInFuture = errors.Register(1101, "expiry not in the future")
	ErrDurationTooLong   = errors.Register(1102, "lock duration too long")
	ErrAlreadyCompleted  = errors.Register(1103, "lock already completed")
	ErrNotYetExpired     = errors.Register(1104, "lock not yet expired")
	ErrMalformedPayload  = errors.Register(1105, "malformed payload")
)
