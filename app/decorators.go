package app

import (
	"context"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Recovery is a decorator to recover from panics in transactions, so we
// can log them as errors.
type Recovery struct{}

var _ lockbox.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (Recovery) Check(ctx context.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (_ *lockbox.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (Recovery) Deliver(ctx context.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (_ *lockbox.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}

// Logging logs every transaction with its outcome and duration.
type Logging struct{}

var _ lockbox.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx context.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Checker) (*lockbox.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logDuration(ctx, start, "check", err)
	return res, err
}

func (Logging) Deliver(ctx context.Context, store lockbox.KVStore, tx lockbox.Tx, next lockbox.Deliverer) (*lockbox.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logDuration(ctx, start, "deliver", err)
	return res, err
}

func logDuration(ctx context.Context, start time.Time, msg string, err error) {
	delta := time.Since(start)
	logger := lockbox.GetLogger(ctx)
	if err != nil {
		logger.Error(msg, "err", err, "duration", delta/time.Microsecond)
	} else {
		logger.Info(msg, "duration", delta/time.Microsecond)
	}
}
