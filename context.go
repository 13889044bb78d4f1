package lockbox

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/lockbox/errors"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID tests the chain ID format.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString
)

// WithHeight sets the block height. It panics if the height was already
// set.
func WithHeight(ctx context.Context, height int64) context.Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height.
func GetHeight(ctx context.Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithBlockTime sets the time of the block being processed. It panics if
// the time was already set.
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	if _, ok := ctx.Value(contextKeyTime).(time.Time); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyTime, t)
}

// BlockTime returns the time of the block being processed. Every
// operation depending on "now" must use it instead of the wall clock, so
// that all nodes compute the same result.
func BlockTime(ctx context.Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return t, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return t, nil
}

// BlockUnixTime is BlockTime truncated to seconds.
func BlockUnixTime(ctx context.Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// IsExpired returns true if the block time is strictly after t. A value
// equal to the block time is not expired yet.
func IsExpired(ctx context.Context, t UnixTime) bool {
	now, err := BlockUnixTime(ctx)
	if err != nil {
		panic(err)
	}
	return now > t
}

// WithChainID sets the chain ID. It panics if the chain ID is invalid or
// was already set.
func WithChainID(ctx context.Context, chainID string) context.Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.ErrInput.Newf("chain id %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain ID or an empty string.
func GetChainID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyChainID).(string)
	return id
}

// WithLogger sets the logger. Unlike block values, the logger can be
// replaced, for example to add key value pairs.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo returns a context with the logger extended by keyvals.
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

// GetLogger returns the context logger or DefaultLogger.
func GetLogger(ctx context.Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
