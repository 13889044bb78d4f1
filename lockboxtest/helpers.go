package lockboxtest

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/iov-one/lockbox"
)

var counter uint64

// NewCondition returns a unique condition.
func NewCondition() lockbox.Condition {
	n := atomic.AddUint64(&counter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return lockbox.NewCondition("test", "seq", data)
}

// NamedCondition returns a condition derived from the name, the same for
// every call with that name.
func NamedCondition(name string) lockbox.Condition {
	return lockbox.NewCondition("test", "name", []byte(name))
}

// BlockCtx returns a context at the given height and block time in
// seconds.
func BlockCtx(height int64, now lockbox.UnixTime) context.Context {
	ctx := context.Background()
	ctx = lockbox.WithHeight(ctx, height)
	ctx = lockbox.WithChainID(ctx, "lockbox-test")
	return lockbox.WithBlockTime(ctx, now.Time())
}

// Tx is a transaction carrying a single message.
type Tx struct {
	Msg lockbox.Msg
	Err error
}

var _ lockbox.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (lockbox.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return "test tx" }
func (*Tx) ProtoMessage()     {}

// Time returns the unix time of t.
func Time(t time.Time) lockbox.UnixTime {
	return lockbox.AsUnixTime(t)
}
