package timelock

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/coin"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/gconf"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routes is a minimal registry dispatching by message path.
type routes map[string]lockbox.Handler

func (r routes) Handle(msg lockbox.Msg, h lockbox.Handler) {
	r[msg.Path()] = h
}

func (r routes) handler(t testing.TB, msg lockbox.Msg) lockbox.Handler {
	t.Helper()
	h, ok := r[msg.Path()]
	require.True(t, ok, "no handler for %s", msg.Path())
	return h
}

type handlerEnv struct {
	db     lockbox.CacheableKVStore
	auth   *lockboxtest.CtxAuth
	routes routes
}

func newHandlerEnv(t testing.TB) *handlerEnv {
	t.Helper()
	db := store.MemStore()
	require.NoError(t, gconf.Save(db, confPkg, &Configuration{MaxLockDuration: testMaxDuration}))
	env := &handlerEnv{
		db:     db,
		auth:   &lockboxtest.CtxAuth{Key: "timelock"},
		routes: routes{},
	}
	RegisterRoutes(env.routes, env.auth)
	return env
}

// ctx returns a context at the given block time, signed by signers.
func (e *handlerEnv) ctx(now lockbox.UnixTime, signers ...lockbox.Condition) context.Context {
	return e.auth.SetConditions(lockboxtest.BlockCtx(1, now), signers...)
}

func (e *handlerEnv) deliver(t testing.TB, ctx context.Context, msg lockbox.Msg) (*lockbox.DeliverResult, error) {
	t.Helper()
	h := e.routes.handler(t, msg)
	tx := &lockboxtest.Tx{Msg: msg}
	if _, err := h.Check(ctx, e.db, tx); err != nil {
		return nil, err
	}
	return h.Deliver(ctx, e.db, tx)
}

func tagValues(res *lockbox.DeliverResult) map[string]string {
	tags := make(map[string]string)
	for _, kv := range res.Tags {
		tags[string(kv.Key)] = string(kv.Value)
	}
	return tags
}

func TestHandlerNativeLockLifecycle(t *testing.T) {
	env := newHandlerEnv(t)
	owner := lockboxtest.NewCondition()
	funds := []*coin.Coin{coin.NewCoinp(10, 0, "IOV")}

	res, err := env.deliver(t, env.ctx(1000, owner), &CreateLockMsg{ID: "savings", ExpiresAt: 2000, Funds: funds})
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, map[string]string{
		"action": ActionCreate,
		"from":   owner.Address().String(),
		"id":     "savings",
	}, tagValues(res))

	res, err = env.deliver(t, env.ctx(1500, owner), &IncreaseLockMsg{ID: "savings", Funds: []*coin.Coin{coin.NewCoinp(0, 5, "IOV")}})
	require.NoError(t, err)
	assert.Equal(t, ActionIncrease, tagValues(res)["action"])

	_, err = env.deliver(t, env.ctx(2000, owner), &ReleaseLockMsg{ID: "savings"})
	assert.True(t, ErrNotYetExpired.Is(err))

	res, err = env.deliver(t, env.ctx(2001, owner), &ReleaseLockMsg{ID: "savings"})
	require.NoError(t, err)
	assert.Equal(t, ActionRelease, tagValues(res)["action"])

	transfers, err := DecodeTransfers(res.Data)
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, NativeTransfer, transfers[0].Kind)
	assert.True(t, owner.Address().Equals(transfers[0].Recipient))
	assert.True(t, transfers[0].Coins.Equals(coin.Coins{coin.NewCoinp(10, 5, "IOV")}))

	_, err = env.deliver(t, env.ctx(2002, owner), &ReleaseLockMsg{ID: "savings"})
	assert.True(t, ErrAlreadyCompleted.Is(err))
}

func TestHandlerErrors(t *testing.T) {
	owner := lockboxtest.NewCondition()
	funds := []*coin.Coin{coin.NewCoinp(1, 0, "IOV")}

	cases := map[string]struct {
		signers []lockbox.Condition
		msg     lockbox.Msg
		wantErr *errors.Error
	}{
		"create without signature": {
			msg:     &CreateLockMsg{ID: "a", ExpiresAt: 1100, Funds: funds},
			wantErr: errors.ErrUnauthorized,
		},
		"create with empty id": {
			signers: []lockbox.Condition{owner},
			msg:     &CreateLockMsg{ID: "", ExpiresAt: 1100, Funds: funds},
			wantErr: errors.ErrEmpty,
		},
		"create with invalid coin": {
			signers: []lockbox.Condition{owner},
			msg:     &CreateLockMsg{ID: "a", ExpiresAt: 1100, Funds: []*coin.Coin{coin.NewCoinp(-1, 0, "IOV")}},
			wantErr: errors.ErrAmount,
		},
		"create without funds": {
			signers: []lockbox.Condition{owner},
			msg:     &CreateLockMsg{ID: "a", ExpiresAt: 1100},
			wantErr: ErrEmptyDeposit,
		},
		"create too long": {
			signers: []lockbox.Condition{owner},
			msg:     &CreateLockMsg{ID: "a", ExpiresAt: 1000 + lockbox.UnixTime(testMaxDuration), Funds: funds},
			wantErr: ErrDurationTooLong,
		},
		"increase unknown lock": {
			signers: []lockbox.Condition{owner},
			msg:     &IncreaseLockMsg{ID: "missing", Funds: funds},
			wantErr: errors.ErrNotFound,
		},
		"release unknown lock": {
			signers: []lockbox.Condition{owner},
			msg:     &ReleaseLockMsg{ID: "missing"},
			wantErr: errors.ErrNotFound,
		},
		"release without signature": {
			msg:     &ReleaseLockMsg{ID: "missing"},
			wantErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newHandlerEnv(t)
			_, err := env.deliver(t, env.ctx(1000, tc.signers...), tc.msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestHandlerRequiresConfiguration(t *testing.T) {
	owner := lockboxtest.NewCondition()
	r := routes{}
	auth := &lockboxtest.CtxAuth{Key: "timelock"}
	RegisterRoutes(r, auth)

	db := store.MemStore()
	ctx := auth.SetConditions(lockboxtest.BlockCtx(1, 1000), owner)
	msg := &CreateLockMsg{ID: "a", ExpiresAt: 1100, Funds: []*coin.Coin{coin.NewCoinp(1, 0, "IOV")}}
	_, err := r.handler(t, msg).Deliver(ctx, db, &lockboxtest.Tx{Msg: msg})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestHandlerRequiresBlockTime(t *testing.T) {
	env := newHandlerEnv(t)
	owner := lockboxtest.NewCondition()
	ctx := env.auth.SetConditions(context.Background(), owner)
	msg := &CreateLockMsg{ID: "a", ExpiresAt: 1100, Funds: []*coin.Coin{coin.NewCoinp(1, 0, "IOV")}}
	_, err := env.routes.handler(t, msg).Deliver(ctx, env.db, &lockboxtest.Tx{Msg: msg})
	assert.Error(t, err)
}

func TestHandlerRejectsWrongMessage(t *testing.T) {
	env := newHandlerEnv(t)
	owner := lockboxtest.NewCondition()
	h := env.routes.handler(t, &CreateLockMsg{})
	_, err := h.Check(env.ctx(1000, owner), env.db, &lockboxtest.Tx{Msg: &ReleaseLockMsg{ID: "a"}})
	assert.True(t, errors.ErrType.Is(err))
}

func TestHandlerReceiveToken(t *testing.T) {
	env := newHandlerEnv(t)
	token := lockboxtest.NewCondition()
	depositor := lockboxtest.NewCondition().Address()

	receive := func(now lockbox.UnixTime, amount uint64, payload string) (*lockbox.DeliverResult, error) {
		msg := &ReceiveTokenMsg{
			Sender: depositor.String(),
			Amount: amount,
			Msg:    []byte(payload),
		}
		return env.deliver(t, env.ctx(now, token), msg)
	}

	res, err := receive(0, 2, `{"lock": {"id": "1", "expire": 200}}`)
	require.NoError(t, err)
	tags := tagValues(res)
	assert.Equal(t, ActionCreate, tags["action"])
	// The depositor owns the lock, not the token issuer.
	assert.Equal(t, depositor.String(), tags["from"])
	assert.Equal(t, "1", tags["id"])

	res, err = receive(10, 3, `{"increase_lock": {"id": "1"}}`)
	require.NoError(t, err)
	assert.Equal(t, ActionIncrease, tagValues(res)["action"])

	_, err = receive(20, 0, `{"increase_lock": {"id": "1"}}`)
	assert.True(t, ErrEmptyDeposit.Is(err))

	_, err = receive(20, 1, `{"increase_lock": {"id": "unknown"}}`)
	assert.True(t, errors.ErrNotFound.Is(err))

	// Locks are keyed by the depositor, any other signer cannot reach them.
	_, err = env.deliver(t, env.ctx(201, lockbox.NewCondition("test", "x", nil)), &ReleaseLockMsg{ID: "1"})
	assert.True(t, errors.ErrNotFound.Is(err))

	c := NewController(Configuration{}, NewLockBucket())
	view, err := c.QueryLock(env.db, depositor, "1")
	require.NoError(t, err)
	require.Len(t, view.Tokens, 1)
	assert.True(t, token.Address().Equals(view.Tokens[0].Token))
	assert.Equal(t, uint64(5), view.Tokens[0].Amount)

	r, err := c.ReleaseLock(env.db, depositor, "1", 201)
	require.NoError(t, err)
	require.Len(t, r.Transfers, 1)
	assert.Equal(t, TokenTransfer, r.Transfers[0].Kind)
	assert.True(t, token.Address().Equals(r.Transfers[0].Token))
	assert.Equal(t, uint64(5), r.Transfers[0].Amount)
}

func TestHandlerReceiveTokenErrors(t *testing.T) {
	token := lockboxtest.NewCondition()
	depositor := lockboxtest.NewCondition().Address().String()

	cases := map[string]struct {
		signers []lockbox.Condition
		msg     *ReceiveTokenMsg
		wantErr *errors.Error
	}{
		"not json": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte("lock me")},
			wantErr: ErrMalformedPayload,
		},
		"empty payload": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1},
			wantErr: ErrMalformedPayload,
		},
		"unknown instruction": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte(`{"unlock": {"id": "1"}}`)},
			wantErr: ErrMalformedPayload,
		},
		"two instructions": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte(`{"lock": {"id": "1", "expire": 200}, "increase_lock": {"id": "1"}}`)},
			wantErr: ErrMalformedPayload,
		},
		"empty lock id": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte(`{"lock": {"id": "", "expire": 200}}`)},
			wantErr: errors.ErrEmpty,
		},
		"invalid sender": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: "not an address", Amount: 1, Msg: []byte(`{"increase_lock": {"id": "1"}}`)},
			wantErr: errors.ErrInput,
		},
		"no token signature": {
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte(`{"increase_lock": {"id": "1"}}`)},
			wantErr: errors.ErrUnauthorized,
		},
		"expire in the past": {
			signers: []lockbox.Condition{token},
			msg:     &ReceiveTokenMsg{Sender: depositor, Amount: 1, Msg: []byte(`{"lock": {"id": "1", "expire": 50}}`)},
			wantErr: ErrExpiryNotInFuture,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newHandlerEnv(t)
			_, err := env.deliver(t, env.ctx(100, tc.signers...), tc.msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}
}
