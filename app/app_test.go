package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

func newTestApp(t testing.TB, db lockbox.CommitKVStore) BaseApp {
	t.Helper()
	qr := lockbox.NewQueryRouter()
	qr.Register("/kv", kvQuery{})

	r := NewRouter()
	r.Handle(&setMsg{}, setHandler{})

	handler := ChainDecorators(NewLogging(), NewRecovery()).WithHandler(r)
	store := NewStoreApp("test", db, qr, context.Background())
	return NewBaseApp(store, decodeSetTx, handler, false)
}

func queryValue(t testing.TB, a BaseApp, key string) []byte {
	t.Helper()
	res := a.Query(abci.RequestQuery{Path: "/kv", Data: []byte(key)})
	require.Equal(t, uint32(0), res.Code, res.Log)
	keys, err := UnmarshalResultSet(res.Key)
	require.NoError(t, err)
	values, err := UnmarshalResultSet(res.Value)
	require.NoError(t, err)
	models, err := JoinResults(keys, values)
	require.NoError(t, err)
	if len(models) == 0 {
		return nil
	}
	return models[0].Value
}

func TestAppLifecycle(t *testing.T) {
	db := iavl.MockCommitStore()
	a := newTestApp(t, db)

	a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	assert.Equal(t, "test-chain", a.GetChainID())

	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Unix(1000, 0)}})
	now, err := lockbox.BlockUnixTime(a.BlockContext())
	require.NoError(t, err)
	assert.Equal(t, lockbox.UnixTime(1000), now)

	chk := a.CheckTx(mustMarshal(&setTx{Msg: &setMsg{Key: []byte("a"), Value: []byte("1")}}))
	require.Equal(t, uint32(0), chk.Code, chk.Log)

	res := a.DeliverTx(mustMarshal(&setTx{Msg: &setMsg{Key: []byte("a"), Value: []byte("1")}}))
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, []byte("1"), res.Data)

	// A failing transaction must not leave any write behind.
	res = a.DeliverTx(mustMarshal(&setTx{Msg: &setMsg{Key: []byte("b"), Value: []byte("2"), Fail: true}}))
	assert.Equal(t, errors.ErrState.ABCICode(), res.Code)

	// Neither must a panicking one.
	res = a.DeliverTx(mustMarshal(&setTx{Msg: &setMsg{Key: []byte("c"), Value: []byte("3"), Panic: true}}))
	assert.Equal(t, uint32(1), res.Code)
	assert.Equal(t, "internal error", res.Log)

	// Nothing is visible to queries before the commit.
	assert.Nil(t, queryValue(t, a, "a"))

	a.EndBlock(abci.RequestEndBlock{})
	commit := a.Commit()
	assert.NotEmpty(t, commit.Data)

	assert.Equal(t, []byte("1"), queryValue(t, a, "a"))
	assert.Nil(t, queryValue(t, a, "b"))
	assert.Nil(t, queryValue(t, a, "c"))

	info := a.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	// A restarted application loads the committed state.
	restarted := newTestApp(t, db)
	assert.Equal(t, "test-chain", restarted.GetChainID())
	assert.Equal(t, []byte("1"), queryValue(t, restarted, "a"))
}

func TestAppRejectsInvalidTx(t *testing.T) {
	a := newTestApp(t, iavl.MockCommitStore())
	a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Unix(1000, 0)}})

	res := a.DeliverTx([]byte("not a transaction"))
	assert.NotEqual(t, uint32(0), res.Code)

	res = a.DeliverTx(mustMarshal(&setTx{Msg: &setMsg{}}))
	assert.Equal(t, errors.ErrEmpty.ABCICode(), res.Code)

	chk := a.CheckTx(mustMarshal(&setTx{}))
	assert.Equal(t, errors.ErrMsg.ABCICode(), chk.Code)

	q := a.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), q.Code)
}

func TestAppInitChainTwice(t *testing.T) {
	db := iavl.MockCommitStore()
	a := newTestApp(t, db)
	a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	assert.Panics(t, func() {
		a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	})

	b := newTestApp(t, iavl.MockCommitStore())
	assert.Panics(t, func() {
		b.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
}

func TestAppConcurrentUniqueWrites(t *testing.T) {
	a := newTestApp(t, iavl.MockCommitStore())
	a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Unix(1000, 0)}})

	const workers = 16
	codes := make(chan uint32, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg := &setMsg{Key: []byte("lock"), Value: []byte(fmt.Sprint(i)), Unique: true}
			codes <- a.DeliverTx(mustMarshal(&setTx{Msg: msg})).Code
		}(i)
	}
	wg.Wait()
	close(codes)

	var ok, duplicate int
	for code := range codes {
		switch code {
		case 0:
			ok++
		case errors.ErrDuplicate.ABCICode():
			duplicate++
		default:
			t.Fatalf("unexpected code %d", code)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, duplicate)
}

func TestAppQuery(t *testing.T) {
	a := newTestApp(t, iavl.MockCommitStore())
	a.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: []byte(`{}`)})
	a.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Unix(1000, 0)}})
	for _, kv := range [][2]string{{"lock/a", "1"}, {"lock/b", "2"}, {"other", "3"}} {
		res := a.DeliverTx(mustMarshal(&setTx{Msg: &setMsg{Key: []byte(kv[0]), Value: []byte(kv[1])}}))
		require.Equal(t, uint32(0), res.Code, res.Log)
	}
	a.EndBlock(abci.RequestEndBlock{})
	a.Commit()

	cases := map[string]struct {
		path string
		data string
		want []lockbox.Model
	}{
		"single key": {
			path: "/kv",
			data: "lock/b",
			want: []lockbox.Model{{Key: []byte("lock/b"), Value: []byte("2")}},
		},
		"missing key": {
			path: "/kv",
			data: "lock/c",
			want: []lockbox.Model{},
		},
		"prefix": {
			path: "/kv?prefix",
			data: "lock/",
			want: []lockbox.Model{
				{Key: []byte("lock/a"), Value: []byte("1")},
				{Key: []byte("lock/b"), Value: []byte("2")},
			},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			res := a.Query(abci.RequestQuery{Path: tc.path, Data: []byte(tc.data)})
			require.Equal(t, uint32(0), res.Code, res.Log)
			assert.Equal(t, int64(1), res.Height)

			keys, err := UnmarshalResultSet(res.Key)
			require.NoError(t, err)
			values, err := UnmarshalResultSet(res.Value)
			require.NoError(t, err)
			models, err := JoinResults(keys, values)
			require.NoError(t, err)
			assert.Equal(t, tc.want, models)
		})
	}
}
