package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/lockboxtest"
	"github.com/iov-one/lockbox/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	r := NewRouter()
	r.Handle(&setMsg{}, setHandler{})
	assert.Panics(t, func() { r.Handle(&setMsg{}, setHandler{}) })

	db := store.MemStore()
	ctx := context.Background()

	res, err := r.Deliver(ctx, db, &lockboxtest.Tx{Msg: &setMsg{Key: []byte("k"), Value: []byte("v")}})
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), res.Data)

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	_, err = r.Check(ctx, db, &lockboxtest.Tx{})
	assert.True(t, errors.ErrMsg.Is(err))

	_, err = r.Check(ctx, db, &lockboxtest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))

	empty := NewRouter()
	_, err = empty.Deliver(ctx, db, &lockboxtest.Tx{Msg: &setMsg{Key: []byte("k")}})
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	var nilDecorator *countingDecorator

	r := NewRouter()
	r.Handle(&setMsg{}, setHandler{})

	stack := ChainDecorators(c1, NewRecovery(), nilDecorator).Chain(c2).WithHandler(r)

	db := store.MemStore()
	ctx := context.Background()
	tx := &lockboxtest.Tx{Msg: &setMsg{Key: []byte("k")}}

	_, err := stack.Check(ctx, db, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.NoError(t, err)
	// decorators are counted double, once in, once out
	assert.Equal(t, 4, c1.count)
	assert.Equal(t, 4, c2.count)

	// a panic is stopped by the recovery and does not reach c1 as one
	_, err = stack.Deliver(ctx, db, &lockboxtest.Tx{Msg: &setMsg{Key: []byte("k"), Panic: true}})
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 6, c1.count)
	assert.Equal(t, 5, c2.count)
}
