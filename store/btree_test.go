package store

import (
	"testing"

	"github.com/iov-one/lockbox/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Release()
	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Model{Key: k, Value: v})
	}
}

func keys(models []Model) []string {
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = string(m.Key)
	}
	return res
}

func TestCacheWrapReadYourWrites(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte("a"), []byte("1")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("2")))
	require.NoError(t, cache.Delete([]byte("a")))

	v, err := cache.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)

	ok, err := cache.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Nothing is visible in the parent before Write.
	ok, err = base.Has([]byte("b"))
	require.NoError(t, err)
	assert.False(t, ok)
	v, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()

	discarded := base.CacheWrap()
	require.NoError(t, discarded.Set([]byte("lost"), []byte("x")))
	discarded.Discard()
	ok, err := base.Has([]byte("lost"))
	require.NoError(t, err)
	assert.False(t, ok)

	written := base.CacheWrap()
	require.NoError(t, written.Set([]byte("kept"), []byte("y")))
	require.NoError(t, written.Write())
	v, err := base.Get([]byte("kept"))
	require.NoError(t, err)
	assert.Equal(t, []byte("y"), v)

	// A second write must not replay anything.
	require.NoError(t, base.Delete([]byte("kept")))
	require.NoError(t, written.Write())
	ok, err = base.Has([]byte("kept"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheWrapIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("base")))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache")))
	require.NoError(t, cache.Set([]byte("c"), []byte("cache")))
	require.NoError(t, cache.Delete([]byte("e")))
	require.NoError(t, cache.Set([]byte("h"), []byte("cache")))

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	all := collect(t, it)
	assert.Equal(t, []string{"a", "b", "c", "g", "h"}, keys(all))
	assert.Equal(t, []byte("cache"), all[2].Value)

	it, err = cache.Iterator([]byte("b"), []byte("g"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, keys(collect(t, it)))

	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "g", "c", "b", "a"}, keys(collect(t, it)))

	it, err = cache.ReverseIterator([]byte("c"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "g", "c"}, keys(collect(t, it)))
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("k"), []byte("v")))
	require.NoError(t, inner.Write())

	v, err := outer.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	outer.Discard()
	ok, err := base.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}
