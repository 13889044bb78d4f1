package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonAtomicBatch(t *testing.T) {
	out := MemStore()
	b := NewNonAtomicBatch(out)
	require.NoError(t, b.Set([]byte("a"), []byte("1")))
	require.NoError(t, b.Set([]byte("b"), []byte("2")))
	require.NoError(t, b.Delete([]byte("a")))
	assert.Len(t, b.ShowOps(), 3)

	require.NoError(t, b.Write())
	assert.Empty(t, b.ShowOps())

	ok, err := out.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, ok)
	v, err := out.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestSliceIterator(t *testing.T) {
	models := []Model{
		{Key: []byte("c")},
		{Key: []byte("a")},
		{Key: []byte("b")},
	}
	SortModels(models)
	assert.Equal(t, []string{"a", "b", "c"}, keys(collect(t, NewSliceIterator(models))))
	assert.Empty(t, collect(t, NewSliceIterator(nil)))
}
