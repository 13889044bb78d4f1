package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/lockbox/errors"
)

// ascendBtree returns a snapshot of the cached items in [start, end).
// A transaction cache holds few items, so copying them is cheaper than
// keeping the tree locked for the lifetime of the iterator.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree is ascendBtree in reverse order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// mergedIterator combines cached items with the parent iterator. A cached
// item shadows a parent entry with the same key and a deleted item hides
// it.
type mergedIterator struct {
	cached    []btree.Item
	parent    Iterator
	ascending bool

	// Next entry of the parent, read ahead.
	pkey, pvalue []byte
	pdone        bool
	ploaded      bool
}

var _ Iterator = (*mergedIterator)(nil)

func newMergedIterator(cached []btree.Item, parent Iterator, ascending bool) *mergedIterator {
	return &mergedIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergedIterator) loadParent() error {
	if m.ploaded || m.pdone {
		return nil
	}
	k, v, err := m.parent.Next()
	switch {
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
	case err != nil:
		return err
	default:
		m.pkey, m.pvalue, m.ploaded = k, v, true
	}
	return nil
}

// before returns true if key a comes before b in iteration order.
func (m *mergedIterator) before(a, b []byte) bool {
	if m.ascending {
		return bytes.Compare(a, b) < 0
	}
	return bytes.Compare(a, b) > 0
}

func (m *mergedIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}

		if len(m.cached) == 0 {
			if !m.ploaded {
				return nil, nil, errors.ErrIteratorDone
			}
			m.ploaded = false
			return m.pkey, m.pvalue, nil
		}

		item := m.cached[0]
		ckey := item.(keyer).Key()
		if m.ploaded && m.before(m.pkey, ckey) {
			m.ploaded = false
			return m.pkey, m.pvalue, nil
		}

		// The cached item is next. It shadows a parent entry with the
		// same key.
		m.cached = m.cached[1:]
		if m.ploaded && bytes.Equal(m.pkey, ckey) {
			m.ploaded = false
		}
		switch it := item.(type) {
		case setItem:
			return it.key, it.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrHuman, "unknown btree item %T", item)
		}
	}
}

func (m *mergedIterator) Release() {
	m.parent.Release()
	m.cached = nil
}
