package orm

import (
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// ModelIterator loads models one by one.
//
//	it, err := bucket.PrefixScan(db, prefix, false)
//	...
//	defer it.Release()
//	for {
//		var m MyModel
//		key, err := it.LoadNext(&m)
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type ModelIterator interface {
	// LoadNext loads the next model into dest and returns its key
	// without the bucket prefix. It returns ErrIteratorDone when there
	// are no more models.
	LoadNext(dest Model) ([]byte, error)

	Release()
}

type modelIterator struct {
	it lockbox.Iterator
	b  *modelBucket
}

func (m *modelIterator) LoadNext(dest Model) ([]byte, error) {
	if err := m.b.checkType(dest); err != nil {
		return nil, err
	}
	k, v, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := decode(v, dest); err != nil {
		return nil, errors.Wrapf(err, "key %X", k)
	}
	return m.b.b.bucketKey(k), nil
}

func (m *modelIterator) Release() {
	m.it.Release()
}
