package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

// Model is an entity that can be stored in a ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type.
type ModelBucket interface {
	// One loads the model stored under the key into dest. It returns
	// ErrNotFound if the key does not exist and ErrType if dest is not
	// of the bucket model type.
	One(db lockbox.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if a model is stored under the key.
	Has(db lockbox.ReadOnlyKVStore, key []byte) (bool, error)

	// Put validates and stores the model, overwriting any previous
	// value.
	Put(db lockbox.KVStore, key []byte, m Model) error

	// Insert is Put that fails with ErrDuplicate if the key exists.
	Insert(db lockbox.KVStore, key []byte, m Model) error

	// PrefixScan iterates over all models whose key starts with
	// prefix, ascending by key unless reverse is set.
	PrefixScan(db lockbox.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// Register exposes the bucket content under the given query path.
	Register(path string, r lockbox.QueryRouter)
}

// NewModelBucket returns a bucket storing models of the same type as m.
func NewModelBucket(name string, m Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(m),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) checkType(m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot use %s", mb.model, t)
	}
	return nil
}

func (mb *modelBucket) One(db lockbox.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s bucket", mb.b.Name())
	}
	return decode(raw, dest)
}

func (mb *modelBucket) Has(db lockbox.ReadOnlyKVStore, key []byte) (bool, error) {
	return mb.b.Has(db, key)
}

func (mb *modelBucket) Put(db lockbox.KVStore, key []byte, m Model) error {
	if err := mb.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal: %s", err)
	}
	return mb.b.Set(db, key, raw)
}

func (mb *modelBucket) Insert(db lockbox.KVStore, key []byte, m Model) error {
	switch ok, err := mb.b.Has(db, key); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "%s bucket", mb.b.Name())
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) PrefixScan(db lockbox.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	it, err := mb.b.PrefixIterator(db, prefix, reverse)
	if err != nil {
		return nil, err
	}
	return &modelIterator{it: it, b: mb}, nil
}

func (mb *modelBucket) Register(path string, r lockbox.QueryRouter) {
	r.Register(path, mb.b)
}

func decode(raw []byte, dest Model) error {
	dest.Reset()
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal: %s", err)
	}
	return nil
}
