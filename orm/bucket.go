package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/lockbox"
	"github.com/iov-one/lockbox/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the store holding raw values.
type Bucket struct {
	name   string
	prefix []byte
}

var _ lockbox.QueryHandler = Bucket{}

// NewBucket returns a bucket storing data under the "name:" prefix. It
// panics on an invalid name.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey returns the full store key for the given bucket key. It always
// allocates, so results of consecutive calls never share memory.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, len(b.prefix)+len(key))
	copy(out, b.prefix)
	copy(out[len(b.prefix):], key)
	return out
}

// bucketKey strips the bucket prefix from a store key.
func (b Bucket) bucketKey(dbKey []byte) []byte {
	return dbKey[len(b.prefix):]
}

// Get returns the raw value or nil.
func (b Bucket) Get(db lockbox.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(err, "get")
	}
	return raw, nil
}

// Has returns true if the key is present.
func (b Bucket) Has(db lockbox.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(err, "has")
	}
	return ok, nil
}

// Set stores the raw value.
func (b Bucket) Set(db lockbox.KVStore, key, value []byte) error {
	return errors.Wrap(db.Set(b.DBKey(key), value), "set")
}

// PrefixIterator iterates over all entries whose key starts with prefix,
// in ascending key order, or descending if reverse is set.
func (b Bucket) PrefixIterator(db lockbox.ReadOnlyKVStore, prefix []byte, reverse bool) (lockbox.Iterator, error) {
	start, end := prefixRange(b.DBKey(prefix))
	var (
		it  lockbox.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return it, nil
}

// Query implements lockbox.QueryHandler. Keys of the results are bucket
// keys, without the prefix.
func (b Bucket) Query(db lockbox.ReadOnlyKVStore, mod string, data []byte) ([]lockbox.Model, error) {
	switch mod {
	case lockbox.KeyQueryMod:
		raw, err := b.Get(db, data)
		if err != nil || raw == nil {
			return nil, err
		}
		return []lockbox.Model{{Key: data, Value: raw}}, nil
	case lockbox.PrefixQueryMod:
		it, err := b.PrefixIterator(db, data, false)
		if err != nil {
			return nil, err
		}
		defer it.Release()
		var res []lockbox.Model
		for {
			k, v, err := it.Next()
			if errors.ErrIteratorDone.Is(err) {
				return res, nil
			}
			if err != nil {
				return nil, err
			}
			res = append(res, lockbox.Model{Key: b.bucketKey(k), Value: v})
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// prefixRange returns the [start, end) range holding all keys starting
// with prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	start := prefix
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	// Prefix made of 0xFF bytes only has no upper bound.
	return start, nil
}
