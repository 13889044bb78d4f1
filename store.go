package lockbox

// ReadOnlyKVStore is the read side of a key value store.
type ReadOnlyKVStore interface {
	// Get returns nil if the key does not exist. It panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if the key is present. It panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator returns an iterator over the domain [start, end), ascending
	// by key. A nil start or end is unbounded.
	//
	// The store must not be modified while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator is Iterator in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side of a key value store.
type SetDeleter interface {
	// Set panics on nil key.
	Set(key, value []byte) error

	// Delete is a no-op for a missing key. It panics on nil key.
	Delete(key []byte) error
}

// KVStore is a full key value store.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that can hold writes until Write is
	// called.
	NewBatch() Batch
}

// Batch collects writes and applies them to the store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks over a range of key value pairs.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type Iterator interface {
	// Next returns the next pair or errors.ErrIteratorDone when the
	// range is exhausted.
	Next() (key, value []byte, err error)

	// Release frees resources held by the iterator. It is safe to call
	// it more than once.
	Release()
}

// CacheableKVStore is a store that can be wrapped with a write cache.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds all writes in memory until Write flushes them to the
// parent store. Discard drops all of them.
//
// A cache wrap is the unit of atomicity: a transaction is executed inside
// a fresh wrap that is written only if the transaction succeeds.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the root store of the application. It is persisted on
// Commit and every commit creates a new version.
type CommitKVStore interface {
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit persists all written data and returns the new version.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the last committed state.
	LoadLatestVersion() error

	// LatestVersion returns the last committed version.
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed state by its version and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
