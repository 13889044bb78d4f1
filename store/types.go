package store

import "github.com/iov-one/lockbox"

// Storage interfaces are declared in the root package. Aliases keep the
// names short inside this package.
type (
	ReadOnlyKVStore  = lockbox.ReadOnlyKVStore
	KVStore          = lockbox.KVStore
	Batch            = lockbox.Batch
	Iterator         = lockbox.Iterator
	CacheableKVStore = lockbox.CacheableKVStore
	KVCacheWrap      = lockbox.KVCacheWrap
	CommitKVStore    = lockbox.CommitKVStore
	CommitID         = lockbox.CommitID
)
