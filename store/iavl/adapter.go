/*
Package iavl persists the application state in a versioned merkle tree.
Every Commit creates a new version whose root hash is the app hash
reported to tendermint.
*/
package iavl

import (
	"github.com/iov-one/lockbox/errors"
	"github.com/iov-one/lockbox/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore is the root store of the application.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens a goleveldb database named name inside dir.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return NewCommitStoreFromDB(db, DefaultCacheSize)
}

// MockCommitStore returns a store kept in memory.
func MockCommitStore() CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB(), DefaultCacheSize)
}

// NewCommitStoreFromDB uses the given database.
func NewCommitStoreFromDB(db dbm.DB, cacheSize int) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}
}

// Get returns the value of the last committed version.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit saves the working tree as a new version.
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(err, "save version")
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion loads the last persisted version. After a crash during
// commit the previous, complete, version is loaded.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(err, "load tree")
	}
	return nil
}

// LatestVersion describes the last committed version.
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap returns a cache over the working tree. Write applies the
// cached operations to the working tree, Commit persists them.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	w := workingTree{tree: s.tree}
	return store.NewBTreeCacheWrap(w, w.NewBatch(), nil)
}

// workingTree exposes the uncommitted tree as a KVStore.
type workingTree struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = workingTree{}

func (w workingTree) Get(key []byte) ([]byte, error) {
	_, val := w.tree.Get(key)
	return val, nil
}

func (w workingTree) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w workingTree) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w workingTree) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

func (w workingTree) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(w)
}

// Iterator reads the whole range up front. The tree must not be modified
// while it is iterated, and the range is read within a single
// transaction.
func (w workingTree) Iterator(start, end []byte) (store.Iterator, error) {
	return w.iterate(start, end, true), nil
}

func (w workingTree) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return w.iterate(start, end, false), nil
}

func (w workingTree) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	w.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res)
}
