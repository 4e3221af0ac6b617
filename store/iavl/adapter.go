/*
Package iavl provides a persistent, merkleized CommitKVStore backed by an
IAVL tree on top of a tendermint database.
*/
package iavl

import (
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing. The database is
// stored in dir under the given name.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	return newCommitStore(db)
}

// NewMemCommitStore returns a store that is only kept in memory. Useful for
// tests.
func NewMemCommitStore() CommitStore {
	return newCommitStore(dbm.NewMemDB())
}

func newCommitStore(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, cacheSize)}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) []byte {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap returns a btree cache on top of the working tree. Writing the
// cache moves all changes to the working tree, they are persisted with the
// next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(treeStore{tree: s.tree}, nil)
}

// treeStore exposes the working tree as a KVStore.
type treeStore struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeStore{}

func (t treeStore) Get(key []byte) []byte {
	_, val := t.tree.Get(key)
	return val
}

func (t treeStore) Has(key []byte) bool {
	return t.tree.Has(key)
}

func (t treeStore) Set(key, value []byte) {
	t.tree.Set(key, value)
}

func (t treeStore) Delete(key []byte) {
	t.tree.Remove(key)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (t treeStore) Iterator(start, end []byte) store.Iterator {
	return store.NewSliceIterator(t.collect(start, end, true))
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (t treeStore) ReverseIterator(start, end []byte) store.Iterator {
	return store.NewSliceIterator(t.collect(start, end, false))
}

func (t treeStore) collect(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	t.tree.IterateRange(start, end, ascending, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return res
}
