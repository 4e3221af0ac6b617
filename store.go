package billchain

// ReadOnlyKVStore gives read access to the state. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written to while the iterator is open.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write half of a KVStore. Neither keys nor values may be
// modified by the caller once passed in.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the state every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
}

// Iterator walks a key range. Key, Value and Next panic once Valid returns
// false. Returned slices must not be modified.
//
//   it := db.Iterator(start, end)
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     use(it.Key(), it.Value())
//   }
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stage writes in a cache wrap. Savepoints and the
// check and deliver states of the application are cache wraps.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes on top of its parent store until Write copies
// them into the parent or Discard drops them. Reads see the staged writes.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent, versioned root of the state.
type CommitKVStore interface {
	// Get reads from the last committed version.
	Get(key []byte) []byte

	// CacheWrap stages changes on top of the last committed version.
	CacheWrap() KVCacheWrap

	// Commit persists all written cache wraps as a new version.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the newest complete version from disk.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
