package store

import "github.com/iov-one/billchain"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = billchain.ReadOnlyKVStore
type KVStore = billchain.KVStore
type Iterator = billchain.Iterator
type CacheableKVStore = billchain.CacheableKVStore
type KVCacheWrap = billchain.KVCacheWrap
type CommitKVStore = billchain.CommitKVStore
type CommitID = billchain.CommitID
type Model = billchain.Model
