package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{}, nil)
}

///////////////////////////////////////////////
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore.
// All writes are kept in the btree until Write is called.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	free *btree.FreeList
	back KVStore
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(kv KVStore, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:   btree.NewWithFreeList(2, free),
		free: free,
		back: kv,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.free)
}

// Write flushes all cached operations, in key order, to the underlying
// store and then cleans up.
func (b BTreeCacheWrap) Write() {
	b.bt.Ascend(func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			b.back.Set(t.key, t.value)
		case deletedItem:
			b.back.Delete(t.key)
		default:
			panic("unknown item in btree")
		}
		return true
	})
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data
func (b BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the BTree
func (b BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
}

// Delete marks the key as deleted in the BTree
func (b BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
}

// Get reads from btree if there, else backing store
func (b BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deletedItem:
			return nil
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store
func (b BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deletedItem:
			return false
		default:
			panic("unknown item in btree")
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	parent := ReadAll(b.back.Iterator(start, end))
	return NewSliceIterator(mergeAscending(parent, b.cached(start, end)))
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	parent := ReadAll(b.back.Iterator(start, end))
	res := mergeAscending(parent, b.cached(start, end))
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return NewSliceIterator(res)
}

// cached returns all btree items within [start, end) in ascending order. nil
// start or end means no boundary.
func (b BTreeCacheWrap) cached(start, end []byte) []btree.Item {
	var res []btree.Item
	collect := func(i btree.Item) bool {
		k := i.(keyer).Key()
		if end != nil && bytes.Compare(k, end) >= 0 {
			return false
		}
		res = append(res, i)
		return true
	}
	if start == nil {
		b.bt.Ascend(collect)
	} else {
		b.bt.AscendGreaterOrEqual(bkey{start}, collect)
	}
	return res
}

// mergeAscending combines sorted parent entries with sorted cache items.
// Cache items shadow parent entries with the same key. Deleted items are
// removed from the result.
func mergeAscending(parent []Model, cache []btree.Item) []Model {
	res := make([]Model, 0, len(parent)+len(cache))
	i, j := 0, 0
	for i < len(parent) || j < len(cache) {
		if j == len(cache) {
			res = append(res, parent[i])
			i++
			continue
		}
		ck := cache[j].(keyer).Key()
		if i < len(parent) {
			cmp := bytes.Compare(parent[i].Key, ck)
			if cmp < 0 {
				res = append(res, parent[i])
				i++
				continue
			}
			if cmp == 0 {
				// Shadowed by the cache.
				i++
			}
		}
		if s, ok := cache[j].(setItem); ok {
			res = append(res, Model{Key: s.key, Value: s.value})
		}
		j++
	}
	return res
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
