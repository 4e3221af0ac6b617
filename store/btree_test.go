package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	// base is the root of our data, we can layer on top and
	// all queries should work
	base := MemStore()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	base.Set(k, v)
	assert.Equal(t, v, base.Get(k))
	assert.True(t, base.Has(k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, cache.Get(k))
	assert.True(t, cache.Has(k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Get(k2))
	cache.Set(k2, v2)
	assert.Equal(t, v2, cache.Get(k2))
	assert.Nil(t, base.Get(k2))
	assert.False(t, base.Has(k2))

	// we can write the cache to the base layer...
	cache.Write()
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	c2.Set(k3, v3)
	c2.Delete(k2)
	assert.Equal(t, v3, c2.Get(k3))
	assert.False(t, c2.Has(k2))
	c2.Discard()
	assert.Nil(t, base.Get(k3))
	assert.Equal(t, v2, base.Get(k2))

	// and deletes are written as well
	c3 := base.CacheWrap()
	c3.Delete(k)
	c3.Write()
	assert.False(t, base.Has(k))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	base.Set([]byte("a"), []byte("1"))
	base.Set([]byte("c"), []byte("3"))
	base.Set([]byte("e"), []byte("5"))

	cache := base.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Set([]byte("c"), []byte("33"))
	cache.Delete([]byte("e"))
	cache.Set([]byte("f"), []byte("6"))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: []Model{
				{Key: []byte("a"), Value: []byte("1")},
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("c"), Value: []byte("33")},
				{Key: []byte("f"), Value: []byte("6")},
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("f"),
			want: []Model{
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("c"), Value: []byte("33")},
			},
		},
		"reverse range": {
			start:   []byte("a"),
			end:     []byte("c"),
			reverse: true,
			want: []Model{
				{Key: []byte("b"), Value: []byte("2")},
				{Key: []byte("a"), Value: []byte("1")},
			},
		},
		"empty range": {
			start: []byte("x"),
			end:   []byte("z"),
			want:  []Model{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var it Iterator
			if tc.reverse {
				it = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it = cache.Iterator(tc.start, tc.end)
			}
			got := ReadAll(it)
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.Equal(t, tc.want[i], got[i])
			}
		})
	}

	// the parent is not affected by the cache
	assert.Len(t, ReadAll(base.Iterator(nil, nil)), 3)
}

func TestSliceIteratorPanicsWhenExhausted(t *testing.T) {
	it := NewSliceIterator([]Model{{Key: []byte("k"), Value: []byte("v")}})
	require.True(t, it.Valid())
	it.Next()
	assert.False(t, it.Valid())
	assert.Panics(t, func() { it.Next() })
	assert.Panics(t, func() { it.Key() })
}
