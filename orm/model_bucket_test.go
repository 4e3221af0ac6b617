package orm

import (
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
)

// counter is a minimal model used to exercise the bucket.
type counter struct {
	Metadata *billchain.Metadata
	Owner    []byte
	Name     string
	Count    int64
}

func (c *counter) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func (c *counter) Marshal() ([]byte, error) { return cdc.MarshalBinaryBare(c) }

func (c *counter) Unmarshal(raw []byte) error { return cdc.UnmarshalBinaryBare(raw, c) }

func counterByOwner(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}

func counterByName(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(c.Name), nil
}

func newCounterBucket() ModelBucket {
	return NewModelBucket("counter", &counter{},
		WithIDSequence(NewSequence("counter", "id")),
		WithIndex("owner", counterByOwner, false),
		WithIndex("name", counterByName, true),
	)
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	first, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "one", Count: 1})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), first)

	second, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "two", Count: 2})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), second)

	var c counter
	assert.Nil(t, b.One(db, second, &c))
	assert.Equal(t, "two", c.Name)
	assert.Equal(t, int64(2), c.Count)

	assert.Nil(t, b.Has(db, first))
	assert.IsErr(t, errors.ErrNotFound, b.Has(db, EncodeSequence(3)))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, EncodeSequence(3), &c))
}

func TestModelBucketRejects(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	_, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}})
	assert.IsErr(t, errors.ErrEmpty, err)

	noSeq := NewModelBucket("counter", &counter{})
	_, err = noSeq.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Name: "x"})
	assert.IsErr(t, errors.ErrHuman, err)

	var wrong MultiRef
	_, err = b.Put(db, []byte("k"), &wrongModel{MultiRef: wrong})
	assert.IsErr(t, errors.ErrType, err)
}

type wrongModel struct {
	MultiRef
}

func (wrongModel) Validate() error { return nil }

func TestModelBucketIndexes(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	k1, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "one"})
	assert.Nil(t, err)
	k2, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "two"})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "three"})
	assert.Nil(t, err)

	var owned []counter
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &owned)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k1, k2}, keys)
	assert.Equal(t, 2, len(owned))
	assert.Equal(t, "one", owned[0].Name)

	// Unique index refuses a second entity with the same name.
	_, err = b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "one"})
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Moving an entity to another owner updates the index.
	_, err = b.Put(db, k2, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "two"})
	assert.Nil(t, err)
	var ptrs []*counter
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &ptrs)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(keys))

	assert.Nil(t, b.Delete(db, k1))
	owned = nil
	keys, err = b.ByIndex(db, "owner", []byte("alice"), &owned)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, k1))

	// Name is free again once the entity is deleted.
	_, err = b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("carol"), Name: "one"})
	assert.Nil(t, err)

	_, err = b.ByIndex(db, "unknown", []byte("x"), &owned)
	assert.IsErr(t, errors.ErrHuman, err)
}

func TestModelBucketRejectedPutWritesNothing(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()
	seq := NewSequence("counter", "id")

	k1, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "one"})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(1), k1)

	// The owner index accepts the model before the name index rejects it.
	_, err = b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "one"})
	assert.IsErr(t, errors.ErrDuplicate, err)
	assert.Equal(t, int64(1), seq.Latest(db))

	var owned []counter
	keys, err := b.ByIndex(db, "owner", []byte("bob"), &owned)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	k2, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "two"})
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(2), k2)
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &owned)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{k2}, keys)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()
	qr := billchain.NewQueryRouter()
	b.Register("counters", qr)

	k1, err := b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("alice"), Name: "one"})
	assert.Nil(t, err)
	_, err = b.Put(db, nil, &counter{Metadata: &billchain.Metadata{Schema: 1}, Owner: []byte("bob"), Name: "two"})
	assert.Nil(t, err)

	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("no handler registered")
	}
	res, err := h.Query(db, billchain.KeyQueryMod, k1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, k1, res[0].Key)

	res, err = h.Query(db, billchain.PrefixQueryMod, nil)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	res, err = qr.Handler("/counters/owner").Query(db, billchain.KeyQueryMod, []byte("bob"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))

	var c counter
	assert.Nil(t, c.Unmarshal(res[0].Value))
	assert.Equal(t, "two", c.Name)
}
