package orm

import (
	"bytes"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given model. Returning a
// nil key means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index stores all entities indexed under the same value as a set, serialized
// and stored under a single key. This is fine as long as every index value
// refers to a small number of entities.
type index struct {
	name    string
	id      []byte
	unique  bool
	indexer Indexer
}

func newIndex(bucket, name string, indexer Indexer, unique bool) index {
	return index{
		name:    name,
		id:      []byte(compactIdxPrefix + bucket + "_" + name + ":"),
		unique:  unique,
		indexer: indexer,
	}
}

func (i index) dbKey(value []byte) []byte {
	return append(append([]byte(nil), i.id...), value...)
}

// update moves the primary key ref from the index value computed for prev to
// the one computed for next. Either model can be nil.
func (i index) update(db billchain.KVStore, ref []byte, prev, next Model) error {
	var prevKey, nextKey []byte
	if prev != nil {
		k, err := i.indexer(prev)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		prevKey = k
	}
	if next != nil {
		k, err := i.indexer(next)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		nextKey = k
	}

	if prev != nil && next != nil && bytes.Equal(prevKey, nextKey) {
		return nil
	}
	if prevKey != nil {
		if err := i.remove(db, prevKey, ref); err != nil {
			return err
		}
	}
	if nextKey != nil {
		if err := i.add(db, nextKey, ref); err != nil {
			return err
		}
	}
	return nil
}

func (i index) add(db billchain.KVStore, value, ref []byte) error {
	refs, err := i.refs(db, value)
	if err != nil {
		return err
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "unique index %s: %X", i.name, value)
	}
	if err := refs.Add(ref); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal refs")
	}
	db.Set(i.dbKey(value), raw)
	return nil
}

func (i index) remove(db billchain.KVStore, value, ref []byte) error {
	refs, err := i.refs(db, value)
	if err != nil {
		return err
	}
	if err := refs.Remove(ref); err != nil {
		return errors.Wrapf(err, "index %s", i.name)
	}
	if len(refs.Refs) == 0 {
		db.Delete(i.dbKey(value))
		return nil
	}
	raw, err := refs.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal refs")
	}
	db.Set(i.dbKey(value), raw)
	return nil
}

// refs returns all primary keys that are indexed under given value.
func (i index) refs(db billchain.ReadOnlyKVStore, value []byte) (*MultiRef, error) {
	var refs MultiRef
	raw := db.Get(i.dbKey(value))
	if raw == nil {
		return &refs, nil
	}
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "index %s: %s", i.name, err)
	}
	return &refs, nil
}
