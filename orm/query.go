package orm

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr billchain.Iterator) []billchain.Model {
	defer itr.Close()

	res := []billchain.Model{}
	for ; itr.Valid(); itr.Next() {
		mod := billchain.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		}
		res = append(res, mod)
	}
	return res
}

// prefixRange returns the iteration boundaries of all keys starting with
// prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}

// Register exposes the bucket content under path. Every index is exposed
// under path/<index name>.
func (mb *modelBucket) Register(path string, r billchain.QueryRouter) {
	r.Register("/"+path, bucketQuery{mb: mb})
	for _, name := range mb.indexOrder {
		r.Register("/"+path+"/"+name, indexQuery{mb: mb, idx: mb.indexes[name]})
	}
}

// bucketQuery returns models by their primary key. Returned keys do not
// include the bucket prefix.
type bucketQuery struct {
	mb *modelBucket
}

func (q bucketQuery) Query(db billchain.ReadOnlyKVStore, mod string, data []byte) ([]billchain.Model, error) {
	switch mod {
	case billchain.KeyQueryMod:
		raw := db.Get(q.mb.dbKey(data))
		if raw == nil {
			return nil, nil
		}
		return []billchain.Model{billchain.Pair(data, raw)}, nil
	case billchain.PrefixQueryMod:
		start, end := prefixRange(q.mb.dbKey(data))
		models := ConsumeIterator(db.Iterator(start, end))
		for i := range models {
			models[i].Key = models[i].Key[len(q.mb.prefix):]
		}
		return models, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}

// indexQuery returns all models referenced by an index value.
type indexQuery struct {
	mb  *modelBucket
	idx index
}

func (q indexQuery) Query(db billchain.ReadOnlyKVStore, mod string, data []byte) ([]billchain.Model, error) {
	if mod != billchain.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	refs, err := q.idx.refs(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]billchain.Model, 0, len(refs.Refs))
	for _, ref := range refs.Refs {
		raw := db.Get(q.mb.dbKey(ref))
		if raw == nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "index %s: dangling reference %X", q.idx.name, ref)
		}
		res = append(res, billchain.Pair(ref, raw))
	}
	return res, nil
}
