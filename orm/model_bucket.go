package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	billchain.Persistent
	Validate() error
}

// ModelBucket is a collection of models of the same type, stored under a
// common prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db billchain.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db billchain.ReadOnlyKVStore, key []byte) error

	// ByIndex loads all models that are indexed under given value. The
	// destination must be a pointer to a slice of models (or model
	// pointers). The primary keys of the loaded models are returned in the
	// same order.
	ByIndex(db billchain.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error)

	// Put saves given model in the database. If key is nil and the bucket
	// was created with an ID sequence, a new key is allocated. The key the
	// model was stored under is returned.
	Put(db billchain.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db billchain.KVStore, key []byte) error

	// Register registers this bucket, and all its indexes, under the
	// given path with the query router.
	Register(path string, r billchain.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIDSequence configures the bucket to use the given sequence instance
// for generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function. If an index is unique, there can be only one entity
// referenced per index value.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isBucketName(name) {
			panic("invalid index name: " + name)
		}
		if _, ok := mb.indexes[name]; ok {
			panic("index declared twice: " + name)
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique)
		mb.indexOrder = append(mb.indexOrder, name)
	}
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// NewModelBucket returns a ModelBucket instance. The name must be a valid
// bucket name and example is any instance of the model type the bucket
// stores.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	t := reflect.TypeOf(example)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: t.Elem(),
		indexes:   make(map[string]index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	idSeq     *Sequence
	indexes   map[string]index
	// indexOrder keeps index updates deterministic.
	indexOrder []string
}

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte(nil), mb.prefix...), key...)
}

func (mb *modelBucket) One(db billchain.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty key")
	}
	if t := reflect.TypeOf(dest); t.Kind() != reflect.Ptr || t.Elem() != mb.modelType {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.modelType)
	}
	raw := db.Get(mb.dbKey(key))
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	reflect.ValueOf(dest).Elem().Set(reflect.Zero(mb.modelType))
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "unmarshal %s: %s", mb.name, err)
	}
	return nil
}

func (mb *modelBucket) Has(db billchain.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 || !db.Has(mb.dbKey(key)) {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) ByIndex(db billchain.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no index %q in %s", indexName, mb.name)
	}
	refs, err := idx.refs(db, value)
	if err != nil {
		return nil, err
	}

	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrap(errors.ErrType, "destination must be a pointer to a slice")
	}
	elemType := slice.Elem().Type().Elem()
	isPtr := elemType.Kind() == reflect.Ptr
	if isPtr && elemType.Elem() != mb.modelType || !isPtr && elemType != mb.modelType {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be represented as %s", elemType, mb.modelType)
	}

	res := slice.Elem()
	for _, ref := range refs.Refs {
		m := reflect.New(mb.modelType)
		if err := mb.One(db, ref, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %s reference %X", indexName, ref)
		}
		if isPtr {
			res = reflect.Append(res, m)
		} else {
			res = reflect.Append(res, m.Elem())
		}
	}
	slice.Elem().Set(res)
	return refs.Refs, nil
}

func (mb *modelBucket) Put(db billchain.KVStore, key []byte, m Model) ([]byte, error) {
	if t := reflect.TypeOf(m); t.Kind() != reflect.Ptr || t.Elem() != mb.modelType {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 && mb.idSeq == nil {
		return nil, errors.Wrap(errors.ErrHuman, "missing key and no ID sequence")
	}

	// Sequence and index writes are staged until every index accepted the
	// model, so a rejected Put leaves no trace.
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	key, err := mb.put(cache, key, m)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return key, nil
}

func (mb *modelBucket) put(db billchain.KVStore, key []byte, m Model) ([]byte, error) {
	if len(key) == 0 {
		key = mb.idSeq.NextVal(db)
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return nil, err
	}
	for _, name := range mb.indexOrder {
		if err := mb.indexes[name].update(db, key, prev, m); err != nil {
			return nil, err
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %s: %s", mb.name, err)
	}
	db.Set(mb.dbKey(key), raw)
	return key, nil
}

func (mb *modelBucket) Delete(db billchain.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.name, key)
	}
	for _, name := range mb.indexOrder {
		if err := mb.indexes[name].update(db, key, prev, nil); err != nil {
			return err
		}
	}
	db.Delete(mb.dbKey(key))
	return nil
}

// load returns the currently stored model or nil.
func (mb *modelBucket) load(db billchain.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.modelType).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
