package store

// SliceIterator walks over models that were already loaded into memory. All
// iterators in this package are built on it, since the btree cache and the
// iavl adapter both produce their result set upfront.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (it *SliceIterator) Valid() bool {
	return it.pos < len(it.models)
}

// Next panics when the iterator is exhausted.
func (it *SliceIterator) Next() {
	it.current()
	it.pos++
}

func (it *SliceIterator) Key() []byte {
	return it.current().Key
}

func (it *SliceIterator) Value() []byte {
	return it.current().Value
}

func (it *SliceIterator) Close() {
	it.models = nil
}

func (it *SliceIterator) current() Model {
	if !it.Valid() {
		panic("iterator exhausted")
	}
	return it.models[it.pos]
}

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer of a
// standalone MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) []byte { return nil }
func (EmptyKVStore) Has([]byte) bool { return false }
func (EmptyKVStore) Set(_, _ []byte) {}
func (EmptyKVStore) Delete([]byte) {}
func (EmptyKVStore) Iterator(_, _ []byte) Iterator { return NewSliceIterator(nil) }
func (EmptyKVStore) ReverseIterator(_, _ []byte) Iterator { return NewSliceIterator(nil) }

// ReadAll drains the iterator and closes it.
func ReadAll(it Iterator) []Model {
	defer it.Close()
	var res []Model
	for ; it.Valid(); it.Next() {
		res = append(res, Model{Key: it.Key(), Value: it.Value()})
	}
	return res
}
