package utils

import "github.com/iov-one/billchain"

// Savepoint runs the rest of the stack on a cache of the store. The cache is
// written only when the call succeeds, so a failed transaction leaves no
// partial state behind. Savepoint is disabled until OnCheck or OnDeliver
// enables it for the respective phase.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ billchain.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	var res *billchain.CheckResult
	err := savepoint(s.onCheck, db, func(db billchain.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	var res *billchain.DeliverResult
	err := savepoint(s.onDeliver, db, func(db billchain.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// savepoint calls fn directly when disabled or when the store cannot be
// cache wrapped.
func savepoint(enabled bool, db billchain.KVStore, fn func(billchain.KVStore) error) error {
	cacheable, ok := db.(billchain.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
