package utils

import (
	"sync"

	"github.com/iov-one/billchain"
)

// Serializer is a decorator that allows only one Check or Deliver call to
// run at a time. Tendermint already calls the application from a single
// goroutine; use it when the handler stack is embedded directly by a
// program that processes transactions concurrently. State read by the
// wrapped handler is always read after the lock is acquired.
type Serializer struct {
	mu *sync.Mutex
}

var _ billchain.Decorator = Serializer{}

// NewSerializer creates a Serializer decorator. All copies of the returned
// value share the same lock.
func NewSerializer() Serializer {
	return Serializer{mu: &sync.Mutex{}}
}

// Check runs the next checker while holding the lock.
func (s Serializer) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return next.Check(ctx, db, tx)
}

// Deliver runs the next deliverer while holding the lock.
func (s Serializer) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return next.Deliver(ctx, db, tx)
}
