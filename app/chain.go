package app

import (
	"reflect"

	"github.com/iov-one/billchain"
)

// Decorators is an ordered stack of decorators that still lacks the final
// handler. The first decorator is the outermost one.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
type Decorators struct {
	chain []billchain.Decorator
}

// ChainDecorators builds a stack from the given decorators. Nil values are
// skipped, which allows optional decorators to be passed inline.
func ChainDecorators(chain ...billchain.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the decorators appended. The receiver is
// not modified.
func (d Decorators) Chain(chain ...billchain.Decorator) Decorators {
	res := make([]billchain.Decorator, len(d.chain), len(d.chain)+len(chain))
	copy(res, d.chain)
	for _, dec := range chain {
		if !isNil(dec) {
			res = append(res, dec)
		}
	}
	return Decorators{chain: res}
}

func isNil(d billchain.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h billchain.Handler) billchain.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{dec: d.chain[i], next: h}
	}
	return h
}

// step binds one decorator to the handler it wraps.
type step struct {
	dec  billchain.Decorator
	next billchain.Handler
}

var _ billchain.Handler = step{}

func (s step) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}
