package utils

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

// Recovery converts a panic raised down the stack into an ErrPanic error and
// logs it. A panicking handler must never halt the node.
type Recovery struct{}

var _ billchain.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (_ *billchain.CheckResult, err error) {
	defer logPanic(ctx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (_ *billchain.DeliverResult, err error) {
	defer logPanic(ctx, &err)
	return next.Deliver(ctx, db, tx)
}

// logPanic must be deferred directly, as recover only works in the deferred
// function itself.
func logPanic(ctx billchain.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		billchain.GetLogger(ctx).Error("recovered from panic", "panic", r)
	}
}
