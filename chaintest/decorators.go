package chaintest

import "github.com/iov-one/billchain"

// Decorator is a mock implementation of the billchain.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// If error attributes are not set then wrapped handler method is called and
// its result returned.
// Each method call is counted.
type Decorator struct {
	checkCall int
	// CheckErr if set is returned by the Check method before calling
	// the wrapped handler.
	CheckErr error

	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ billchain.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

func (d *Decorator) CallCount() int {
	return d.checkCall + d.deliverCall
}

// Decorate wraps given handler with a decorator.
func Decorate(h billchain.Handler, d billchain.Decorator) billchain.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn billchain.Handler
	dc billchain.Decorator
}

var _ billchain.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
