package app

import (
	"fmt"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]billchain.Handler
}

var _ billchain.Registry = (*Router)(nil)
var _ billchain.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]billchain.Handler, 10),
	}
}

// Handle adds a new Handler for the path of the given message.
// Panics if another Handler was already registered for that path or the
// path is not valid.
func (r *Router) Handle(m billchain.Msg, h billchain.Handler) {
	path := m.Path()
	if !billchain.IsValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path, or a handler that
// always fails when the path is not known.
func (r *Router) handler(tx billchain.Tx) (billchain.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, store, tx)
}
