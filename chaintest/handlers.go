package chaintest

import "github.com/iov-one/billchain"

// Handler is a mock implementing billchain.Handler that counts calls and
// returns configured results.
type Handler struct {
	checkCall   int
	CheckResult billchain.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult billchain.DeliverResult
	DeliverErr    error

	// OnCheck and OnDeliver if set are called with the store before the
	// result is returned. Use them to write state from a handler double.
	OnCheck   func(billchain.KVStore)
	OnDeliver func(billchain.KVStore)
}

var _ billchain.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	h.checkCall++
	if h.OnCheck != nil {
		h.OnCheck(db)
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		h.OnDeliver(db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
