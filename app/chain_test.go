package app

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicAtHeight panics when called at or above the given height.
type panicAtHeight int64

func (p panicAtHeight) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	if h, _ := billchain.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Check(ctx, db, tx)
}

func (p panicAtHeight) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	if h, _ := billchain.GetHeight(ctx); h >= int64(p) {
		panic("too high")
	}
	return next.Deliver(ctx, db, tx)
}

func TestChain(t *testing.T) {
	var (
		c1, c2, c3 chaintest.Decorator
		h          chaintest.Handler
	)

	stack := ChainDecorators(
		&c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		&c2,
		panicAtHeight(6),
		&c3,
	).WithHandler(&h)

	tx := &chaintest.Tx{Msg: &chaintest.Msg{RoutePath: "test/chain"}}
	bg := context.Background()

	_, err := stack.Check(billchain.WithHeight(bg, 2), nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(billchain.WithHeight(bg, 4), nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())

	// the panic is converted to an error by the recovery decorator
	ctx := billchain.WithHeight(bg, 8)
	_, err = stack.Check(ctx, nil, tx)
	assert.Error(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.Error(t, err)

	assert.Equal(t, 4, c1.CallCount())
	assert.Equal(t, 4, c2.CallCount())
	// never reached past the panic
	assert.Equal(t, 2, c3.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNilDecorators(t *testing.T) {
	var (
		d *chaintest.Decorator
		h chaintest.Handler
	)
	stack := ChainDecorators(nil, d).Chain(nil).WithHandler(&h)
	tx := &chaintest.Tx{Msg: &chaintest.Msg{RoutePath: "test/chain"}}

	_, err := stack.Deliver(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}
