package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store/iavl"
	"github.com/iov-one/billchain/x/utils"
	"github.com/stretchr/testify/assert"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestBaseAppDispatch(t *testing.T) {
	handler := &chaintest.Handler{
		CheckResult:   billchain.CheckResult{Log: "checked"},
		DeliverResult: billchain.DeliverResult{Log: "delivered"},
		OnDeliver: func(db billchain.KVStore) {
			db.Set([]byte("written"), []byte("yes"))
		},
	}
	r := NewRouter()
	r.Handle(&chaintest.Msg{RoutePath: "test/ok"}, handler)

	decoder := func(raw []byte) (billchain.Tx, error) {
		if len(raw) == 0 {
			return nil, errors.Wrap(errors.ErrInput, "empty tx")
		}
		if raw[0] == 0xff {
			panic("cannot decode")
		}
		return &chaintest.Tx{Msg: &chaintest.Msg{RoutePath: string(raw)}}, nil
	}

	stack := ChainDecorators(utils.NewLogging(), utils.NewRecovery()).WithHandler(r)
	store := NewStoreApp("base", iavl.NewMemCommitStore(), billchain.NewQueryRouter(), context.Background())
	store.WithInit(ChainInitializers())
	base := NewBaseApp(store, decoder, stack, false)

	base.InitChain(abci.RequestInitChain{ChainId: "base-test", AppStateBytes: []byte(`{}`)})
	base.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: time.Now()}})

	check := base.CheckTx([]byte("test/ok"))
	assert.Equal(t, uint32(0), check.Code, check.Log)
	assert.Equal(t, "checked", check.Log)

	deliver := base.DeliverTx([]byte("test/ok"))
	assert.Equal(t, uint32(0), deliver.Code, deliver.Log)
	assert.Equal(t, "delivered", deliver.Log)
	assert.Equal(t, []byte("yes"), base.DeliverStore().Get([]byte("written")))

	deliver = base.DeliverTx([]byte("test/unknown"))
	assert.Equal(t, errors.ErrNotFound.ABCICode(), deliver.Code)

	deliver = base.DeliverTx(nil)
	assert.Equal(t, errors.ErrInput.ABCICode(), deliver.Code)

	// decoder panics are turned into errors
	check = base.CheckTx([]byte{0xff})
	assert.NotEqual(t, uint32(0), check.Code)
}
