package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
)

func TestUpdateConfigurationHandler(t *testing.T) {
	cond := chaintest.NewCondition()
	admin := chaintest.NewCondition()

	cases := map[string]struct {
		// Init if set is the configuration state before the handler runs.
		Init           ValidMarshaler
		Msg            billchain.Msg
		MsgConditions  []billchain.Condition
		WantCheckErr   *errors.Error
		WantDeliverErr *errors.Error
		WantConfig     *myconfig
	}{
		"success": {
			Init: &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar", Cn: coin.NewCoin(10, 409, "ETH")},
			Msg: &myconfigMsg{
				Patch: &myconfig{Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "DAI")},
			},
			MsgConditions: []billchain.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 333, Str: "boing!", Cn: coin.NewCoin(4, 4, "DAI")},
		},
		"message must be signed by the configuration owner": {
			Init:           &myconfig{Owner: cond.Address(), Num: 5125},
			Msg:            &myconfigMsg{Patch: &myconfig{Num: 1}},
			MsgConditions:  []billchain.Condition{chaintest.NewCondition()},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
		"zero values are not updating the configuration": {
			Init:          &myconfig{Owner: cond.Address(), Num: 5125, Str: "foobar"},
			Msg:           &myconfigMsg{Patch: &myconfig{Str: "new"}},
			MsgConditions: []billchain.Condition{cond},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 5125, Str: "new"},
		},
		"missing patch": {
			Init:           &myconfig{Owner: cond.Address()},
			Msg:            &myconfigMsg{},
			MsgConditions:  []billchain.Condition{cond},
			WantCheckErr:   errors.ErrState,
			WantDeliverErr: errors.ErrState,
		},
		"invalid patch": {
			Init:           &myconfig{Owner: cond.Address()},
			Msg:            &myconfigMsg{Patch: &myconfig{Num: -4}},
			MsgConditions:  []billchain.Condition{cond},
			WantCheckErr:   errors.ErrInput,
			WantDeliverErr: errors.ErrInput,
		},
		"init admin can create a missing configuration": {
			Msg:           &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 1}},
			MsgConditions: []billchain.Condition{admin},
			WantConfig:    &myconfig{Owner: cond.Address(), Num: 1},
		},
		"missing configuration requires the init admin": {
			Msg:            &myconfigMsg{Patch: &myconfig{Owner: cond.Address(), Num: 1}},
			MsgConditions:  []billchain.Condition{cond},
			WantCheckErr:   errors.ErrUnauthorized,
			WantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.Init != nil {
				assert.Nil(t, Save(db, "mypkg", tc.Init))
			}

			auth := &chaintest.Auth{Signers: tc.MsgConditions}
			initAdmin := func(billchain.ReadOnlyKVStore) (billchain.Address, error) {
				return admin.Address(), nil
			}
			h := NewUpdateConfigurationHandler("mypkg", func() OwnedConfig { return &myconfig{} }, auth, initAdmin)
			tx := &chaintest.Tx{Msg: tc.Msg}

			cache := db.CacheWrap()
			_, err := h.Check(context.Background(), cache, tx)
			assert.IsErr(t, tc.WantCheckErr, err)
			cache.Discard()

			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.WantDeliverErr, err)

			if tc.WantConfig != nil {
				var got myconfig
				assert.Nil(t, Load(db, "mypkg", &got))
				assert.Equal(t, tc.WantConfig, &got)
			}
		})
	}
}
