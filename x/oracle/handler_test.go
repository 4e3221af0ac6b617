package oracle

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/store"
)

func TestRegistryHandlers(t *testing.T) {
	owner := chaintest.NewCondition()
	stranger := chaintest.NewCondition()
	meta := &billchain.Metadata{Schema: 1}

	registered := crypto.GenPrivKeyEd25519().PublicKey()
	fresh := crypto.GenPrivKeyEd25519().PublicKey()

	cases := map[string]struct {
		signer         billchain.Condition
		msg            billchain.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		after          func(t *testing.T, db billchain.KVStore)
	}{
		"owner adds an oracle": {
			signer: owner,
			msg:    &AddOracleMsg{Metadata: meta, PubKey: fresh, Name: "bank feed"},
			after: func(t *testing.T, db billchain.KVStore) {
				var o Oracle
				assert.Nil(t, NewOracleBucket().One(db, fresh.Address(), &o))
				assert.Equal(t, "bank feed", o.Name)
			},
		},
		"stranger cannot add an oracle": {
			signer:         stranger,
			msg:            &AddOracleMsg{Metadata: meta, PubKey: fresh, Name: "bank feed"},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"oracle registered twice": {
			signer:         owner,
			msg:            &AddOracleMsg{Metadata: meta, PubKey: registered, Name: "again"},
			wantCheckErr:   errors.ErrDuplicate,
			wantDeliverErr: errors.ErrDuplicate,
		},
		"invalid name": {
			signer:         owner,
			msg:            &AddOracleMsg{Metadata: meta, PubKey: fresh, Name: "x"},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"owner removes an oracle": {
			signer: owner,
			msg:    &RemoveOracleMsg{Metadata: meta, Oracle: registered.Address()},
			after: func(t *testing.T, db billchain.KVStore) {
				assert.IsErr(t, errors.ErrNotFound, NewOracleBucket().Has(db, registered.Address()))
				assert.Equal(t, false, NewController().IsOracle(db, registered.Address()))
			},
		},
		"stranger cannot remove an oracle": {
			signer:         stranger,
			msg:            &RemoveOracleMsg{Metadata: meta, Oracle: registered.Address()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"remove an unknown oracle": {
			signer:         owner,
			msg:            &RemoveOracleMsg{Metadata: meta, Oracle: fresh.Address()},
			wantCheckErr:   errors.ErrNotFound,
			wantDeliverErr: errors.ErrNotFound,
		},
		"owner widens the freshness window": {
			signer: owner,
			msg: &UpdateConfigurationMsg{
				Metadata: meta,
				Patch:    &Configuration{FreshnessWindow: 600},
			},
			after: func(t *testing.T, db billchain.KVStore) {
				conf, err := loadConf(db)
				assert.Nil(t, err)
				assert.Equal(t, billchain.UnixDuration(600), conf.FreshnessWindow)
				assert.Equal(t, "production", conf.Deployment)
			},
		},
		"stranger cannot patch the configuration": {
			signer: stranger,
			msg: &UpdateConfigurationMsg{
				Metadata: meta,
				Patch:    &Configuration{FreshnessWindow: 600},
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			conf := Configuration{
				Metadata:       meta,
				Owner:          owner.Address(),
				Deployment:     "production",
				ServiceAddress: chaintest.NewCondition().Address(),
			}
			assert.Nil(t, gconf.Save(db, confPkg, &conf))
			o := Oracle{Metadata: meta, PubKey: registered, Name: "primary"}
			_, err := NewOracleBucket().Put(db, registered.Address(), &o)
			assert.Nil(t, err)

			rt := app{handlers: make(map[string]billchain.Handler)}
			RegisterRoutes(rt, &chaintest.Auth{Signer: tc.signer})
			h, ok := rt.handlers[tc.msg.Path()]
			if !ok {
				t.Fatalf("no handler for %s", tc.msg.Path())
			}

			ctx := context.Background()
			tx := &chaintest.Tx{Msg: tc.msg}
			cache := db.CacheWrap()
			_, err = h.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)
			if tc.after != nil {
				tc.after(t, db)
			}
		})
	}
}

type app struct {
	handlers map[string]billchain.Handler
}

func (a app) Handle(m billchain.Msg, h billchain.Handler) {
	a.handlers[m.Path()] = h
}
