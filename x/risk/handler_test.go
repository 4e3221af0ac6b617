package risk

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

func TestAdminHandlers(t *testing.T) {
	owner := chaintest.NewCondition()
	stranger := chaintest.NewCondition()
	user := chaintest.NewCondition().Address()
	meta := &billchain.Metadata{Schema: 1}

	cases := map[string]struct {
		signer         billchain.Condition
		msg            billchain.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		after          func(t *testing.T, db billchain.KVStore, e *Engine)
	}{
		"owner updates a hold period": {
			signer: owner,
			msg:    &UpdateHoldPeriodMsg{Metadata: meta, Method: SEPA, HoldPeriod: billchain.AsUnixDuration(48 * time.Hour)},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				hold, err := e.HoldPeriod(db, SEPA)
				assert.Nil(t, err)
				assert.Equal(t, 48*time.Hour, hold)
			},
		},
		"stranger cannot update a hold period": {
			signer:         stranger,
			msg:            &UpdateHoldPeriodMsg{Metadata: meta, Method: SEPA, HoldPeriod: 1},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"unknown method": {
			signer:         owner,
			msg:            &SetMethodBlockedMsg{Metadata: meta, Method: "CHEQUE", Blocked: true},
			wantCheckErr:   ErrUnknownPaymentMethod,
			wantDeliverErr: ErrUnknownPaymentMethod,
		},
		"owner blocks and unblocks a method": {
			signer: owner,
			msg:    &SetMethodBlockedMsg{Metadata: meta, Method: SEPA, Blocked: true},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				assert.IsErr(t, ErrPaymentMethodBlocked, e.CheckMethod(db, SEPA))
			},
		},
		"credit cards cannot be unblocked": {
			signer:         owner,
			msg:            &SetMethodBlockedMsg{Metadata: meta, Method: CreditCard, Blocked: false},
			wantCheckErr:   ErrPaymentMethodBlocked,
			wantDeliverErr: ErrPaymentMethodBlocked,
		},
		"paypal goods and services cannot be unblocked": {
			signer:         owner,
			msg:            &SetMethodBlockedMsg{Metadata: meta, Method: PaypalGoodsServices, Blocked: false},
			wantCheckErr:   ErrPaymentMethodBlocked,
			wantDeliverErr: ErrPaymentMethodBlocked,
		},
		"owner changes velocity limits": {
			signer: owner,
			msg: &UpdateVelocityLimitsMsg{
				Metadata:        meta,
				TrustLevel:      NewUser,
				MaxTradeSize:    100,
				MaxDailyVolume:  100,
				MaxWeeklyVolume: 100,
				MaxTradesPerDay: 1,
			},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				l, err := e.Limits(db, NewUser)
				assert.Nil(t, err)
				assert.Equal(t, int64(100), l.MaxTradeSize)
			},
		},
		"inconsistent velocity limits": {
			signer: owner,
			msg: &UpdateVelocityLimitsMsg{
				Metadata:        meta,
				TrustLevel:      NewUser,
				MaxTradeSize:    100,
				MaxDailyVolume:  50,
				MaxWeeklyVolume: 100,
				MaxTradesPerDay: 1,
			},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
		},
		"owner blacklists a user": {
			signer: owner,
			msg:    &SetUserBlacklistMsg{Metadata: meta, User: user, Blacklisted: true},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				ok, err := e.IsBlacklisted(db, user)
				assert.Nil(t, err)
				assert.Equal(t, true, ok)
			},
		},
		"stranger cannot blacklist": {
			signer:         stranger,
			msg:            &SetUserBlacklistMsg{Metadata: meta, User: user, Blacklisted: true},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"owner assigns a trust level": {
			signer: owner,
			msg:    &SetTrustLevelMsg{Metadata: meta, User: user, TrustLevel: Verified},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				p, err := e.loadProfile(db, user)
				assert.Nil(t, err)
				assert.Equal(t, Verified, p.TrustLevel)
			},
		},
		"unknown trust level": {
			signer:         owner,
			msg:            &SetTrustLevelMsg{Metadata: meta, User: user, TrustLevel: "GOLD"},
			wantCheckErr:   ErrUnknownTrustLevel,
			wantDeliverErr: ErrUnknownTrustLevel,
		},
		"owner patches the configuration": {
			signer: owner,
			msg:    &UpdateConfigurationMsg{Metadata: meta, Patch: &Configuration{PromotionThreshold: 10}},
			after: func(t *testing.T, db billchain.KVStore, e *Engine) {
				threshold, err := promotionThreshold(db)
				assert.Nil(t, err)
				assert.Equal(t, int64(10), threshold)
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db, engine := seeded(t)
			conf := Configuration{Metadata: meta, Owner: owner.Address(), PromotionThreshold: 6}
			assert.Nil(t, gconf.Save(db, confPkg, &conf))

			rt := app{handlers: make(map[string]billchain.Handler)}
			RegisterRoutes(rt, &chaintest.Auth{Signer: tc.signer}, engine)
			h, ok := rt.handlers[tc.msg.Path()]
			if !ok {
				t.Fatalf("no handler for %s", tc.msg.Path())
			}

			ctx := context.Background()
			tx := &chaintest.Tx{Msg: tc.msg}
			cache := db.CacheWrap()
			_, err := h.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)
			if tc.after != nil {
				tc.after(t, db, engine)
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
