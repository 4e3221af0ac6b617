package currency

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/store"
)

func TestCreateTokenInfoHandler(t *testing.T) {
	owner := chaintest.NewCondition()
	other := chaintest.NewCondition()

	cases := map[string]struct {
		signer         billchain.Condition
		initTokens     map[string]string
		msg            billchain.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		query          string
		wantName       string
	}{
		"registering a duplicate": {
			signer:         owner,
			initTokens:     map[string]string{"DOGE": "Doge Coin"},
			msg:            &CreateMsg{Metadata: &billchain.Metadata{Schema: 1}, Ticker: "DOGE", Name: "Doge Coin"},
			wantCheckErr:   errors.ErrDuplicate,
			wantDeliverErr: errors.ErrDuplicate,
		},
		"insufficient permission": {
			signer:         other,
			msg:            &CreateMsg{Metadata: &billchain.Metadata{Schema: 1}, Ticker: "DOGE", Name: "Doge Coin"},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"invalid ticker": {
			signer:         owner,
			msg:            &CreateMsg{Metadata: &billchain.Metadata{Schema: 1}, Ticker: "doge", Name: "Doge Coin"},
			wantCheckErr:   errors.ErrCurrency,
			wantDeliverErr: errors.ErrCurrency,
		},
		"ok": {
			signer:   owner,
			msg:      &CreateMsg{Metadata: &billchain.Metadata{Schema: 1}, Ticker: "USDC", Name: "usd coin"},
			query:    "USDC",
			wantName: "usd coin",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			conf := Configuration{Metadata: &billchain.Metadata{Schema: 1}, Owner: owner.Address()}
			assert.Nil(t, gconf.Save(db, confPkg, &conf))

			bucket := NewTokenInfoBucket()
			for ticker, name := range tc.initTokens {
				assert.Nil(t, bucket.Create(db, ticker, name))
			}

			h := newCreateTokenInfoHandler(&chaintest.Auth{Signer: tc.signer})
			tx := &chaintest.Tx{Msg: tc.msg}
			ctx := context.Background()
			_, err := h.Check(ctx, db, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			_, err = h.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)

			if tc.query != "" {
				var info TokenInfo
				assert.Nil(t, bucket.One(db, []byte(tc.query), &info))
				assert.Equal(t, tc.wantName, info.Name)
				assert.Equal(t, true, bucket.IsRegistered(db, tc.query))
			}
		})
	}
}

func TestCreateMsgValidation(t *testing.T) {
	msg := CreateMsg{Ticker: "x", Name: "a"}
	err := msg.Validate()
	assert.FieldError(t, err, "Metadata", errors.ErrMetadata)
	assert.FieldError(t, err, "Ticker", errors.ErrCurrency)
	assert.FieldError(t, err, "Name", errors.ErrInput)
}
