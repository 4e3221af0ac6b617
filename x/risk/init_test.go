package risk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesis(t *testing.T) {
	Convey("Given an empty genesis", t, func() {
		db := store.MemStore()
		So(Initializer{}.FromGenesis(billchain.Options{}, billchain.GenesisParams{}, db), ShouldBeNil)
		engine := NewController()

		Convey("the default tables are seeded", func() {
			hold, err := engine.HoldPeriod(db, BankTransfer)
			So(err, ShouldBeNil)
			So(hold, ShouldEqual, 120*time.Hour)

			blocked, err := engine.IsMethodBlocked(db, CreditCard)
			So(err, ShouldBeNil)
			So(blocked, ShouldBeTrue)

			l, err := engine.Limits(db, NewUser)
			So(err, ShouldBeNil)
			So(l.MaxTradeSize, ShouldEqual, 50000)
			So(l.MaxTradesPerDay, ShouldEqual, 3)
		})

		Convey("the default promotion threshold applies", func() {
			threshold, err := promotionThreshold(db)
			So(err, ShouldBeNil)
			So(threshold, ShouldEqual, DefaultPromotionThreshold)
		})
	})

	Convey("Given a genesis with overrides", t, func() {
		const genesis = `{
			"conf": {
				"risk": {
					"metadata": {"schema": 1},
					"owner": "0102030405060708090021222324252627282930",
					"promotion_threshold": 3
				}
			},
			"risk": {
				"methods": [
					{"method": "CASH_DEPOSIT", "hold_period": "1h"},
					{"method": "SEPA", "hold_period": 0, "blocked": true}
				],
				"limits": [
					{"trust_level": "NEW_USER", "max_trade_size": 1000, "max_daily_volume": 2000, "max_weekly_volume": 5000, "max_trades_per_day": 2}
				],
				"blacklist": ["1111111111111111111111111111111111111111"]
			}
		}`
		var opts billchain.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
		db := store.MemStore()
		So(Initializer{}.FromGenesis(opts, billchain.GenesisParams{}, db), ShouldBeNil)
		engine := NewController()

		Convey("overrides replace the defaults", func() {
			hold, err := engine.HoldPeriod(db, CashDeposit)
			So(err, ShouldBeNil)
			So(hold, ShouldEqual, time.Hour)
			So(engine.CheckMethod(db, SEPA), ShouldNotBeNil)

			l, err := engine.Limits(db, NewUser)
			So(err, ShouldBeNil)
			So(l.MaxTradeSize, ShouldEqual, 1000)

			hold, err = engine.HoldPeriod(db, IDEAL)
			So(err, ShouldBeNil)
			So(hold, ShouldEqual, 24*time.Hour)
		})

		Convey("configuration and blacklist are loaded", func() {
			threshold, err := promotionThreshold(db)
			So(err, ShouldBeNil)
			So(threshold, ShouldEqual, 3)

			addr, err := billchain.ParseAddress("1111111111111111111111111111111111111111")
			So(err, ShouldBeNil)
			blacklisted, err := engine.IsBlacklisted(db, addr)
			So(err, ShouldBeNil)
			So(blacklisted, ShouldBeTrue)
		})

		Convey("an unknown method is rejected", func() {
			opts := billchain.Options{"risk": []byte(`{"methods": [{"method": "CHEQUE"}]}`)}
			err := Initializer{}.FromGenesis(opts, billchain.GenesisParams{}, store.MemStore())
			So(ErrUnknownPaymentMethod.Is(err), ShouldBeTrue)
		})

		Convey("credit cards cannot be unblocked", func() {
			opts := billchain.Options{"risk": []byte(`{"methods": [{"method": "CREDIT_CARD", "hold_period": "1h"}]}`)}
			err := Initializer{}.FromGenesis(opts, billchain.GenesisParams{}, store.MemStore())
			So(ErrPaymentMethodBlocked.Is(err), ShouldBeTrue)
		})
	})
}
