package currency

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesisKey(t *testing.T) {
	Convey("Given a genesis with currencies", t, func() {
		const genesis = `
			{
				"conf": {
					"currency": {
						"metadata": {"schema": 1},
						"owner": "0102030405060708090021222324252627282930"
					}
				},
				"currencies": [
					{"ticker": "MCR", "name": "my currency"},
					{"ticker": "DOGE", "name": "Doge Coin"}
				]
			}
		`
		var opts billchain.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		var ini Initializer
		So(ini.FromGenesis(opts, billchain.GenesisParams{}, db), ShouldBeNil)

		Convey("tokens are registered", func() {
			bucket := NewTokenInfoBucket()
			var info TokenInfo
			So(bucket.One(db, []byte("MCR"), &info), ShouldBeNil)
			So(info.Name, ShouldEqual, "my currency")
			So(bucket.IsRegistered(db, "DOGE"), ShouldBeTrue)
			So(bucket.IsRegistered(db, "ETH"), ShouldBeFalse)
		})

		Convey("configuration is stored", func() {
			var conf Configuration
			So(gconf.Load(db, confPkg, &conf), ShouldBeNil)
			So(conf.Owner.String(), ShouldEqual, "0102030405060708090021222324252627282930")
		})
	})

	Convey("Duplicated tickers are rejected", t, func() {
		opts := billchain.Options{"currencies": []byte(`[
			{"ticker": "MCR", "name": "my currency"},
			{"ticker": "MCR", "name": "my currency"}
		]`)}
		var ini Initializer
		err := ini.FromGenesis(opts, billchain.GenesisParams{}, store.MemStore())
		So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
	})
}
