package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	. "github.com/smartystreets/goconvey/convey"
	amino "github.com/tendermint/go-amino"
)

var testCdc = amino.NewCodec()

type myconfig struct {
	Owner billchain.Address `json:"owner"`
	Num   int64             `json:"num"`
	Str   string            `json:"str"`
	Cn    coin.Coin         `json:"cn"`
}

func (c *myconfig) GetOwner() billchain.Address { return c.Owner }

func (c *myconfig) Marshal() ([]byte, error) { return testCdc.MarshalBinaryBare(c) }

func (c *myconfig) Unmarshal(raw []byte) error { return testCdc.UnmarshalBinaryBare(raw, c) }

func (c *myconfig) Validate() error {
	if c.Num < 0 {
		return errors.Wrap(errors.ErrInput, "negative num")
	}
	return nil
}

type myconfigMsg struct {
	Patch *myconfig
}

func (*myconfigMsg) Path() string { return "test/update_config" }

func (m *myconfigMsg) Marshal() ([]byte, error) { return testCdc.MarshalBinaryBare(m) }

func (m *myconfigMsg) Unmarshal(raw []byte) error { return testCdc.UnmarshalBinaryBare(raw, m) }

func (m *myconfigMsg) Validate() error {
	if m.Patch == nil {
		return nil
	}
	return m.Patch.Validate()
}

func TestSaveLoad(t *testing.T) {
	Convey("Given an empty store", t, func() {
		db := store.MemStore()

		Convey("Loading a missing configuration fails with not found", func() {
			var c myconfig
			So(errors.ErrNotFound.Is(Load(db, "mypkg", &c)), ShouldBeTrue)
		})

		Convey("An invalid configuration is not saved", func() {
			err := Save(db, "mypkg", &myconfig{Num: -1})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
			So(db.Has([]byte("_c:mypkg")), ShouldBeFalse)
		})

		Convey("A saved configuration can be loaded", func() {
			want := &myconfig{Num: 7, Str: "x", Cn: coin.NewCoin(1, 2, "ETH")}
			So(Save(db, "mypkg", want), ShouldBeNil)
			var got myconfig
			So(Load(db, "mypkg", &got), ShouldBeNil)
			So(&got, ShouldResemble, want)
		})
	})
}

func TestInitConfig(t *testing.T) {
	Convey("Given a genesis with a conf section", t, func() {
		db := store.MemStore()
		genesis := `{
			"conf": {
				"mypkg": {"num": 12, "str": "hello", "cn": "1.5 ETH"},
				"broken": {"num": -3}
			}
		}`
		var opts billchain.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		Convey("the package configuration is stored", func() {
			So(InitConfig(db, opts, "mypkg", &myconfig{}), ShouldBeNil)
			var c myconfig
			So(Load(db, "mypkg", &c), ShouldBeNil)
			So(c.Num, ShouldEqual, 12)
			So(c.Cn, ShouldResemble, coin.NewCoin(1, 500000000, "ETH"))
		})

		Convey("a missing package fails", func() {
			err := InitConfig(db, opts, "other", &myconfig{})
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})

		Convey("an invalid configuration fails", func() {
			err := InitConfig(db, opts, "broken", &myconfig{})
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}
