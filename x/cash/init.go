package cash

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address billchain.Address `json:"address"`
	Coins   []coin.Coin       `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ billchain.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, kv billchain.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInput, "cash genesis: %s", err)
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		coins, err := coin.CombineCoins(acct.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account %d coins", i)
		}
		set := Set{
			Metadata: &billchain.Metadata{Schema: 1},
			Coins:    coins,
		}
		if _, err := bucket.Put(kv, acct.Address, &set); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
