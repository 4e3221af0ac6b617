package currency

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ billchain.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial token info from genesis and save it to the
// database. The registry owner is read from the "conf" section.
func (*Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, kv billchain.KVStore) error {
	var tokens []struct {
		Ticker string `json:"ticker"`
		Name   string `json:"name"`
	}
	if err := opts.ReadOptions("currencies", &tokens); err != nil {
		return errors.Wrapf(errors.ErrInput, "currencies: %s", err)
	}

	bucket := NewTokenInfoBucket()
	for _, t := range tokens {
		if err := bucket.Create(kv, t.Ticker, t.Name); err != nil {
			return errors.Wrapf(err, "token %s", t.Ticker)
		}
	}

	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "init configuration")
	}
}
