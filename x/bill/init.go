package bill

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

// Genesis is the "bill" section of the genesis file.
type Genesis struct {
	Paused bool `json:"paused"`
}

// Initializer loads the bill configuration and the pause state from genesis.
type Initializer struct{}

var _ billchain.Initializer = Initializer{}

func (Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, db billchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init configuration")
	}

	var g Genesis
	if err := opts.ReadOptions("bill", &g); err != nil {
		return errors.Wrapf(errors.ErrInput, "bill: %s", err)
	}
	if g.Paused {
		return SetPaused(db, true)
	}
	return nil
}
