package dispute

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

// GenesisArbitrator is an arbitrator declared in the genesis file.
type GenesisArbitrator struct {
	Address billchain.Address `json:"address"`
	Name    string            `json:"name"`
}

// Initializer loads the dispute configuration and the arbitrator registry
// from genesis.
type Initializer struct{}

var _ billchain.Initializer = Initializer{}

func (Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, db billchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init configuration")
	}

	var arbitrators []GenesisArbitrator
	if err := opts.ReadOptions("arbitrators", &arbitrators); err != nil {
		return errors.Wrapf(errors.ErrInput, "arbitrators: %s", err)
	}
	bucket := NewArbitratorBucket()
	for i, g := range arbitrators {
		if err := g.Address.Validate(); err != nil {
			return errors.Wrapf(err, "arbitrator %d", i)
		}
		a := Arbitrator{
			Metadata: &billchain.Metadata{Schema: 1},
			Name:     g.Name,
		}
		if _, err := bucket.Put(db, g.Address, &a); err != nil {
			return errors.Wrapf(err, "arbitrator %d", i)
		}
	}
	return nil
}
