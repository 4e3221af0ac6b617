package oracle

import (
	"encoding/hex"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

// GenesisOracle is an oracle declared in the genesis file. The public key is
// hex encoded.
type GenesisOracle struct {
	PubKey string `json:"pubkey"`
	Name   string `json:"name"`
}

// Initializer loads the oracle configuration and registry from genesis.
type Initializer struct{}

var _ billchain.Initializer = Initializer{}

func (Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, db billchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init configuration")
	}

	var oracles []GenesisOracle
	if err := opts.ReadOptions("oracles", &oracles); err != nil {
		return errors.Wrapf(errors.ErrInput, "oracles: %s", err)
	}
	bucket := NewOracleBucket()
	for i, g := range oracles {
		raw, err := hex.DecodeString(g.PubKey)
		if err != nil {
			return errors.Wrapf(errors.ErrInput, "oracle %d: public key is not hex", i)
		}
		o := Oracle{
			Metadata: &billchain.Metadata{Schema: 1},
			PubKey:   &crypto.PublicKey{Ed25519: raw},
			Name:     g.Name,
		}
		if _, err := bucket.Put(db, o.PubKey.Address(), &o); err != nil {
			return errors.Wrapf(err, "oracle %d", i)
		}
	}
	return nil
}
