package currency

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

const confPkg = "currency"

// Configuration declares who is allowed to register new tokens.
type Configuration struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Owner    billchain.Address   `json:"owner"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	return errs
}

func (c *Configuration) GetOwner() billchain.Address {
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func loadConf(db billchain.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load currency configuration")
	}
	return &conf, nil
}
