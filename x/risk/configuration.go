package risk

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

const confPkg = "risk"

// DefaultPromotionThreshold is the number of successful trades after which a
// NEW_USER becomes TRUSTED, used when no configuration is stored.
const DefaultPromotionThreshold = 6

// Configuration of the risk engine.
type Configuration struct {
	Metadata *billchain.Metadata `json:"metadata"`
	// Owner is allowed to change the risk tables, blacklist accounts and
	// assign trust levels.
	Owner              billchain.Address `json:"owner"`
	PromotionThreshold int32             `json:"promotion_threshold"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.PromotionThreshold <= 0 {
		errs = errors.AppendField(errs, "PromotionThreshold", errors.Wrap(errors.ErrInput, "must be positive"))
	}
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
		return nil, errors.Wrap(err, "load risk configuration")
	}
	return &conf, nil
}

// promotionThreshold returns the configured threshold or the default one.
func promotionThreshold(db billchain.ReadOnlyKVStore) (int64, error) {
	conf, err := loadConf(db)
	switch {
	case err == nil:
		return int64(conf.PromotionThreshold), nil
	case errors.ErrNotFound.Is(err):
		return DefaultPromotionThreshold, nil
	default:
		return 0, err
	}
}
