package bill

import (
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/x/payout"
)

const confPkg = "bill"

const (
	// DefaultFeeBps is the platform fee of 4.4%.
	DefaultFeeBps int32 = 440

	// DefaultBillTTL is how long an unclaimed bill stays open.
	DefaultBillTTL = 7 * 24 * time.Hour
)

// Configuration of the bill ledger.
type Configuration struct {
	Metadata *billchain.Metadata `json:"metadata"`
	// Owner can pause bill creation and update this configuration.
	Owner billchain.Address `json:"owner"`
	// FeeBps is applied to bills created after it was set.
	FeeBps       int32             `json:"fee_bps"`
	FeeCollector billchain.Address `json:"fee_collector"`
	// NativeTicker is the ticker escrowed by CreateBillMsg.
	NativeTicker string                 `json:"native_ticker"`
	BillTTL      billchain.UnixDuration `json:"bill_ttl"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.FeeBps < 0 || c.FeeBps > payout.MaxBps {
		errs = errors.AppendField(errs, "FeeBps", errors.Wrapf(errors.ErrInput, "%d out of range", c.FeeBps))
	}
	errs = errors.AppendField(errs, "FeeCollector", c.FeeCollector.Validate())
	if !coin.IsCC(c.NativeTicker) {
		errs = errors.AppendField(errs, "NativeTicker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", c.NativeTicker))
	}
	if c.BillTTL < 0 {
		errs = errors.AppendField(errs, "BillTTL", errors.Wrap(errors.ErrInput, "must not be negative"))
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

// ttl returns the configured bill lifetime or the default one.
func (c *Configuration) ttl() time.Duration {
	if c.BillTTL == 0 {
		return DefaultBillTTL
	}
	return c.BillTTL.Duration()
}

func loadConf(db billchain.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load bill configuration")
	}
	return &conf, nil
}
