package risk

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

// Genesis is the content of the "risk" genesis section. Every entry
// overrides the corresponding default.
type Genesis struct {
	Methods []struct {
		Method     PaymentMethod          `json:"method"`
		HoldPeriod billchain.UnixDuration `json:"hold_period"`
		Blocked    bool                   `json:"blocked"`
	} `json:"methods"`
	Limits []struct {
		TrustLevel      TrustLevel `json:"trust_level"`
		MaxTradeSize    int64      `json:"max_trade_size"`
		MaxDailyVolume  int64      `json:"max_daily_volume"`
		MaxWeeklyVolume int64      `json:"max_weekly_volume"`
		MaxTradesPerDay int32      `json:"max_trades_per_day"`
	} `json:"limits"`
	Blacklist []billchain.Address `json:"blacklist"`
}

// Initializer seeds the risk tables and loads the risk configuration.
type Initializer struct{}

var _ billchain.Initializer = Initializer{}

// FromGenesis always stores the default risk tables, then applies the
// overrides declared in the "risk" section.
func (Initializer) FromGenesis(opts billchain.Options, params billchain.GenesisParams, db billchain.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return errors.Wrap(err, "init configuration")
	}

	engine := NewController()
	if err := engine.SeedDefaults(db); err != nil {
		return errors.Wrap(err, "seed defaults")
	}

	var gen Genesis
	if err := opts.ReadOptions("risk", &gen); err != nil {
		return errors.Wrapf(errors.ErrInput, "risk genesis: %s", err)
	}
	for _, m := range gen.Methods {
		p := MethodPolicy{
			Metadata:   &billchain.Metadata{Schema: 1},
			HoldPeriod: m.HoldPeriod,
			Blocked:    m.Blocked,
		}
		if err := m.Method.Validate(); err != nil {
			return err
		}
		if !m.Blocked && m.Method.PermanentlyBlocked() {
			return errors.Wrapf(ErrPaymentMethodBlocked, "%s cannot be unblocked", m.Method)
		}
		if _, err := engine.methods.Put(db, []byte(m.Method), &p); err != nil {
			return errors.Wrapf(err, "method %s", m.Method)
		}
	}
	for _, l := range gen.Limits {
		limits := VelocityLimits{
			Metadata:        &billchain.Metadata{Schema: 1},
			MaxTradeSize:    l.MaxTradeSize,
			MaxDailyVolume:  l.MaxDailyVolume,
			MaxWeeklyVolume: l.MaxWeeklyVolume,
			MaxTradesPerDay: l.MaxTradesPerDay,
		}
		if err := l.TrustLevel.Validate(); err != nil {
			return err
		}
		if _, err := engine.limits.Put(db, []byte(l.TrustLevel), &limits); err != nil {
			return errors.Wrapf(err, "limits %s", l.TrustLevel)
		}
	}
	for i, addr := range gen.Blacklist {
		p, err := engine.loadProfile(db, addr)
		if err != nil {
			return errors.Wrapf(err, "blacklist %d", i)
		}
		p.IsBlacklisted = true
		if err := engine.saveProfile(db, addr, p); err != nil {
			return err
		}
	}
	return nil
}
