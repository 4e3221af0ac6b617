package risk

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

// MethodPolicy is the risk classification of a single payment method. It is
// stored under the method name.
type MethodPolicy struct {
	Metadata   *billchain.Metadata    `json:"metadata"`
	HoldPeriod billchain.UnixDuration `json:"hold_period"`
	Blocked    bool                   `json:"blocked"`
}

var _ orm.Model = (*MethodPolicy)(nil)

func (p *MethodPolicy) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	if p.HoldPeriod < 0 {
		errs = errors.AppendField(errs, "HoldPeriod", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	return errs
}

func (p *MethodPolicy) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *MethodPolicy) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// NewMethodPolicyBucket returns a bucket of payment method policies keyed by
// the method name.
func NewMethodPolicyBucket() orm.ModelBucket {
	return orm.NewModelBucket("methodpolicy", &MethodPolicy{})
}

// VelocityLimits are the trading caps of a single trust level. All volumes
// are fiat minor units.
type VelocityLimits struct {
	Metadata        *billchain.Metadata `json:"metadata"`
	MaxTradeSize    int64               `json:"max_trade_size"`
	MaxDailyVolume  int64               `json:"max_daily_volume"`
	MaxWeeklyVolume int64               `json:"max_weekly_volume"`
	MaxTradesPerDay int32               `json:"max_trades_per_day"`
}

var _ orm.Model = (*VelocityLimits)(nil)

func (l *VelocityLimits) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", l.Metadata.Validate())
	if l.MaxTradeSize <= 0 {
		errs = errors.AppendField(errs, "MaxTradeSize", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if l.MaxDailyVolume < l.MaxTradeSize {
		errs = errors.AppendField(errs, "MaxDailyVolume", errors.Wrap(errors.ErrAmount, "must not be less than the trade size"))
	}
	if l.MaxWeeklyVolume < l.MaxDailyVolume {
		errs = errors.AppendField(errs, "MaxWeeklyVolume", errors.Wrap(errors.ErrAmount, "must not be less than the daily volume"))
	}
	if l.MaxTradesPerDay <= 0 {
		errs = errors.AppendField(errs, "MaxTradesPerDay", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}

func (l *VelocityLimits) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(l)
}

func (l *VelocityLimits) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, l)
}

// NewVelocityLimitsBucket returns a bucket of velocity limits keyed by the
// trust level name.
func NewVelocityLimitsBucket() orm.ModelBucket {
	return orm.NewModelBucket("velocitylimit", &VelocityLimits{})
}

// UserRiskProfile aggregates the trading history of a single account.
type UserRiskProfile struct {
	Metadata         *billchain.Metadata `json:"metadata"`
	TrustLevel       TrustLevel          `json:"trust_level"`
	SuccessfulTrades int64               `json:"successful_trades"`
	DailyVolume      int64               `json:"daily_volume"`
	WeeklyVolume     int64               `json:"weekly_volume"`
	TradesToday      int32               `json:"trades_today"`
	DayStart         billchain.UnixTime  `json:"day_start"`
	WeekStart        billchain.UnixTime  `json:"week_start"`
	IsBlacklisted    bool                `json:"is_blacklisted"`
}

var _ orm.Model = (*UserRiskProfile)(nil)

func (p *UserRiskProfile) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", p.Metadata.Validate())
	errs = errors.AppendField(errs, "TrustLevel", p.TrustLevel.Validate())
	if p.SuccessfulTrades < 0 {
		errs = errors.AppendField(errs, "SuccessfulTrades", errors.Wrap(errors.ErrInput, "negative"))
	}
	if p.DailyVolume < 0 || p.WeeklyVolume < 0 || p.TradesToday < 0 {
		errs = errors.Append(errs, errors.Wrap(errors.ErrModel, "negative counter"))
	}
	return errs
}

func (p *UserRiskProfile) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *UserRiskProfile) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// newProfile returns the profile of an account that was never seen.
func newProfile() *UserRiskProfile {
	return &UserRiskProfile{
		Metadata:   &billchain.Metadata{Schema: 1},
		TrustLevel: NewUser,
	}
}

// roll resets every counter whose window elapsed at given time. A window
// starts with the first trade recorded after the previous one closed.
func (p *UserRiskProfile) roll(now billchain.UnixTime) {
	if p.DayStart.IsZero() || now.Sub(p.DayStart) >= day {
		p.DayStart = now
		p.DailyVolume = 0
		p.TradesToday = 0
	}
	if p.WeekStart.IsZero() || now.Sub(p.WeekStart) >= week {
		p.WeekStart = now
		p.WeeklyVolume = 0
	}
}

// exceeds returns a descriptive error if recording a trade of given size
// would break any of the limits.
func (p *UserRiskProfile) exceeds(l *VelocityLimits, fiatAmount int64) error {
	switch {
	case fiatAmount > l.MaxTradeSize:
		return errors.Wrapf(ErrVelocityLimitExceeded, "trade size %d above %d", fiatAmount, l.MaxTradeSize)
	case p.DailyVolume+fiatAmount > l.MaxDailyVolume:
		return errors.Wrapf(ErrVelocityLimitExceeded, "daily volume %d above %d", p.DailyVolume+fiatAmount, l.MaxDailyVolume)
	case p.WeeklyVolume+fiatAmount > l.MaxWeeklyVolume:
		return errors.Wrapf(ErrVelocityLimitExceeded, "weekly volume %d above %d", p.WeeklyVolume+fiatAmount, l.MaxWeeklyVolume)
	case p.TradesToday+1 > l.MaxTradesPerDay:
		return errors.Wrapf(ErrVelocityLimitExceeded, "more than %d trades a day", l.MaxTradesPerDay)
	}
	return nil
}

func trustLevelIndexer(obj orm.Model) ([]byte, error) {
	p, ok := obj.(*UserRiskProfile)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return []byte(p.TrustLevel), nil
}

// NewProfileBucket returns a bucket of risk profiles keyed by the account
// address and indexed by the trust level.
func NewProfileBucket() orm.ModelBucket {
	return orm.NewModelBucket("riskprofile", &UserRiskProfile{},
		orm.WithIndex("trustlevel", trustLevelIndexer, false),
	)
}

