package risk

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

var _ billchain.Msg = (*UpdateHoldPeriodMsg)(nil)

// UpdateHoldPeriodMsg changes the hold period of a payment method.
type UpdateHoldPeriodMsg struct {
	Metadata   *billchain.Metadata    `json:"metadata"`
	Method     PaymentMethod          `json:"method"`
	HoldPeriod billchain.UnixDuration `json:"hold_period"`
}

func (UpdateHoldPeriodMsg) Path() string {
	return "risk/update_hold_period"
}

func (m *UpdateHoldPeriodMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Method", m.Method.Validate())
	if m.HoldPeriod < 0 {
		errs = errors.AppendField(errs, "HoldPeriod", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	return errs
}

func (m *UpdateHoldPeriodMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateHoldPeriodMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*SetMethodBlockedMsg)(nil)

// SetMethodBlockedMsg blocks or unblocks a payment method.
type SetMethodBlockedMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Method   PaymentMethod       `json:"method"`
	Blocked  bool                `json:"blocked"`
}

func (SetMethodBlockedMsg) Path() string {
	return "risk/set_method_blocked"
}

func (m *SetMethodBlockedMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Method", m.Method.Validate())
	return errs
}

func (m *SetMethodBlockedMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetMethodBlockedMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateVelocityLimitsMsg)(nil)

// UpdateVelocityLimitsMsg replaces the limits of a trust level.
type UpdateVelocityLimitsMsg struct {
	Metadata        *billchain.Metadata `json:"metadata"`
	TrustLevel      TrustLevel          `json:"trust_level"`
	MaxTradeSize    int64               `json:"max_trade_size"`
	MaxDailyVolume  int64               `json:"max_daily_volume"`
	MaxWeeklyVolume int64               `json:"max_weekly_volume"`
	MaxTradesPerDay int32               `json:"max_trades_per_day"`
}

func (UpdateVelocityLimitsMsg) Path() string {
	return "risk/update_velocity_limits"
}

func (m *UpdateVelocityLimitsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "TrustLevel", m.TrustLevel.Validate())
	l := m.limits()
	errs = errors.Append(errs, l.Validate())
	return errs
}

func (m *UpdateVelocityLimitsMsg) limits() *VelocityLimits {
	return &VelocityLimits{
		Metadata:        &billchain.Metadata{Schema: 1},
		MaxTradeSize:    m.MaxTradeSize,
		MaxDailyVolume:  m.MaxDailyVolume,
		MaxWeeklyVolume: m.MaxWeeklyVolume,
		MaxTradesPerDay: m.MaxTradesPerDay,
	}
}

func (m *UpdateVelocityLimitsMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateVelocityLimitsMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*SetUserBlacklistMsg)(nil)

// SetUserBlacklistMsg bans an account from creating bills, or lifts the ban.
type SetUserBlacklistMsg struct {
	Metadata    *billchain.Metadata `json:"metadata"`
	User        billchain.Address   `json:"user"`
	Blacklisted bool                `json:"blacklisted"`
}

func (SetUserBlacklistMsg) Path() string {
	return "risk/set_user_blacklist"
}

func (m *SetUserBlacklistMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "User", m.User.Validate())
	return errs
}

func (m *SetUserBlacklistMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetUserBlacklistMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*SetTrustLevelMsg)(nil)

// SetTrustLevelMsg assigns a trust level to an account.
type SetTrustLevelMsg struct {
	Metadata   *billchain.Metadata `json:"metadata"`
	User       billchain.Address   `json:"user"`
	TrustLevel TrustLevel          `json:"trust_level"`
}

func (SetTrustLevelMsg) Path() string {
	return "risk/set_trust_level"
}

func (m *SetTrustLevelMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "User", m.User.Validate())
	errs = errors.AppendField(errs, "TrustLevel", m.TrustLevel.Validate())
	return errs
}

func (m *SetTrustLevelMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetTrustLevelMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the risk configuration.
type UpdateConfigurationMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "risk/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.PromotionThreshold < 0 {
		return errors.Wrap(errors.ErrInput, "promotion threshold must not be negative")
	}
	if m.Patch.Owner != nil {
		return errors.Wrap(m.Patch.Owner.Validate(), "owner")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
