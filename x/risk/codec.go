package risk

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers all messages of this package.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&UpdateHoldPeriodMsg{}, "risk/UpdateHoldPeriodMsg", nil)
	c.RegisterConcrete(&SetMethodBlockedMsg{}, "risk/SetMethodBlockedMsg", nil)
	c.RegisterConcrete(&UpdateVelocityLimitsMsg{}, "risk/UpdateVelocityLimitsMsg", nil)
	c.RegisterConcrete(&SetUserBlacklistMsg{}, "risk/SetUserBlacklistMsg", nil)
	c.RegisterConcrete(&SetTrustLevelMsg{}, "risk/SetTrustLevelMsg", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "risk/UpdateConfigurationMsg", nil)
}
