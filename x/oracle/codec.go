package oracle

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers all messages of this package.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&AddOracleMsg{}, "oracle/AddOracleMsg", nil)
	c.RegisterConcrete(&RemoveOracleMsg{}, "oracle/RemoveOracleMsg", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "oracle/UpdateConfigurationMsg", nil)
}
