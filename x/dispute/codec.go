package dispute

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers all messages of this package.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&AddArbitratorMsg{}, "dispute/AddArbitratorMsg", nil)
	c.RegisterConcrete(&RemoveArbitratorMsg{}, "dispute/RemoveArbitratorMsg", nil)
	c.RegisterConcrete(&ResolveDisputeMsg{}, "dispute/ResolveDisputeMsg", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "dispute/UpdateConfigurationMsg", nil)
}
