package cash

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers all messages of this package with the given
// transaction codec.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&SendMsg{}, "cash/SendMsg", nil)
}
