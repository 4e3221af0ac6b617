package bill

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// RegisterCodec registers all messages of this package.
func RegisterCodec(c *amino.Codec) {
	c.RegisterConcrete(&CreateBillMsg{}, "bill/CreateBillMsg", nil)
	c.RegisterConcrete(&CreateBillWithTokenMsg{}, "bill/CreateBillWithTokenMsg", nil)
	c.RegisterConcrete(&ClaimBillMsg{}, "bill/ClaimBillMsg", nil)
	c.RegisterConcrete(&ConfirmPaymentSentMsg{}, "bill/ConfirmPaymentSentMsg", nil)
	c.RegisterConcrete(&VerifyPaymentMsg{}, "bill/VerifyPaymentMsg", nil)
	c.RegisterConcrete(&MakerConfirmPaymentMsg{}, "bill/MakerConfirmPaymentMsg", nil)
	c.RegisterConcrete(&ReleaseFundsMsg{}, "bill/ReleaseFundsMsg", nil)
	c.RegisterConcrete(&AutoReleaseMsg{}, "bill/AutoReleaseMsg", nil)
	c.RegisterConcrete(&CancelBillMsg{}, "bill/CancelBillMsg", nil)
	c.RegisterConcrete(&RefundExpiredBillMsg{}, "bill/RefundExpiredBillMsg", nil)
	c.RegisterConcrete(&RaiseDisputeMsg{}, "bill/RaiseDisputeMsg", nil)
	c.RegisterConcrete(&PayerDisputeMsg{}, "bill/PayerDisputeMsg", nil)
	c.RegisterConcrete(&PauseMsg{}, "bill/PauseMsg", nil)
	c.RegisterConcrete(&UpdateConfigurationMsg{}, "bill/UpdateConfigurationMsg", nil)
}
