package bill

import "github.com/iov-one/billchain/errors"

var (
	ErrNotBillPayer             = errors.Register(1100, "not the bill payer")
	ErrBillAlreadyClaimed       = errors.Register(1101, "bill already claimed")
	ErrPaymentReferenceUsed     = errors.Register(1102, "payment reference used")
	ErrPaymentNotOracleVerified = errors.Register(1103, "payment not oracle verified")
	ErrHoldPeriodNotElapsed     = errors.Register(1104, "hold period not elapsed")
	ErrTokenNotSupported        = errors.Register(1105, "token not supported")
	ErrPaused                   = errors.Register(1106, "bill creation paused")
)
