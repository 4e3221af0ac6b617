package risk

import "github.com/iov-one/billchain/errors"

var (
	ErrPaymentMethodBlocked  = errors.Register(1000, "payment method blocked")
	ErrUserBlacklisted       = errors.Register(1001, "user blacklisted")
	ErrVelocityLimitExceeded = errors.Register(1002, "velocity limit exceeded")
	ErrUnknownPaymentMethod  = errors.Register(1003, "unknown payment method")
	ErrUnknownTrustLevel     = errors.Register(1004, "unknown trust level")
)
