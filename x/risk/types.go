package risk

import (
	"time"

	"github.com/iov-one/billchain/errors"
)

// PaymentMethod is the fiat rail a payer uses to settle a bill.
type PaymentMethod string

const (
	Crypto              PaymentMethod = "CRYPTO"
	CashDeposit         PaymentMethod = "CASH_DEPOSIT"
	IDEAL               PaymentMethod = "IDEAL"
	SEPA                PaymentMethod = "SEPA"
	BankTransfer        PaymentMethod = "BANK_TRANSFER"
	PaypalGoodsServices PaymentMethod = "PAYPAL_GOODS_SERVICES"
	CreditCard          PaymentMethod = "CREDIT_CARD"
)

// PaymentMethods lists every known payment method.
var PaymentMethods = []PaymentMethod{
	Crypto,
	CashDeposit,
	IDEAL,
	SEPA,
	BankTransfer,
	PaypalGoodsServices,
	CreditCard,
}

// Validate returns ErrUnknownPaymentMethod for values outside of the
// PaymentMethods list.
func (m PaymentMethod) Validate() error {
	for _, known := range PaymentMethods {
		if m == known {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownPaymentMethod, "%q", string(m))
}

// PermanentlyBlocked returns true for the methods that can never be
// unblocked, whatever their stored policy says.
func (m PaymentMethod) PermanentlyBlocked() bool {
	return m == PaypalGoodsServices || m == CreditCard
}

// TrustLevel selects the velocity limits applied to an account.
type TrustLevel string

const (
	NewUser  TrustLevel = "NEW_USER"
	Trusted  TrustLevel = "TRUSTED"
	Verified TrustLevel = "VERIFIED"
)

// TrustLevels lists every known trust level, from the lowest.
var TrustLevels = []TrustLevel{
	NewUser,
	Trusted,
	Verified,
}

// Validate returns ErrUnknownTrustLevel for values outside of the
// TrustLevels list.
func (l TrustLevel) Validate() error {
	for _, known := range TrustLevels {
		if l == known {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownTrustLevel, "%q", string(l))
}

const (
	day  = 24 * time.Hour
	week = 7 * day
)

type methodDefault struct {
	hold    time.Duration
	blocked bool
}

// defaultMethods is the risk table every chain starts with. Blocked methods
// carry a high chargeback risk.
var defaultMethods = map[PaymentMethod]methodDefault{
	Crypto:              {hold: 0},
	CashDeposit:         {hold: 12 * time.Hour},
	IDEAL:               {hold: 24 * time.Hour},
	SEPA:                {hold: 72 * time.Hour},
	BankTransfer:        {hold: 120 * time.Hour},
	PaypalGoodsServices: {blocked: true},
	CreditCard:          {blocked: true},
}

// defaultLimits are expressed in fiat minor units (cents).
var defaultLimits = map[TrustLevel]VelocityLimits{
	NewUser: {
		MaxTradeSize:    50000,
		MaxDailyVolume:  100000,
		MaxWeeklyVolume: 300000,
		MaxTradesPerDay: 3,
	},
	Trusted: {
		MaxTradeSize:    500000,
		MaxDailyVolume:  1000000,
		MaxWeeklyVolume: 3000000,
		MaxTradesPerDay: 10,
	},
	Verified: {
		MaxTradeSize:    2500000,
		MaxDailyVolume:  5000000,
		MaxWeeklyVolume: 15000000,
		MaxTradesPerDay: 25,
	},
}
