package bill

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
	"github.com/iov-one/billchain/x/cash"
	"github.com/iov-one/billchain/x/payout"
	"github.com/iov-one/billchain/x/risk"
)

// Controller is the bill ledger API used by the dispute arbitration. Release
// and Refund move funds without checking the oracle and hold period gates.
type Controller interface {
	Bill(db billchain.ReadOnlyKVStore, id []byte) (*Bill, error)

	// Release pays the net amount to the payer and the fee to the fee
	// collector. The bill becomes RELEASED.
	Release(ctx billchain.Context, db billchain.KVStore, id []byte, b *Bill) error

	// Refund returns the gross amount to the maker. The bill becomes
	// REFUNDED.
	Refund(ctx billchain.Context, db billchain.KVStore, id []byte, b *Bill) error
}

// BaseController is the store backed Controller.
type BaseController struct {
	bucket orm.ModelBucket
	bank   cash.CoinMover
	risk   risk.Controller
}

var _ Controller = (*BaseController)(nil)

// NewController returns a bill controller moving funds with bank and reading
// hold periods from the risk engine.
func NewController(bank cash.CoinMover, rc risk.Controller) *BaseController {
	return &BaseController{
		bucket: NewBucket(),
		bank:   bank,
		risk:   rc,
	}
}

func (c *BaseController) Bill(db billchain.ReadOnlyKVStore, id []byte) (*Bill, error) {
	var b Bill
	if err := c.bucket.One(db, id, &b); err != nil {
		return nil, errors.Wrap(err, "cannot load bill")
	}
	return &b, nil
}

func (c *BaseController) save(db billchain.KVStore, id []byte, b *Bill) error {
	_, err := c.bucket.Put(db, id, b)
	return errors.Wrap(err, "cannot store bill")
}

// CanRelease returns nil if the bill can be released at the block time of
// the context. Otherwise the error explains which gate is closed.
func (c *BaseController) CanRelease(ctx billchain.Context, db billchain.ReadOnlyKVStore, id []byte) error {
	b, err := c.Bill(db, id)
	if err != nil {
		return err
	}
	return c.checkRelease(ctx, db, b)
}

func (c *BaseController) checkRelease(ctx billchain.Context, db billchain.ReadOnlyKVStore, b *Bill) error {
	switch b.Status {
	case StatusPaymentVerified:
	case StatusClaimed, StatusPaymentSent:
		return errors.Wrapf(ErrPaymentNotOracleVerified, "bill is %s", b.Status)
	default:
		return errors.Wrapf(errors.ErrState, "cannot release a %s bill", b.Status)
	}
	if !b.OracleVerified {
		return ErrPaymentNotOracleVerified
	}

	hold, err := c.risk.HoldPeriod(db, b.PaymentMethod)
	if err != nil {
		return errors.Wrap(err, "hold period")
	}
	now, err := billchain.BlockTime(ctx)
	if err != nil {
		return err
	}
	if releaseAt := b.VerifiedAt.Time().Add(hold); now.Before(releaseAt) {
		return errors.Wrapf(ErrHoldPeriodNotElapsed, "%s hold ends at %s", b.PaymentMethod, releaseAt.UTC())
	}
	return nil
}

func (c *BaseController) Release(ctx billchain.Context, db billchain.KVStore, id []byte, b *Bill) error {
	if len(b.Payer) == 0 {
		return errors.Wrap(errors.ErrState, "bill has no payer")
	}
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if err := payout.Disburse(db, c.bank, b.Address, b.Payer, conf.FeeCollector, *b.Fee, *b.Net); err != nil {
		return err
	}
	b.Status = StatusReleased
	b.DisputeReason = ""
	if err := c.save(db, id, b); err != nil {
		return err
	}
	billchain.GetLogger(ctx).Info("bill released",
		"bill", id, "payer", b.Payer, "net", b.Net, "fee", b.Fee)
	return nil
}

func (c *BaseController) Refund(ctx billchain.Context, db billchain.KVStore, id []byte, b *Bill) error {
	return c.refund(ctx, db, id, b, StatusRefunded)
}

func (c *BaseController) refund(ctx billchain.Context, db billchain.KVStore, id []byte, b *Bill, status Status) error {
	if err := payout.Refund(db, c.bank, b.Address, b.Maker, *b.Gross); err != nil {
		return err
	}
	b.Status = status
	b.DisputeReason = ""
	if err := c.save(db, id, b); err != nil {
		return err
	}
	billchain.GetLogger(ctx).Info("bill refunded",
		"bill", id, "maker", b.Maker, "gross", b.Gross, "status", status)
	return nil
}
