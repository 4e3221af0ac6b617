package oracle

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

// Verifier is the oracle API used by the bill ledger.
type Verifier interface {
	// Verify returns ErrInvalidSignature unless the attestation is signed
	// by a registered oracle for this deployment, is fresh and was never
	// consumed.
	Verify(ctx billchain.Context, db billchain.ReadOnlyKVStore, a *Attestation) error

	// Consume marks the (bill, payment reference) pair of the
	// attestation as used.
	Consume(ctx billchain.Context, db billchain.KVStore, a *Attestation) error
}

// Controller is the store backed Verifier.
type Controller struct {
	oracles  orm.ModelBucket
	consumed orm.ModelBucket
}

var _ Verifier = (*Controller)(nil)

// NewController returns a controller using the default buckets.
func NewController() *Controller {
	return &Controller{
		oracles:  NewOracleBucket(),
		consumed: NewConsumptionBucket(),
	}
}

// IsOracle returns true if the address belongs to a registered oracle.
func (c *Controller) IsOracle(db billchain.ReadOnlyKVStore, addr billchain.Address) bool {
	return c.oracles.Has(db, addr) == nil
}

// Domain returns the domain separator of this deployment.
func (c *Controller) Domain(ctx billchain.Context, db billchain.ReadOnlyKVStore) ([]byte, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return DomainSeparator(billchain.GetChainID(ctx), conf.Deployment, conf.ServiceAddress), nil
}

func (c *Controller) Verify(ctx billchain.Context, db billchain.ReadOnlyKVStore, a *Attestation) error {
	if err := a.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidSignature, "malformed attestation: %s", err)
	}

	var o Oracle
	switch err := c.oracles.One(db, a.Oracle, &o); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrInvalidSignature, "%s is not a registered oracle", a.Oracle)
	default:
		return err
	}

	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	domain := DomainSeparator(billchain.GetChainID(ctx), conf.Deployment, conf.ServiceAddress)
	raw, err := SignBytes(domain, a)
	if err != nil {
		return errors.Wrapf(ErrInvalidSignature, "sign bytes: %s", err)
	}
	if !o.PubKey.Verify(raw, a.Signature) {
		return errors.Wrap(ErrInvalidSignature, "signature does not match")
	}

	now, err := billchain.BlockTime(ctx)
	if err != nil {
		return err
	}
	age := now.Sub(a.Timestamp.Time())
	if age < 0 {
		age = -age
	}
	if window := conf.freshness(); age > window {
		return errors.Wrapf(ErrInvalidSignature, "attestation from %s is outside of the %s window", a.Timestamp, window)
	}

	if c.consumed.Has(db, consumptionKey(a.BillID, a.PaymentReference)) == nil {
		return errors.Wrap(ErrInvalidSignature, "attestation already consumed")
	}
	return nil
}

func (c *Controller) Consume(ctx billchain.Context, db billchain.KVStore, a *Attestation) error {
	key := consumptionKey(a.BillID, a.PaymentReference)
	if c.consumed.Has(db, key) == nil {
		return errors.Wrap(ErrInvalidSignature, "attestation already consumed")
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return err
	}
	record := Consumption{
		Metadata:         &billchain.Metadata{Schema: 1},
		BillID:           a.BillID,
		PaymentReference: a.PaymentReference,
		Oracle:           a.Oracle,
		ConsumedAt:       now,
	}
	if _, err := c.consumed.Put(db, key, &record); err != nil {
		return errors.Wrap(err, "save consumption")
	}
	return nil
}

// VerifyAndConsume verifies the attestation and, on success, consumes it.
func VerifyAndConsume(ctx billchain.Context, db billchain.KVStore, v Verifier, a *Attestation) error {
	if err := v.Verify(ctx, db, a); err != nil {
		return err
	}
	return v.Consume(ctx, db, a)
}
