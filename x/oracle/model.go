package oracle

import (
	"regexp"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

var isName = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]{3,64}$`).MatchString

// Oracle is a registered attestation signer, stored under the key address.
type Oracle struct {
	Metadata *billchain.Metadata `json:"metadata"`
	PubKey   *crypto.PublicKey   `json:"pubkey"`
	Name     string              `json:"name"`
}

var _ orm.Model = (*Oracle)(nil)

func (o *Oracle) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", o.Metadata.Validate())
	errs = errors.AppendField(errs, "PubKey", o.PubKey.Validate())
	if !isName(o.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid name %q", o.Name))
	}
	return errs
}

func (o *Oracle) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(o)
}

func (o *Oracle) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, o)
}

// NewOracleBucket returns the oracle registry keyed by the oracle address.
func NewOracleBucket() orm.ModelBucket {
	return orm.NewModelBucket("oracle", &Oracle{})
}

// Consumption records that an attestation for a (bill, payment reference)
// pair was accepted. Records are never removed.
type Consumption struct {
	Metadata         *billchain.Metadata `json:"metadata"`
	BillID           []byte              `json:"bill_id"`
	PaymentReference string              `json:"payment_reference"`
	Oracle           billchain.Address   `json:"oracle"`
	ConsumedAt       billchain.UnixTime  `json:"consumed_at"`
}

var _ orm.Model = (*Consumption)(nil)

func (c *Consumption) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	if len(c.BillID) == 0 {
		errs = errors.AppendField(errs, "BillID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "PaymentReference", ValidateReference(c.PaymentReference))
	errs = errors.AppendField(errs, "Oracle", c.Oracle.Validate())
	errs = errors.AppendField(errs, "ConsumedAt", c.ConsumedAt.Validate())
	return errs
}

func (c *Consumption) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Consumption) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// consumptionKey is the bill ID prefixed with its length followed by the
// payment reference, so that no two pairs share a key.
func consumptionKey(billID []byte, ref string) []byte {
	key := make([]byte, 0, 1+len(billID)+len(ref))
	key = append(key, byte(len(billID)))
	key = append(key, billID...)
	return append(key, ref...)
}

func billIndexer(obj orm.Model) ([]byte, error) {
	c, ok := obj.(*Consumption)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return c.BillID, nil
}

// NewConsumptionBucket returns the bucket of consumed attestations, indexed
// by the bill ID.
func NewConsumptionBucket() orm.ModelBucket {
	return orm.NewModelBucket("attestation", &Consumption{},
		orm.WithIndex("bill", billIndexer, false),
	)
}
