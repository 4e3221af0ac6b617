package oracle

import (
	"bytes"
	"crypto/sha256"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
)

const maxReferenceLength = 128

// Attestation is an oracle statement that the payer of a bill sent the fiat
// amount using the given payment reference.
type Attestation struct {
	BillID           []byte             `json:"bill_id"`
	Payer            billchain.Address  `json:"payer"`
	Maker            billchain.Address  `json:"maker"`
	FiatAmount       int64              `json:"fiat_amount"`
	PaymentReference string             `json:"payment_reference"`
	Timestamp        billchain.UnixTime `json:"timestamp"`
	// Oracle is the address of the signing key. The registry provides
	// the key itself.
	Oracle    billchain.Address `json:"oracle"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate checks the attestation shape. It does not verify the signature.
func (a *Attestation) Validate() error {
	var errs error
	if len(a.BillID) == 0 {
		errs = errors.AppendField(errs, "BillID", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Payer", a.Payer.Validate())
	errs = errors.AppendField(errs, "Maker", a.Maker.Validate())
	if a.FiatAmount <= 0 {
		errs = errors.AppendField(errs, "FiatAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	if err := ValidateReference(a.PaymentReference); err != nil {
		errs = errors.AppendField(errs, "PaymentReference", err)
	}
	errs = errors.AppendField(errs, "Timestamp", a.Timestamp.Validate())
	errs = errors.AppendField(errs, "Oracle", a.Oracle.Validate())
	if a.Signature == nil {
		errs = errors.AppendField(errs, "Signature", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Signature", a.Signature.Validate())
	}
	return errs
}

// ValidateReference checks the format of a payment reference.
func ValidateReference(ref string) error {
	if ref == "" {
		return errors.Wrap(errors.ErrEmpty, "payment reference")
	}
	if len(ref) > maxReferenceLength {
		return errors.Wrap(errors.ErrInput, "payment reference too long")
	}
	return nil
}

func (a *Attestation) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Attestation) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

// DomainSeparator binds signatures to a single deployment of the escrow
// service on a single chain.
func DomainSeparator(chainID, deployment string, serviceAddress billchain.Address) []byte {
	var b bytes.Buffer
	b.WriteString(chainID)
	b.WriteByte('|')
	b.WriteString(deployment)
	b.WriteByte('|')
	b.Write(serviceAddress)
	sum := sha256.Sum256(b.Bytes())
	return sum[:]
}

// signDoc is the document an oracle signs.
type signDoc struct {
	Domain           []byte
	BillID           []byte
	Payer            []byte
	Maker            []byte
	FiatAmount       int64
	PaymentReference string
	Timestamp        int64
}

// SignBytes returns the bytes an oracle signs for given attestation.
func SignBytes(domain []byte, a *Attestation) ([]byte, error) {
	doc := signDoc{
		Domain:           domain,
		BillID:           a.BillID,
		Payer:            a.Payer,
		Maker:            a.Maker,
		FiatAmount:       a.FiatAmount,
		PaymentReference: a.PaymentReference,
		Timestamp:        int64(a.Timestamp),
	}
	raw, err := cdc.MarshalBinaryBare(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot serialize attestation")
	}
	return raw, nil
}

// Sign sets the oracle address and the signature of the attestation.
func Sign(signer crypto.Signer, domain []byte, a *Attestation) error {
	a.Oracle = signer.PublicKey().Address()
	raw, err := SignBytes(domain, a)
	if err != nil {
		return err
	}
	sig, err := signer.Sign(raw)
	if err != nil {
		return errors.Wrap(err, "sign attestation")
	}
	a.Signature = sig
	return nil
}
