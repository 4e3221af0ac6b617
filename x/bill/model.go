package bill

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
)

// Status is the lifecycle state of a bill.
type Status string

const (
	StatusCreated         Status = "CREATED"
	StatusFunded          Status = "FUNDED"
	StatusClaimed         Status = "CLAIMED"
	StatusPaymentSent     Status = "PAYMENT_SENT"
	StatusPaymentVerified Status = "PAYMENT_VERIFIED"
	StatusReleased        Status = "RELEASED"
	StatusDisputed        Status = "DISPUTED"
	StatusCancelled       Status = "CANCELLED"
	StatusRefunded        Status = "REFUNDED"
)

var statuses = []Status{
	StatusCreated,
	StatusFunded,
	StatusClaimed,
	StatusPaymentSent,
	StatusPaymentVerified,
	StatusReleased,
	StatusDisputed,
	StatusCancelled,
	StatusRefunded,
}

func (s Status) Validate() error {
	for _, known := range statuses {
		if s == known {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrState, "unknown status %q", string(s))
}

// IsTerminal returns true for states a bill never leaves.
func (s Status) IsTerminal() bool {
	return s == StatusReleased || s == StatusCancelled || s == StatusRefunded
}

// in returns true if s is one of given states.
func (s Status) in(states ...Status) bool {
	for _, st := range states {
		if s == st {
			return true
		}
	}
	return false
}

// NativeAsset is the asset name of bills escrowing the native coin.
const NativeAsset = "native"

const maxDisputeReasonLength = 512

// Bill is a single escrowed trade. Amounts and the fee rate are fixed at
// creation.
type Bill struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Maker    billchain.Address   `json:"maker"`
	// Payer is empty until the bill is claimed.
	Payer billchain.Address `json:"payer,omitempty"`
	// Asset is NativeAsset or the ticker of a registered token.
	Asset            string              `json:"asset"`
	Gross            *coin.Coin          `json:"gross"`
	Fee              *coin.Coin          `json:"fee"`
	Net              *coin.Coin          `json:"net"`
	FeeBps           int32               `json:"fee_bps"`
	FiatAmount       int64               `json:"fiat_amount"`
	PaymentMethod    risk.PaymentMethod  `json:"payment_method"`
	Status           Status              `json:"status"`
	PaymentReference string              `json:"payment_reference,omitempty"`
	OracleVerified   bool                `json:"oracle_verified"`
	MakerConfirmed   bool                `json:"maker_confirmed"`
	PayerConfirmed   bool                `json:"payer_confirmed"`
	CreatedAt        billchain.UnixTime  `json:"created_at"`
	ClaimedAt        billchain.UnixTime  `json:"claimed_at,omitempty"`
	PaymentSentAt    billchain.UnixTime  `json:"payment_sent_at,omitempty"`
	VerifiedAt       billchain.UnixTime  `json:"verified_at,omitempty"`
	ExpiresAt        billchain.UnixTime  `json:"expires_at"`
	DisputeReason    string              `json:"dispute_reason,omitempty"`
	DisputedBy       billchain.Address   `json:"disputed_by,omitempty"`
	// Address is the escrow account holding the gross amount.
	Address billchain.Address `json:"address"`
}

var _ orm.Model = (*Bill)(nil)

func (b *Bill) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", b.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", b.Maker.Validate())
	if len(b.Payer) != 0 {
		errs = errors.AppendField(errs, "Payer", b.Payer.Validate())
	}
	if b.Asset == "" {
		errs = errors.AppendField(errs, "Asset", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Amounts", b.validateAmounts())
	if b.FiatAmount <= 0 {
		errs = errors.AppendField(errs, "FiatAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "PaymentMethod", b.PaymentMethod.Validate())
	errs = errors.AppendField(errs, "Status", b.Status.Validate())
	if b.PaymentReference != "" {
		errs = errors.AppendField(errs, "PaymentReference", oracle.ValidateReference(b.PaymentReference))
	}
	errs = errors.AppendField(errs, "CreatedAt", b.CreatedAt.Validate())
	errs = errors.AppendField(errs, "ExpiresAt", b.ExpiresAt.Validate())
	if len(b.DisputeReason) > maxDisputeReasonLength {
		errs = errors.AppendField(errs, "DisputeReason", errors.Wrap(errors.ErrInput, "too long"))
	}
	if (b.Status == StatusDisputed) != (b.DisputeReason != "") {
		errs = errors.AppendField(errs, "DisputeReason", errors.Wrap(errors.ErrState, "set only while disputed"))
	}
	errs = errors.AppendField(errs, "Address", b.Address.Validate())
	return errs
}

// validateAmounts ensures that the fee and the net payout add up to the
// gross amount.
func (b *Bill) validateAmounts() error {
	if b.Gross == nil || b.Fee == nil || b.Net == nil {
		return errors.Wrap(errors.ErrEmpty, "gross, fee and net are required")
	}
	if !b.Gross.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "gross must be positive")
	}
	if !b.Fee.IsNonNegative() || !b.Net.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative fee or net")
	}
	sum, err := b.Fee.Add(*b.Net)
	if err != nil {
		return errors.Wrap(err, "fee and net")
	}
	if !sum.Equals(*b.Gross) {
		return errors.Wrapf(errors.ErrAmount, "fee %s and net %s do not add up to %s", b.Fee, b.Net, b.Gross)
	}
	return nil
}

func (b *Bill) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(b)
}

func (b *Bill) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, b)
}

// EscrowCondition returns the condition owning the escrow account of a bill.
func EscrowCondition(id []byte) billchain.Condition {
	return billchain.NewCondition("bill", "escrow", id)
}

var billSeq = orm.NewSequence("bill", "id")

func toBill(obj orm.Model) (*Bill, error) {
	b, ok := obj.(*Bill)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return b, nil
}

func makerIndexer(obj orm.Model) ([]byte, error) {
	b, err := toBill(obj)
	if err != nil {
		return nil, err
	}
	return b.Maker, nil
}

func payerIndexer(obj orm.Model) ([]byte, error) {
	b, err := toBill(obj)
	if err != nil {
		return nil, err
	}
	if len(b.Payer) == 0 {
		return nil, nil
	}
	return b.Payer, nil
}

func statusIndexer(obj orm.Model) ([]byte, error) {
	b, err := toBill(obj)
	if err != nil {
		return nil, err
	}
	return []byte(b.Status), nil
}

// referenceIndexer makes payment references unique across all bills. Bills
// without a reference are not indexed.
func referenceIndexer(obj orm.Model) ([]byte, error) {
	b, err := toBill(obj)
	if err != nil {
		return nil, err
	}
	if b.PaymentReference == "" {
		return nil, nil
	}
	return []byte(b.PaymentReference), nil
}

// NewBucket returns the bill bucket.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("bill", &Bill{},
		orm.WithIDSequence(billSeq),
		orm.WithIndex("maker", makerIndexer, false),
		orm.WithIndex("payer", payerIndexer, false),
		orm.WithIndex("status", statusIndexer, false),
		orm.WithIndex("reference", referenceIndexer, true),
	)
}

// PauseState is the kill switch of bill creation.
type PauseState struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Paused   bool                `json:"paused"`
}

var _ orm.Model = (*PauseState)(nil)

func (p *PauseState) Validate() error {
	return errors.AppendField(nil, "Metadata", p.Metadata.Validate())
}

func (p *PauseState) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *PauseState) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

var pauseKey = []byte("bill")

// NewPauseBucket returns the bucket holding the single pause state.
func NewPauseBucket() orm.ModelBucket {
	return orm.NewModelBucket("billpause", &PauseState{})
}

// IsPaused returns true if bill creation was paused.
func IsPaused(db billchain.ReadOnlyKVStore) (bool, error) {
	var p PauseState
	switch err := NewPauseBucket().One(db, pauseKey, &p); {
	case err == nil:
		return p.Paused, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// SetPaused stores the pause state.
func SetPaused(db billchain.KVStore, paused bool) error {
	p := PauseState{Metadata: &billchain.Metadata{Schema: 1}, Paused: paused}
	_, err := NewPauseBucket().Put(db, pauseKey, &p)
	return errors.Wrap(err, "save pause state")
}
