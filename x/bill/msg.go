package bill

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
)

func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "bill id must be 8 bytes, got %d", len(id))
	}
	return nil
}

func validateCreate(meta *billchain.Metadata, maker billchain.Address, amount *coin.Coin, fiat int64, method risk.PaymentMethod) error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", meta.Validate())
	if len(maker) != 0 {
		errs = errors.AppendField(errs, "Maker", maker.Validate())
	}
	switch {
	case amount == nil:
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	case !amount.IsPositive():
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	default:
		errs = errors.AppendField(errs, "Amount", amount.Validate())
	}
	if fiat <= 0 {
		errs = errors.AppendField(errs, "FiatAmount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "PaymentMethod", method.Validate())
	return errs
}

var _ billchain.Msg = (*CreateBillMsg)(nil)

// CreateBillMsg escrows the native coin. Maker defaults to the main signer.
type CreateBillMsg struct {
	Metadata      *billchain.Metadata `json:"metadata"`
	Maker         billchain.Address   `json:"maker,omitempty"`
	Amount        *coin.Coin          `json:"amount"`
	FiatAmount    int64               `json:"fiat_amount"`
	PaymentMethod risk.PaymentMethod  `json:"payment_method"`
}

func (CreateBillMsg) Path() string {
	return "bill/create"
}

func (m *CreateBillMsg) Validate() error {
	return validateCreate(m.Metadata, m.Maker, m.Amount, m.FiatAmount, m.PaymentMethod)
}

func (m *CreateBillMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateBillMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*CreateBillWithTokenMsg)(nil)

// CreateBillWithTokenMsg escrows a registered token.
type CreateBillWithTokenMsg struct {
	Metadata      *billchain.Metadata `json:"metadata"`
	Maker         billchain.Address   `json:"maker,omitempty"`
	Amount        *coin.Coin          `json:"amount"`
	FiatAmount    int64               `json:"fiat_amount"`
	PaymentMethod risk.PaymentMethod  `json:"payment_method"`
}

func (CreateBillWithTokenMsg) Path() string {
	return "bill/create_with_token"
}

func (m *CreateBillWithTokenMsg) Validate() error {
	return validateCreate(m.Metadata, m.Maker, m.Amount, m.FiatAmount, m.PaymentMethod)
}

func (m *CreateBillWithTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateBillWithTokenMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*ClaimBillMsg)(nil)

// ClaimBillMsg makes the main signer the payer of a bill.
type ClaimBillMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (ClaimBillMsg) Path() string {
	return "bill/claim"
}

func (m *ClaimBillMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *ClaimBillMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ClaimBillMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*ConfirmPaymentSentMsg)(nil)

// ConfirmPaymentSentMsg is sent by the payer once the fiat payment was made.
type ConfirmPaymentSentMsg struct {
	Metadata         *billchain.Metadata `json:"metadata"`
	BillID           []byte              `json:"bill_id"`
	PaymentReference string              `json:"payment_reference"`
}

func (ConfirmPaymentSentMsg) Path() string {
	return "bill/confirm_payment_sent"
}

func (m *ConfirmPaymentSentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	errs = errors.AppendField(errs, "PaymentReference", oracle.ValidateReference(m.PaymentReference))
	return errs
}

func (m *ConfirmPaymentSentMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ConfirmPaymentSentMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*VerifyPaymentMsg)(nil)

// VerifyPaymentMsg submits an oracle attestation of the fiat receipt. Anyone
// can submit it, the attestation signature is the authorization.
type VerifyPaymentMsg struct {
	Metadata    *billchain.Metadata `json:"metadata"`
	BillID      []byte              `json:"bill_id"`
	Attestation *oracle.Attestation `json:"attestation"`
}

func (VerifyPaymentMsg) Path() string {
	return "bill/verify_payment"
}

func (m *VerifyPaymentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	if m.Attestation == nil {
		errs = errors.AppendField(errs, "Attestation", errors.ErrEmpty)
	}
	return errs
}

func (m *VerifyPaymentMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *VerifyPaymentMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*MakerConfirmPaymentMsg)(nil)

// MakerConfirmPaymentMsg records that the maker saw the fiat payment. It does
// not influence the release.
type MakerConfirmPaymentMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (MakerConfirmPaymentMsg) Path() string {
	return "bill/maker_confirm_payment"
}

func (m *MakerConfirmPaymentMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *MakerConfirmPaymentMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *MakerConfirmPaymentMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*ReleaseFundsMsg)(nil)

// ReleaseFundsMsg pays out a verified bill once its hold period elapsed.
type ReleaseFundsMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (ReleaseFundsMsg) Path() string {
	return "bill/release"
}

func (m *ReleaseFundsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *ReleaseFundsMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ReleaseFundsMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*AutoReleaseMsg)(nil)

// AutoReleaseMsg is ReleaseFundsMsg sent by a keeper process.
type AutoReleaseMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (AutoReleaseMsg) Path() string {
	return "bill/auto_release"
}

func (m *AutoReleaseMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *AutoReleaseMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AutoReleaseMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*CancelBillMsg)(nil)

// CancelBillMsg returns the escrow of an unclaimed bill to its maker.
type CancelBillMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (CancelBillMsg) Path() string {
	return "bill/cancel"
}

func (m *CancelBillMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *CancelBillMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelBillMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*RefundExpiredBillMsg)(nil)

// RefundExpiredBillMsg returns the escrow of an expired, unclaimed bill.
type RefundExpiredBillMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
}

func (RefundExpiredBillMsg) Path() string {
	return "bill/refund_expired"
}

func (m *RefundExpiredBillMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	return errs
}

func (m *RefundExpiredBillMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RefundExpiredBillMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func validateReason(reason string) error {
	if reason == "" {
		return errors.Wrap(errors.ErrEmpty, "dispute reason")
	}
	if len(reason) > maxDisputeReasonLength {
		return errors.Wrap(errors.ErrInput, "dispute reason too long")
	}
	return nil
}

var _ billchain.Msg = (*RaiseDisputeMsg)(nil)

// RaiseDisputeMsg freezes a bill until an arbitrator resolves it. Either
// the maker or the payer can send it.
type RaiseDisputeMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
	Reason   string              `json:"reason"`
}

func (RaiseDisputeMsg) Path() string {
	return "bill/raise_dispute"
}

func (m *RaiseDisputeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	errs = errors.AppendField(errs, "Reason", validateReason(m.Reason))
	return errs
}

func (m *RaiseDisputeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RaiseDisputeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*PayerDisputeMsg)(nil)

// PayerDisputeMsg is RaiseDisputeMsg restricted to the payer.
type PayerDisputeMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	BillID   []byte              `json:"bill_id"`
	Reason   string              `json:"reason"`
}

func (PayerDisputeMsg) Path() string {
	return "bill/payer_dispute"
}

func (m *PayerDisputeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "BillID", validateID(m.BillID))
	errs = errors.AppendField(errs, "Reason", validateReason(m.Reason))
	return errs
}

func (m *PayerDisputeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *PayerDisputeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*PauseMsg)(nil)

// PauseMsg switches bill creation off or back on.
type PauseMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Paused   bool                `json:"paused"`
}

func (PauseMsg) Path() string {
	return "bill/pause"
}

func (m *PauseMsg) Validate() error {
	return errors.AppendField(nil, "Metadata", m.Metadata.Validate())
}

func (m *PauseMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *PauseMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the bill configuration.
type UpdateConfigurationMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "bill/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
