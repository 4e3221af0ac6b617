package dispute

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

var _ billchain.Msg = (*AddArbitratorMsg)(nil)

// AddArbitratorMsg registers an arbitrator.
type AddArbitratorMsg struct {
	Metadata   *billchain.Metadata `json:"metadata"`
	Arbitrator billchain.Address   `json:"arbitrator"`
	Name       string              `json:"name"`
}

func (AddArbitratorMsg) Path() string {
	return "dispute/add_arbitrator"
}

func (m *AddArbitratorMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Arbitrator", m.Arbitrator.Validate())
	if !isName(m.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid name %q", m.Name))
	}
	return errs
}

func (m *AddArbitratorMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AddArbitratorMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*RemoveArbitratorMsg)(nil)

// RemoveArbitratorMsg revokes an arbitrator. Resolutions it made are kept.
type RemoveArbitratorMsg struct {
	Metadata   *billchain.Metadata `json:"metadata"`
	Arbitrator billchain.Address   `json:"arbitrator"`
}

func (RemoveArbitratorMsg) Path() string {
	return "dispute/remove_arbitrator"
}

func (m *RemoveArbitratorMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Arbitrator", m.Arbitrator.Validate())
	return errs
}

func (m *RemoveArbitratorMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RemoveArbitratorMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*ResolveDisputeMsg)(nil)

// ResolveDisputeMsg settles a disputed bill. When ReleaseToPayer is false the
// maker is refunded.
type ResolveDisputeMsg struct {
	Metadata       *billchain.Metadata `json:"metadata"`
	BillID         []byte              `json:"bill_id"`
	ReleaseToPayer bool                `json:"release_to_payer"`
}

func (ResolveDisputeMsg) Path() string {
	return "dispute/resolve"
}

func (m *ResolveDisputeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if len(m.BillID) != 8 {
		errs = errors.AppendField(errs, "BillID", errors.Wrapf(errors.ErrInput, "must be 8 bytes, got %d", len(m.BillID)))
	}
	return errs
}

func (m *ResolveDisputeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ResolveDisputeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the dispute configuration.
type UpdateConfigurationMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "dispute/update_configuration"
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
