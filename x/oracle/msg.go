package oracle

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
)

var _ billchain.Msg = (*AddOracleMsg)(nil)

// AddOracleMsg registers a new oracle key.
type AddOracleMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	PubKey   *crypto.PublicKey   `json:"pubkey"`
	Name     string              `json:"name"`
}

func (AddOracleMsg) Path() string {
	return "oracle/add"
}

func (m *AddOracleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "PubKey", m.PubKey.Validate())
	if !isName(m.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid name %q", m.Name))
	}
	return errs
}

func (m *AddOracleMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *AddOracleMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*RemoveOracleMsg)(nil)

// RemoveOracleMsg revokes an oracle. Attestations it signed are no longer
// accepted, even if they were issued before the removal.
type RemoveOracleMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Oracle   billchain.Address   `json:"oracle"`
}

func (RemoveOracleMsg) Path() string {
	return "oracle/remove"
}

func (m *RemoveOracleMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Oracle", m.Oracle.Validate())
	return errs
}

func (m *RemoveOracleMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RemoveOracleMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg patches the oracle configuration.
type UpdateConfigurationMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "oracle/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.FreshnessWindow < 0 {
		return errors.Wrap(errors.ErrInput, "freshness window must not be negative")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
