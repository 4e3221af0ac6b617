package currency

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
)

var _ billchain.Msg = (*CreateMsg)(nil)

// CreateMsg registers a new token.
type CreateMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Ticker   string              `json:"ticker"`
	Name     string              `json:"name"`
}

func (CreateMsg) Path() string {
	return "currency/create"
}

func (m *CreateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if !coin.IsCC(m.Ticker) {
		errs = errors.AppendField(errs, "Ticker", errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", m.Ticker))
	}
	if !isTokenName(m.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid token name %q", m.Name))
	}
	return errs
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

var _ billchain.Msg = (*UpdateConfigurationMsg)(nil)

// UpdateConfigurationMsg changes the owner of the registry.
type UpdateConfigurationMsg struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Patch    *Configuration      `json:"patch"`
}

func (UpdateConfigurationMsg) Path() string {
	return "currency/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if m.Patch.Owner != nil {
		return errors.Wrap(m.Patch.Owner.Validate(), "owner")
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
