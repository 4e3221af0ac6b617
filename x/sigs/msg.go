package sigs

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

const (
	maxSequenceIncrement = 1000
	minSequenceIncrement = 1
)

// BumpSequenceMsg increments the nonce of the signer, invalidating every
// transaction signed with the skipped values.
type BumpSequenceMsg struct {
	Metadata  *billchain.Metadata `json:"metadata"`
	Increment uint32              `json:"increment"`
}

var _ billchain.Msg = (*BumpSequenceMsg)(nil)

func (BumpSequenceMsg) Path() string {
	return "sigs/bump_sequence"
}

func (msg *BumpSequenceMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if msg.Increment < minSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must be at least %d", minSequenceIncrement)
	}
	if msg.Increment > maxSequenceIncrement {
		return errors.Wrapf(errors.ErrMsg, "increment must not be greater than %d", maxSequenceIncrement)
	}
	return nil
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}
