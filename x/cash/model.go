package cash

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the balance of a single account.
type Set struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Coins    coin.Coins          `json:"coins"`
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in alphabetical order and none of
// them is negative.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := s.Coins.Validate(); err != nil {
		return errors.Wrap(err, "coins")
	}
	if !s.Coins.IsNonNegative() {
		return errors.Wrap(errors.ErrAmount, "negative balance")
	}
	return nil
}

// Marshal serializes the wallet.
func (s *Set) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

// Unmarshal loads the wallet from its serialized form.
func (s *Set) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// NewBucket returns a bucket of wallets, keyed by the owner address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}
