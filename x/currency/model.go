package currency

import (
	"regexp"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

var isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString

// TokenInfo describes a registered token. The ticker is the key.
type TokenInfo struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Name     string              `json:"name"`
}

var _ orm.Model = (*TokenInfo)(nil)

func (t *TokenInfo) Validate() error {
	if err := t.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if !isTokenName(t.Name) {
		return errors.Wrapf(errors.ErrModel, "invalid token name %q", t.Name)
	}
	return nil
}

func (t *TokenInfo) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *TokenInfo) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

// TokenInfoBucket stores TokenInfo instances, using ticker name (currency
// symbol) as the key.
type TokenInfoBucket struct {
	orm.ModelBucket
}

func NewTokenInfoBucket() *TokenInfoBucket {
	return &TokenInfoBucket{
		ModelBucket: orm.NewModelBucket("tokeninfo", &TokenInfo{}),
	}
}

// Create registers a new token. A ticker can be registered only once.
func (b *TokenInfoBucket) Create(db billchain.KVStore, ticker, name string) error {
	if !coin.IsCC(ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker %q", ticker)
	}
	if err := b.Has(db, []byte(ticker)); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "ticker %s", ticker)
	}
	info := TokenInfo{
		Metadata: &billchain.Metadata{Schema: 1},
		Name:     name,
	}
	_, err := b.Put(db, []byte(ticker), &info)
	return err
}

// IsRegistered returns true if a token with given ticker was registered.
func (b *TokenInfoBucket) IsRegistered(db billchain.ReadOnlyKVStore, ticker string) bool {
	return b.Has(db, []byte(ticker)) == nil
}
