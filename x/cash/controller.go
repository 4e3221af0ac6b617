package cash

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to the
	// destination account. This operation is atomic.
	MoveCoins(db billchain.KVStore, src, dest billchain.Address, amount coin.Coin) error
}

// CoinMinter is an interface to create new coins.
type CoinMinter interface {
	CoinMint(db billchain.KVStore, dest billchain.Address, amount coin.Coin) error
}

// Balancer is an interface to query the amount of coins.
type Balancer interface {
	Balance(db billchain.ReadOnlyKVStore, addr billchain.Address) (coin.Coins, error)
}

// Controller is the functionality needed by the bill and dispute modules.
type Controller interface {
	CoinMover
	CoinMinter
	Balancer
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns base controller implementation.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address. ErrEmpty is returned for
// an account that never held any coins.
func (c BaseController) Balance(db billchain.ReadOnlyKVStore, addr billchain.Address) (coin.Coins, error) {
	var set Set
	if err := c.bucket.One(db, addr, &set); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(errors.ErrEmpty, "account %s", addr)
		}
		return nil, err
	}
	return set.Coins, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(db billchain.KVStore, src, dest billchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if sender.Coins.IsEmpty() {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s has %s", src, sender.Coins.Balance(amount.Ticker))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}

	// Source and destination can be the same account.
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

// CoinMint attempts to add the given amount of coins to the destination
// address. Fails if it overflows the wallet.
func (c BaseController) CoinMint(db billchain.KVStore, dest billchain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	if _, err := c.bucket.Put(db, dest, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}

// load returns the wallet of given address. A new, empty wallet is returned
// if none exists.
func (c BaseController) load(db billchain.ReadOnlyKVStore, addr billchain.Address) (*Set, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var w Set
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &billchain.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}
