package payout

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	"github.com/iov-one/billchain/x/cash"
)

// MaxBps is the basis points value representing the whole amount.
const MaxBps = 10000

// Split returns the platform fee and the net payout of a gross amount.
// The fee is truncated at the smallest coin unit, so fee and net always add
// up to exactly the gross amount.
func Split(gross coin.Coin, feeBps int32) (fee, net coin.Coin, err error) {
	if feeBps < 0 || feeBps > MaxBps {
		return fee, net, errors.Wrapf(errors.ErrInput, "fee %d bps out of range", feeBps)
	}
	if err := gross.Validate(); err != nil {
		return fee, net, errors.Wrap(err, "gross")
	}
	if !gross.IsNonNegative() {
		return fee, net, errors.Wrap(errors.ErrAmount, "negative gross amount")
	}

	scaled, err := gross.Multiply(int64(feeBps))
	if err != nil {
		return fee, net, errors.Wrap(err, "fee")
	}
	fee, _, err = scaled.Divide(MaxBps)
	if err != nil {
		return fee, net, errors.Wrap(err, "fee")
	}
	net, err = gross.Subtract(fee)
	if err != nil {
		return fee, net, errors.Wrap(err, "net")
	}
	return fee, net, nil
}

// Disburse moves the net payout to the payer and the fee to the collector.
// Both transfers are applied together. If either of them fails, nothing is
// written and the error is returned.
func Disburse(
	db billchain.KVStore,
	mover cash.CoinMover,
	escrow, payer, collector billchain.Address,
	fee, net coin.Coin,
) error {
	cache := store.BTreeCacheable{KVStore: db}.CacheWrap()
	if err := transfer(cache, mover, escrow, payer, net); err != nil {
		cache.Discard()
		return errors.Wrap(err, "net payout")
	}
	if err := transfer(cache, mover, escrow, collector, fee); err != nil {
		cache.Discard()
		return errors.Wrap(err, "platform fee")
	}
	cache.Write()
	return nil
}

// Refund returns the whole gross amount to the maker.
func Refund(db billchain.KVStore, mover cash.CoinMover, escrow, maker billchain.Address, gross coin.Coin) error {
	return errors.Wrap(transfer(db, mover, escrow, maker, gross), "refund")
}

// transfer skips zero amounts, as a zero fee or a zero payout is valid.
func transfer(db billchain.KVStore, mover cash.CoinMover, src, dest billchain.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return nil
	}
	return mover.MoveCoins(db, src, dest, amount)
}
