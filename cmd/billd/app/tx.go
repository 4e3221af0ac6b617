package app

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/bill"
	"github.com/iov-one/billchain/x/cash"
	"github.com/iov-one/billchain/x/currency"
	"github.com/iov-one/billchain/x/dispute"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
	"github.com/iov-one/billchain/x/sigs"
	amino "github.com/tendermint/go-amino"
)

var txCdc = amino.NewCodec()

func init() {
	RegisterCodec(txCdc)
	txCdc.Seal()
}

// RegisterCodec registers the message interface and every message the
// application can route.
func RegisterCodec(c *amino.Codec) {
	c.RegisterInterface((*billchain.Msg)(nil), nil)
	cash.RegisterCodec(c)
	currency.RegisterCodec(c)
	sigs.RegisterCodec(c)
	risk.RegisterCodec(c)
	oracle.RegisterCodec(c)
	bill.RegisterCodec(c)
	dispute.RegisterCodec(c)
}

// Tx is the transaction format of the bill chain: a single message and the
// signatures authorizing it.
type Tx struct {
	Msg        billchain.Msg        `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ billchain.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps a message in an unsigned transaction.
func NewTx(msg billchain.Msg) *Tx {
	return &Tx{Msg: msg}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (billchain.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (billchain.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	return txCdc.MarshalBinaryBare(tx)
}

// Unmarshal loads the transaction from its serialized form.
func (tx *Tx) Unmarshal(raw []byte) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrInput, "empty transaction")
	}
	if err := txCdc.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	return nil
}
