package sigs

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
)

type StdTx struct {
	billchain.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &chaintest.Msg{RoutePath: "test/payload", Serialized: payload}
	return &StdTx{Tx: &chaintest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
