package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
)

// signPrefix opens every signed document. Changing the sign bytes layout
// requires a new prefix.
var signPrefix = []byte("bill/tx/v1")

// VerifyTxSignatures verifies every signature of the transaction and bumps
// the sequence of each signer. The conditions of all signers are returned,
// in signature order. A transaction without signatures yields no conditions.
func VerifyTxSignatures(db billchain.KVStore, tx SignedTx, chainID string) ([]billchain.Condition, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	var signers []billchain.Condition
	for i, sig := range tx.GetSignatures() {
		cond, err := VerifySignature(db, sig, signBytes, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks a single signature of signBytes. The signer must use
// its current sequence, which is then incremented in the store.
func VerifySignature(db billchain.KVStore, sig *StdSignature, signBytes []byte, chainID string) (billchain.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	doc, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	b := NewBucket()
	user, err := b.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(doc, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := b.Save(db, user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the sha512 digest of the document a signer signs:
//
//   prefix | len(chainID) uint8 | chainID | sequence uint64 big endian | tx
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !billchain.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var doc bytes.Buffer
	doc.Write(signPrefix)
	doc.WriteByte(uint8(len(chainID)))
	doc.WriteString(chainID)
	binary.Write(&doc, binary.BigEndian, uint64(seq))
	doc.Write(signBytes)

	digest := sha512.Sum512(doc.Bytes())
	return digest[:], nil
}

func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx signs the transaction for the given chain with the signer's
// current sequence.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	doc, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(doc)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: sig,
		Sequence:  seq,
	}, nil
}

// NextNonce returns the sequence the signer must use for its next
// transaction. Unknown signers start at zero.
func NextNonce(db billchain.ReadOnlyKVStore, signer billchain.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, signer, &user); {
	case err == nil:
		return user.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, errors.Wrap(err, "bucket get")
	}
}
