package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecorator(t *testing.T) {
	kv := store.MemStore()
	chainID := "deco-rate"
	ctx := billchain.WithChainID(context.Background(), chainID)

	var auth Authenticate
	signers := new(signerHandler)
	h := chaintest.Decorate(signers, NewDecorator())

	priv := crypto.GenPrivKeyEd25519()
	tx := NewStdTx([]byte("dings"))

	// no signature is rejected by default
	_, err := h.Check(ctx, kv, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	sig, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}

	res, err := h.Check(ctx, kv, tx)
	require.NoError(t, err)
	assert.EqualValues(t, signatureVerifyCost, res.GasPayment)
	assert.Equal(t, []billchain.Condition{priv.PublicKey().Condition()}, signers.conds)
	assert.True(t, auth.HasAddress(signers.ctx, priv.PublicKey().Address()))

	// the nonce was used by check, deliver needs a fresh signature
	_, err = h.Deliver(ctx, kv, tx)
	assert.True(t, ErrInvalidSequence.Is(err))

	sig, err = SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)
	tx.Signatures = []*StdSignature{sig}
	_, err = h.Deliver(ctx, kv, tx)
	require.NoError(t, err)

	// missing signatures may be allowed
	allow := chaintest.Decorate(signers, NewDecorator().AllowMissingSigs())
	_, err = allow.Deliver(ctx, kv, NewStdTx([]byte("unsigned")))
	require.NoError(t, err)
	assert.Empty(t, signers.conds)

	// a transaction that is not signable passes through
	_, err = h.Deliver(ctx, kv, &chaintest.Tx{Msg: &chaintest.Msg{RoutePath: "test/x"}})
	require.NoError(t, err)
}

// signerHandler records the authenticated conditions of the last call.
type signerHandler struct {
	ctx   billchain.Context
	conds []billchain.Condition
}

func (s *signerHandler) Check(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	s.ctx = ctx
	s.conds = Authenticate{}.GetConditions(ctx)
	return &billchain.CheckResult{}, nil
}

func (s *signerHandler) Deliver(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	s.ctx = ctx
	s.conds = Authenticate{}.GetConditions(ctx)
	return &billchain.DeliverResult{}, nil
}
