package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/x"
)

func TestChainAuth(t *testing.T) {
	a := chaintest.NewCondition()
	b := chaintest.NewCondition()
	c := chaintest.NewCondition()
	d := chaintest.NewCondition()

	ctxAuth := &chaintest.CtxAuth{Key: "auth"}
	ctx := ctxAuth.SetConditions(context.Background(), a, b)
	auth := x.ChainAuth(ctxAuth, &chaintest.Auth{Signers: []billchain.Condition{b, c}})

	assert.Equal(t, []billchain.Condition{a, b, c}, auth.GetConditions(ctx))
	assert.Equal(t, []billchain.Address{a.Address(), b.Address(), c.Address()}, x.GetAddresses(ctx, auth))
	assert.Equal(t, true, auth.HasAddress(ctx, c.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, d.Address()))

	assert.Equal(t, a, x.MainSigner(ctx, auth))
	assert.Equal(t, a.Address(), x.AnySigner(ctx, auth))
}

func TestAnySignerWithoutSignatures(t *testing.T) {
	auth := x.ChainAuth(&chaintest.CtxAuth{Key: "auth"})
	ctx := context.Background()

	if got := x.MainSigner(ctx, auth); got != nil {
		t.Fatalf("want no signer, got %v", got)
	}
	if got := x.AnySigner(ctx, auth); got != nil {
		t.Fatalf("want no address, got %v", got)
	}
}
