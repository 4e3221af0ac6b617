package chaintest

import (
	"context"
	"fmt"

	"github.com/iov-one/billchain"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced conditions. Signer and
// Signers are both considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer billchain.Condition

	// Signers represents an authentication of multiple signers.
	Signers []billchain.Condition
}

func (a *Auth) GetConditions(billchain.Context) []billchain.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx billchain.Context, addr billchain.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx billchain.Context, conds ...billchain.Condition) billchain.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx billchain.Context) []billchain.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]billchain.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []billchain.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx billchain.Context, addr billchain.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
