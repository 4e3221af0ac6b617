package x

import "github.com/iov-one/billchain"

// Authenticator reveals who authorized the current transaction. Handlers
// receive it in their constructor, so tests can swap signatures for a
// context based implementation.
type Authenticator interface {
	// GetConditions returns every condition satisfied by the transaction.
	GetConditions(billchain.Context) []billchain.Condition
	// HasAddress returns true if any satisfied condition has this address.
	HasAddress(billchain.Context, billchain.Address) bool
}

// MultiAuth joins several authenticators. A condition satisfied by any of
// them counts.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of all authenticators without
// duplicates, in authenticator order.
func (m MultiAuth) GetConditions(ctx billchain.Context) []billchain.Condition {
	var res []billchain.Condition
	for _, impl := range m {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx billchain.Context, addr billchain.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses returns the addresses of all satisfied conditions.
func GetAddresses(ctx billchain.Context, auth Authenticator) []billchain.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]billchain.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first satisfied condition or nil. With signature
// authentication this is the first signer of the transaction.
func MainSigner(ctx billchain.Context, auth Authenticator) billchain.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// AnySigner returns the address of the main signer or nil when the
// transaction is not signed.
func AnySigner(ctx billchain.Context, auth Authenticator) billchain.Address {
	if c := MainSigner(ctx, auth); c != nil {
		return c.Address()
	}
	return nil
}

func hasCondition(conds []billchain.Condition, c billchain.Condition) bool {
	for _, p := range conds {
		if p.Equals(c) {
			return true
		}
	}
	return false
}
