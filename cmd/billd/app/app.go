/*
Package app links together all the various components
to construct the billd app.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/app"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store/iavl"
	"github.com/iov-one/billchain/x"
	"github.com/iov-one/billchain/x/bill"
	"github.com/iov-one/billchain/x/cash"
	"github.com/iov-one/billchain/x/currency"
	"github.com/iov-one/billchain/x/dispute"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
	"github.com/iov-one/billchain/x/sigs"
	"github.com/iov-one/billchain/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery.
// Unsigned transactions are accepted: releasing a verified bill and
// submitting an oracle attestation are open to anyone.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewSerializer(),
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator().AllowMissingSigs(),
		// on DeliverTx, bad tx will increment nonce even if the message
		// fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to every module of the bill chain.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()

	bank := cash.NewController(cash.NewBucket())
	cash.RegisterRoutes(r, authFn, bank)
	currency.RegisterRoutes(r, authFn)
	sigs.RegisterRoutes(r, authFn)

	engine := risk.NewController()
	risk.RegisterRoutes(r, authFn, engine)
	oracle.RegisterRoutes(r, authFn)

	bills := bill.NewController(bank, engine)
	bill.RegisterRoutes(r, authFn, bills, oracle.NewController())
	dispute.RegisterRoutes(r, authFn, bills)
	return r
}

// QueryRouter returns a default query router, allowing access to
// "/wallets", "/auth", "/tokens", "/bills", "/billstate", "/oracles",
// "/arbitrators" and the risk tables.
func QueryRouter() billchain.QueryRouter {
	r := billchain.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		currency.RegisterQuery,
		sigs.RegisterQuery,
		risk.RegisterQuery,
		oracle.RegisterQuery,
		bill.RegisterQuery,
		dispute.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() billchain.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h billchain.Handler,
	tx billchain.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (billchain.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
