package bill

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/store"
	"github.com/iov-one/billchain/x/cash"
	"github.com/iov-one/billchain/x/currency"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
	"github.com/stretchr/testify/require"
)

const (
	testChainID = "bill-test-chain"
	testTicker  = "ETH"
)

var start = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func eth(whole, fractional int64) coin.Coin {
	return coin.NewCoin(whole, fractional, testTicker)
}

// testEnv is a bill ledger with every collaborator backed by a memory store.
type testEnv struct {
	t        testing.TB
	db       billchain.CacheableKVStore
	auth     *chaintest.CtxAuth
	bank     cash.BaseController
	risk     *risk.Engine
	oracles  *oracle.Controller
	ctrl     *BaseController
	handlers map[string]billchain.Handler

	owner     billchain.Condition
	maker     billchain.Condition
	payer     billchain.Condition
	stranger  billchain.Condition
	collector billchain.Address

	oracleKey *crypto.PrivateKey
	domain    []byte
}

func newTestEnv(t testing.TB) *testEnv {
	t.Helper()
	e := &testEnv{
		t:         t,
		db:        store.MemStore(),
		auth:      &chaintest.CtxAuth{Key: "auth"},
		bank:      cash.NewController(cash.NewBucket()),
		risk:      risk.NewController(),
		oracles:   oracle.NewController(),
		handlers:  make(map[string]billchain.Handler),
		owner:     chaintest.NewCondition(),
		maker:     chaintest.NewCondition(),
		payer:     chaintest.NewCondition(),
		stranger:  chaintest.NewCondition(),
		collector: chaintest.NewCondition().Address(),
		oracleKey: crypto.GenPrivKeyEd25519(),
	}
	e.ctrl = NewController(e.bank, e.risk)
	RegisterRoutes(registry(e.handlers), e.auth, e.ctrl, e.oracles)

	require.NoError(t, e.risk.SeedDefaults(e.db))
	require.NoError(t, gconf.Save(e.db, confPkg, &Configuration{
		Metadata:     &billchain.Metadata{Schema: 1},
		Owner:        e.owner.Address(),
		FeeBps:       DefaultFeeBps,
		FeeCollector: e.collector,
		NativeTicker: testTicker,
	}))

	oconf := oracle.Configuration{
		Metadata:       &billchain.Metadata{Schema: 1},
		Owner:          e.owner.Address(),
		Deployment:     "escrow-test",
		ServiceAddress: chaintest.NewCondition().Address(),
	}
	require.NoError(t, gconf.Save(e.db, "oracle", &oconf))
	e.domain = oracle.DomainSeparator(testChainID, oconf.Deployment, oconf.ServiceAddress)
	o := oracle.Oracle{
		Metadata: &billchain.Metadata{Schema: 1},
		PubKey:   e.oracleKey.PublicKey(),
		Name:     "payment oracle",
	}
	_, err := oracle.NewOracleBucket().Put(e.db, e.oracleKey.PublicKey().Address(), &o)
	require.NoError(t, err)

	require.NoError(t, currency.NewTokenInfoBucket().Create(e.db, "DAI", "Dai Stablecoin"))
	require.NoError(t, e.bank.CoinMint(e.db, e.maker.Address(), eth(10, 0)))
	require.NoError(t, e.bank.CoinMint(e.db, e.maker.Address(), coin.NewCoin(500, 0, "DAI")))
	return e
}

type registry map[string]billchain.Handler

func (r registry) Handle(m billchain.Msg, h billchain.Handler) {
	r[m.Path()] = h
}

func (e *testEnv) ctx(at time.Time, signers ...billchain.Condition) billchain.Context {
	ctx := billchain.WithBlockTime(context.Background(), at)
	ctx = billchain.WithChainID(ctx, testChainID)
	return e.auth.SetConditions(ctx, signers...)
}

// deliver runs the message through Check and Deliver. State is written only
// if both succeed.
func (e *testEnv) deliver(at time.Time, msg billchain.Msg, signers ...billchain.Condition) (*billchain.DeliverResult, error) {
	e.t.Helper()
	h, ok := e.handlers[msg.Path()]
	if !ok {
		e.t.Fatalf("no handler for %s", msg.Path())
	}
	ctx := e.ctx(at, signers...)
	tx := &chaintest.Tx{Msg: msg}

	check := e.db.CacheWrap()
	_, err := h.Check(ctx, check, tx)
	check.Discard()
	if err != nil {
		return nil, err
	}

	cache := e.db.CacheWrap()
	res, err := h.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	cache.Write()
	return res, nil
}

func (e *testEnv) mustDeliver(at time.Time, msg billchain.Msg, signers ...billchain.Condition) []byte {
	e.t.Helper()
	res, err := e.deliver(at, msg, signers...)
	require.NoError(e.t, err, "%s", msg.Path())
	return res.Data
}

func meta() *billchain.Metadata {
	return &billchain.Metadata{Schema: 1}
}

func (e *testEnv) create(at time.Time, amount coin.Coin, fiat int64, method risk.PaymentMethod) []byte {
	e.t.Helper()
	return e.mustDeliver(at, &CreateBillMsg{
		Metadata:      meta(),
		Amount:        &amount,
		FiatAmount:    fiat,
		PaymentMethod: method,
	}, e.maker)
}

func (e *testEnv) claimed(at time.Time, method risk.PaymentMethod) []byte {
	e.t.Helper()
	id := e.create(at, eth(1, 0), 40000, method)
	e.mustDeliver(at, &ClaimBillMsg{Metadata: meta(), BillID: id}, e.payer)
	return id
}

func (e *testEnv) paymentSent(at time.Time, method risk.PaymentMethod, ref string) []byte {
	e.t.Helper()
	id := e.claimed(at, method)
	e.mustDeliver(at, &ConfirmPaymentSentMsg{Metadata: meta(), BillID: id, PaymentReference: ref}, e.payer)
	return id
}

func (e *testEnv) verified(at time.Time, method risk.PaymentMethod, ref string) []byte {
	e.t.Helper()
	id := e.paymentSent(at, method, ref)
	e.mustDeliver(at, &VerifyPaymentMsg{Metadata: meta(), BillID: id, Attestation: e.attest(id, at)}, e.stranger)
	return id
}

// attest returns an attestation of the stored bill signed by the registered
// oracle.
func (e *testEnv) attest(id []byte, signedAt time.Time) *oracle.Attestation {
	e.t.Helper()
	b := e.bill(id)
	a := &oracle.Attestation{
		BillID:           id,
		Payer:            b.Payer,
		Maker:            b.Maker,
		FiatAmount:       b.FiatAmount,
		PaymentReference: b.PaymentReference,
		Timestamp:        billchain.AsUnixTime(signedAt),
	}
	require.NoError(e.t, oracle.Sign(e.oracleKey, e.domain, a))
	return a
}

func (e *testEnv) bill(id []byte) *Bill {
	e.t.Helper()
	b, err := e.ctrl.Bill(e.db, id)
	require.NoError(e.t, err)
	return b
}

// balance returns the amount of given ticker held by the address.
func (e *testEnv) balance(addr billchain.Address, ticker string) coin.Coin {
	e.t.Helper()
	coins, err := e.bank.Balance(e.db, addr)
	if errors.ErrEmpty.Is(err) {
		return coin.Coin{Ticker: ticker}
	}
	require.NoError(e.t, err)
	return coins.Balance(ticker)
}

// failingMover refuses every transfer to one address.
type failingMover struct {
	cash.CoinMover
	to billchain.Address
}

func (m failingMover) MoveCoins(db billchain.KVStore, src, dest billchain.Address, amount coin.Coin) error {
	if dest.Equals(m.to) {
		return errors.Wrap(errors.ErrDatabase, "transfer refused")
	}
	return m.CoinMover.MoveCoins(db, src, dest, amount)
}
