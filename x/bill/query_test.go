package bill

import (
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/x/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillStateQuery(t *testing.T) {
	e := newTestEnv(t)
	qr := billchain.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/billstate")
	require.NotNil(t, h)

	state := func(id []byte, at time.Time) *BillState {
		t.Helper()
		res, err := h.Query(e.db, billchain.KeyQueryMod, StateQueryData(id, billchain.AsUnixTime(at)))
		require.NoError(t, err)
		require.Len(t, res, 1)
		var s BillState
		require.NoError(t, s.Unmarshal(res[0].Value))
		return &s
	}

	id := e.paymentSent(start, risk.IDEAL, "R-QUERY")
	s := state(id, start)
	assert.Equal(t, StatusPaymentSent, s.Status)
	assert.False(t, s.CanRelease)
	assert.Contains(t, s.Reason, ErrPaymentNotOracleVerified.Error())
	assert.True(t, s.ReleasableAt.IsZero())

	e.mustDeliver(start, &VerifyPaymentMsg{Metadata: meta(), BillID: id, Attestation: e.attest(id, start)})
	s = state(id, start.Add(time.Hour))
	assert.False(t, s.CanRelease)
	assert.Equal(t, start.Add(24*time.Hour).Unix(), int64(s.ReleasableAt))

	s = state(id, start.Add(24*time.Hour))
	assert.True(t, s.CanRelease)
	assert.Empty(t, s.Reason)

	res, err := h.Query(e.db, billchain.KeyQueryMod, StateQueryData(chaintest.SequenceID(77), billchain.AsUnixTime(start)))
	assert.NoError(t, err)
	assert.Empty(t, res)

	_, err = h.Query(e.db, billchain.KeyQueryMod, id)
	assert.Error(t, err)
}

func TestBillIndexQueries(t *testing.T) {
	e := newTestEnv(t)
	qr := billchain.NewQueryRouter()
	RegisterQuery(qr)

	first := e.claimed(start, risk.Crypto)
	e.create(start, eth(1, 0), 1000, risk.Crypto)

	res, err := qr.Handler("/bills/maker").Query(e.db, billchain.KeyQueryMod, e.maker.Address())
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Handler("/bills/payer").Query(e.db, billchain.KeyQueryMod, e.payer.Address())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, first, res[0].Key)

	res, err = qr.Handler("/bills/status").Query(e.db, billchain.KeyQueryMod, []byte(StatusFunded))
	require.NoError(t, err)
	assert.Len(t, res, 1)

	res, err = qr.Handler("/bills").Query(e.db, billchain.KeyQueryMod, first)
	require.NoError(t, err)
	require.Len(t, res, 1)
	var b Bill
	require.NoError(t, b.Unmarshal(res[0].Value))
	assert.Equal(t, StatusClaimed, b.Status)
}
