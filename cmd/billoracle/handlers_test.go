package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	testSeed   = "0101010101010101010101010101010101010101010101010101010101010101"
	testSecret = "processor-secret"
	testChain  = "bill-test-chain"
)

func newTestServer(t *testing.T, service billchain.Address) *webhookServer {
	t.Helper()
	ws, err := newWebhookServer(configuration{
		Seed:           testSeed,
		WebhookSecret:  testSecret,
		ChainID:        testChain,
		Deployment:     "billchain-test",
		ServiceAddress: service.String(),
		Port:           "0",
	}, log.NewNopLogger())
	require.NoError(t, err)
	ws.now = func() time.Time { return time.Unix(1600000000, 0) }
	return ws
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentWebhook(t *testing.T) {
	service := chaintest.NewCondition().Address()
	payer := chaintest.NewCondition().Address()
	maker := chaintest.NewCondition().Address()

	valid, err := json.Marshal(map[string]interface{}{
		"bill_id":           "0000000000000001",
		"payer":             payer.String(),
		"maker":             maker.String(),
		"fiat_amount":       40000,
		"payment_reference": "TX-1",
	})
	require.NoError(t, err)
	noReference, err := json.Marshal(map[string]interface{}{
		"bill_id":     "0000000000000001",
		"payer":       payer.String(),
		"maker":       maker.String(),
		"fiat_amount": 40000,
	})
	require.NoError(t, err)
	badBill, err := json.Marshal(map[string]interface{}{
		"bill_id":           "not hex",
		"payer":             payer.String(),
		"maker":             maker.String(),
		"fiat_amount":       40000,
		"payment_reference": "TX-1",
	})
	require.NoError(t, err)

	cases := map[string]struct {
		body     []byte
		mac      string
		wantCode int
	}{
		"signed payment is attested": {
			body:     valid,
			mac:      sign(testSecret, valid),
			wantCode: http.StatusOK,
		},
		"missing signature": {
			body:     valid,
			mac:      "",
			wantCode: http.StatusUnauthorized,
		},
		"signature with another secret": {
			body:     valid,
			mac:      sign("another-secret", valid),
			wantCode: http.StatusUnauthorized,
		},
		"body changed after signing": {
			body:     append([]byte(" "), valid...),
			mac:      sign(testSecret, valid),
			wantCode: http.StatusUnauthorized,
		},
		"malformed body": {
			body:     []byte("{"),
			mac:      sign(testSecret, []byte("{")),
			wantCode: http.StatusBadRequest,
		},
		"missing payment reference": {
			body:     noReference,
			mac:      sign(testSecret, noReference),
			wantCode: http.StatusBadRequest,
		},
		"bill id not hex": {
			body:     badBill,
			mac:      sign(testSecret, badBill),
			wantCode: http.StatusBadRequest,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ws := newTestServer(t, service)

			r := httptest.NewRequest("POST", "/webhooks/payments", bytes.NewReader(tc.body))
			r.Header.Set(SignatureHeader, tc.mac)
			w := httptest.NewRecorder()
			ws.Routes().ServeHTTP(w, r)

			require.Equal(t, tc.wantCode, w.Code, w.Body.String())
			if tc.wantCode != http.StatusOK {
				return
			}

			var a oracle.Attestation
			require.NoError(t, json.NewDecoder(w.Body).Decode(&a))
			assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, a.BillID)
			assert.Equal(t, payer, a.Payer)
			assert.Equal(t, maker, a.Maker)
			assert.Equal(t, int64(40000), a.FiatAmount)
			assert.Equal(t, billchain.UnixTime(1600000000), a.Timestamp)
			assert.Equal(t, ws.signer.PublicKey().Address(), a.Oracle)

			domain := oracle.DomainSeparator(testChain, "billchain-test", service)
			raw, err := oracle.SignBytes(domain, &a)
			require.NoError(t, err)
			assert.True(t, ws.signer.PublicKey().Verify(raw, a.Signature))

			other := oracle.DomainSeparator(testChain, "another-deployment", service)
			raw, err = oracle.SignBytes(other, &a)
			require.NoError(t, err)
			assert.False(t, ws.signer.PublicKey().Verify(raw, a.Signature))
		})
	}
}

func TestHealth(t *testing.T) {
	ws := newTestServer(t, chaintest.NewCondition().Address())

	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	ws.Routes().ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string            `json:"status"`
		Oracle billchain.Address `json:"oracle"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ws.signer.PublicKey().Address(), resp.Oracle)
}

func TestNewWebhookServerConfiguration(t *testing.T) {
	service := chaintest.NewCondition().Address().String()
	base := configuration{
		Seed:           testSeed,
		WebhookSecret:  testSecret,
		ChainID:        testChain,
		Deployment:     "billchain-test",
		ServiceAddress: service,
	}

	cases := map[string]func(c *configuration){
		"missing seed":       func(c *configuration) { c.Seed = "" },
		"short seed":         func(c *configuration) { c.Seed = "0101" },
		"missing secret":     func(c *configuration) { c.WebhookSecret = "" },
		"invalid chain":      func(c *configuration) { c.ChainID = "no" },
		"missing service":    func(c *configuration) { c.ServiceAddress = "" },
		"invalid deployment": func(c *configuration) { c.Deployment = "has space" },
	}
	for testName, mutate := range cases {
		t.Run(testName, func(t *testing.T) {
			conf := base
			mutate(&conf)
			_, err := newWebhookServer(conf, log.NewNopLogger())
			assert.Error(t, err)
		})
	}

	_, err := newWebhookServer(base, log.NewNopLogger())
	assert.NoError(t, err)
}
