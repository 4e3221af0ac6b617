package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/tendermint/tendermint/libs/log"
)

// SignatureHeader carries the hex encoded HMAC-SHA256 of the request body,
// keyed with the webhook secret shared with the payment processor.
const SignatureHeader = "X-Webhook-Signature"

const maxBodySize = 1 << 16

type webhookServer struct {
	signer *crypto.PrivateKey
	secret []byte
	domain []byte
	logger log.Logger
	now    func() time.Time
}

// paymentNotification is the payload posted by the payment processor once a
// fiat transfer settles.
type paymentNotification struct {
	// BillID is hex encoded.
	BillID           string            `json:"bill_id"`
	Payer            billchain.Address `json:"payer"`
	Maker            billchain.Address `json:"maker"`
	FiatAmount       int64             `json:"fiat_amount"`
	PaymentReference string            `json:"payment_reference"`
}

// Health handles GET /health
func (ws *webhookServer) Health(w http.ResponseWriter, r *http.Request) {
	JSONResp(w, http.StatusOK, struct {
		Status string            `json:"status"`
		Oracle billchain.Address `json:"oracle"`
	}{
		Status: "ok",
		Oracle: ws.signer.PublicKey().Address(),
	})
}

// PaymentWebhook handles POST /webhooks/payments. It authenticates the
// processor, signs an attestation of the payment at the current time and
// returns it. Submitting the attestation to the chain is left to the
// caller.
func (ws *webhookServer) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		JSONErr(w, http.StatusRequestEntityTooLarge, "Cannot read request body.")
		return
	}
	if !ws.validMAC(body, r.Header.Get(SignatureHeader)) {
		JSONErr(w, http.StatusUnauthorized, "Invalid webhook signature.")
		return
	}

	var p paymentNotification
	if err := json.Unmarshal(body, &p); err != nil {
		JSONErr(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	billID, err := hex.DecodeString(p.BillID)
	if err != nil || len(billID) == 0 {
		JSONErr(w, http.StatusBadRequest, "bill_id must be a hex encoded bill ID.")
		return
	}

	a := oracle.Attestation{
		BillID:           billID,
		Payer:            p.Payer,
		Maker:            p.Maker,
		FiatAmount:       p.FiatAmount,
		PaymentReference: p.PaymentReference,
		Timestamp:        billchain.AsUnixTime(ws.now()),
	}
	if err := oracle.Sign(ws.signer, ws.domain, &a); err != nil {
		ws.logger.Error("cannot sign attestation", "err", err, "request", middleware.GetReqID(r.Context()))
		JSONErr(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if err := a.Validate(); err != nil {
		JSONErr(w, http.StatusBadRequest, err.Error())
		return
	}

	ws.logger.Info("payment attested",
		"bill", p.BillID,
		"reference", a.PaymentReference,
		"fiat", a.FiatAmount,
		"request", middleware.GetReqID(r.Context()))
	JSONResp(w, http.StatusOK, a)
}

func (ws *webhookServer) validMAC(body []byte, header string) bool {
	got, err := hex.DecodeString(header)
	if err != nil || len(got) != sha256.Size {
		return false
	}
	mac := hmac.New(sha256.New, ws.secret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

// JSONResp writes given payload as a JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, payload interface{}) {
	b, err := json.MarshalIndent(payload, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr writes an error response with a single message.
func JSONErr(w http.ResponseWriter, code int, msg string) {
	JSONResp(w, code, struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{msg},
	})
}
