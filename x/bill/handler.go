package bill

import (
	"bytes"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/x"
	"github.com/iov-one/billchain/x/currency"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/payout"
	"github.com/iov-one/billchain/x/risk"
)

const (
	createBillCost  int64 = 300
	updateBillCost  int64 = 50
	verifyBillCost  int64 = 200
	releaseBillCost int64 = 0
	refundBillCost  int64 = 0
)

// RegisterRoutes registers all bill ledger handlers.
func RegisterRoutes(r billchain.Registry, auth x.Authenticator, ctrl *BaseController, verifier oracle.Verifier) {
	tokens := currency.NewTokenInfoBucket()
	r.Handle(&CreateBillMsg{}, &createBillHandler{auth: auth, ctrl: ctrl, tokens: tokens})
	r.Handle(&CreateBillWithTokenMsg{}, &createBillHandler{auth: auth, ctrl: ctrl, tokens: tokens, withToken: true})
	r.Handle(&ClaimBillMsg{}, &claimBillHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ConfirmPaymentSentMsg{}, &confirmPaymentSentHandler{auth: auth, ctrl: ctrl})
	r.Handle(&VerifyPaymentMsg{}, &verifyPaymentHandler{ctrl: ctrl, verifier: verifier})
	r.Handle(&MakerConfirmPaymentMsg{}, &makerConfirmHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ReleaseFundsMsg{}, &releaseHandler{ctrl: ctrl})
	r.Handle(&AutoReleaseMsg{}, &releaseHandler{ctrl: ctrl})
	r.Handle(&CancelBillMsg{}, &cancelBillHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RefundExpiredBillMsg{}, &refundExpiredHandler{ctrl: ctrl})
	r.Handle(&RaiseDisputeMsg{}, &disputeHandler{auth: auth, ctrl: ctrl})
	r.Handle(&PayerDisputeMsg{}, &disputeHandler{auth: auth, ctrl: ctrl, payerOnly: true})
	r.Handle(&PauseMsg{}, &pauseHandler{auth: auth})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth, nil))
}

// createRequest is the content shared by both bill creation messages.
type createRequest struct {
	maker  billchain.Address
	amount coin.Coin
	fiat   int64
	method risk.PaymentMethod
}

type createBillHandler struct {
	auth      x.Authenticator
	ctrl      *BaseController
	tokens    *currency.TokenInfoBucket
	withToken bool
}

var _ billchain.Handler = (*createBillHandler)(nil)

func (h *createBillHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	req, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.risk.CheckLimits(ctx, db, req.maker, req.fiat); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: createBillCost}, nil
}

// Deliver records the trade with the risk engine, splits the fee and moves
// the gross amount from the maker to the escrow account.
func (h *createBillHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	req, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.risk.CheckAndRecord(ctx, db, req.maker, req.fiat); err != nil {
		return nil, err
	}
	fee, net, err := payout.Split(req.amount, conf.FeeBps)
	if err != nil {
		return nil, err
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}

	asset := NativeAsset
	if h.withToken {
		asset = req.amount.Ticker
	}
	key := billSeq.NextVal(db)
	b := &Bill{
		Metadata:      &billchain.Metadata{Schema: 1},
		Maker:         req.maker,
		Asset:         asset,
		Gross:         &req.amount,
		Fee:           &fee,
		Net:           &net,
		FeeBps:        conf.FeeBps,
		FiatAmount:    req.fiat,
		PaymentMethod: req.method,
		Status:        StatusFunded,
		CreatedAt:     now,
		ExpiresAt:     now.Add(conf.ttl()),
		Address:       EscrowCondition(key).Address(),
	}
	if err := h.ctrl.save(db, key, b); err != nil {
		return nil, err
	}
	if err := h.ctrl.bank.MoveCoins(db, b.Maker, b.Address, req.amount); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	billchain.GetLogger(ctx).Info("bill created",
		"bill", key, "maker", b.Maker, "gross", b.Gross, "method", b.PaymentMethod)
	return &billchain.DeliverResult{Data: key}, nil
}

func (h *createBillHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*createRequest, *Configuration, error) {
	req, err := h.load(tx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	switch paused, err := IsPaused(db); {
	case err != nil:
		return nil, nil, err
	case paused:
		return nil, nil, ErrPaused
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	ticker := req.amount.Ticker
	switch {
	case !h.withToken && ticker != conf.NativeTicker:
		return nil, nil, errors.Wrapf(ErrTokenNotSupported, "%s is not the native coin", ticker)
	case h.withToken && ticker == conf.NativeTicker:
		return nil, nil, errors.Wrapf(ErrTokenNotSupported, "%s is the native coin", ticker)
	case h.withToken && !h.tokens.IsRegistered(db, ticker):
		return nil, nil, errors.Wrapf(ErrTokenNotSupported, "%s is not registered", ticker)
	}

	if req.maker == nil {
		req.maker = x.AnySigner(ctx, h.auth)
		if req.maker == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
		}
	} else if !h.auth.HasAddress(ctx, req.maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}

	if err := h.ctrl.risk.CheckMethod(db, req.method); err != nil {
		return nil, nil, err
	}
	return req, conf, nil
}

func (h *createBillHandler) load(tx billchain.Tx) (*createRequest, error) {
	if h.withToken {
		var msg CreateBillWithTokenMsg
		if err := billchain.LoadMsg(tx, &msg); err != nil {
			return nil, err
		}
		return &createRequest{maker: msg.Maker, amount: *msg.Amount, fiat: msg.FiatAmount, method: msg.PaymentMethod}, nil
	}
	var msg CreateBillMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	return &createRequest{maker: msg.Maker, amount: *msg.Amount, fiat: msg.FiatAmount, method: msg.PaymentMethod}, nil
}

type claimBillHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ billchain.Handler = (*claimBillHandler)(nil)

func (h *claimBillHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: updateBillCost}, nil
}

func (h *claimBillHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, payer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	b.Payer = payer
	b.Status = StatusClaimed
	b.ClaimedAt = now
	if err := h.ctrl.save(db, msg.BillID, b); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("bill claimed", "bill", msg.BillID, "payer", payer)
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *claimBillHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*ClaimBillMsg, *Bill, billchain.Address, error) {
	var msg ClaimBillMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, nil, err
	}
	payer := x.AnySigner(ctx, h.auth)
	switch {
	case payer == nil:
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "payer signature required")
	case len(b.Payer) != 0:
		return nil, nil, nil, errors.Wrapf(ErrBillAlreadyClaimed, "claimed by %s", b.Payer)
	case b.Status != StatusFunded:
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "cannot claim a %s bill", b.Status)
	case billchain.InThePast(ctx, b.ExpiresAt.Time()):
		return nil, nil, nil, errors.Wrapf(errors.ErrExpired, "bill expired at %s", b.ExpiresAt)
	case payer.Equals(b.Maker):
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker cannot claim own bill")
	}
	return &msg, b, payer, nil
}

type confirmPaymentSentHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ billchain.Handler = (*confirmPaymentSentHandler)(nil)

func (h *confirmPaymentSentHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: updateBillCost}, nil
}

func (h *confirmPaymentSentHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	b.Status = StatusPaymentSent
	b.PaymentReference = msg.PaymentReference
	b.PayerConfirmed = true
	b.PaymentSentAt = now
	if err := h.ctrl.save(db, msg.BillID, b); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("bill payment sent", "bill", msg.BillID, "reference", msg.PaymentReference)
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *confirmPaymentSentHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*ConfirmPaymentSentMsg, *Bill, error) {
	var msg ConfirmPaymentSentMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, err
	}
	if len(b.Payer) == 0 || !h.auth.HasAddress(ctx, b.Payer) {
		return nil, nil, ErrNotBillPayer
	}
	if b.Status != StatusClaimed {
		return nil, nil, errors.Wrapf(errors.ErrState, "cannot confirm payment of a %s bill", b.Status)
	}
	var used []Bill
	if _, err := h.ctrl.bucket.ByIndex(db, "reference", []byte(msg.PaymentReference), &used); err != nil {
		return nil, nil, err
	}
	if len(used) != 0 {
		return nil, nil, errors.Wrapf(ErrPaymentReferenceUsed, "%q", msg.PaymentReference)
	}
	return &msg, b, nil
}

type verifyPaymentHandler struct {
	ctrl     *BaseController
	verifier oracle.Verifier
}

var _ billchain.Handler = (*verifyPaymentHandler)(nil)

func (h *verifyPaymentHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: verifyBillCost}, nil
}

// Deliver consumes the attestation and marks the bill verified. The hold
// period starts at the block time.
func (h *verifyPaymentHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.verifier.Consume(ctx, db, msg.Attestation); err != nil {
		return nil, err
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	b.OracleVerified = true
	b.Status = StatusPaymentVerified
	b.VerifiedAt = now
	if err := h.ctrl.save(db, msg.BillID, b); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("bill payment verified",
		"bill", msg.BillID, "oracle", msg.Attestation.Oracle, "reference", b.PaymentReference)
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *verifyPaymentHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*VerifyPaymentMsg, *Bill, error) {
	var msg VerifyPaymentMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, err
	}
	if b.Status != StatusPaymentSent {
		return nil, nil, errors.Wrapf(errors.ErrState, "cannot verify a %s bill", b.Status)
	}
	if err := matches(msg.BillID, b, msg.Attestation); err != nil {
		return nil, nil, err
	}
	if err := h.verifier.Verify(ctx, db, msg.Attestation); err != nil {
		return nil, nil, err
	}
	return &msg, b, nil
}

// matches ensures the attestation speaks about this bill.
func matches(id []byte, b *Bill, a *oracle.Attestation) error {
	switch {
	case !bytes.Equal(a.BillID, id):
		return errors.Wrap(oracle.ErrInvalidSignature, "bill id mismatch")
	case a.PaymentReference != b.PaymentReference:
		return errors.Wrap(oracle.ErrInvalidSignature, "payment reference mismatch")
	case a.FiatAmount != b.FiatAmount:
		return errors.Wrap(oracle.ErrInvalidSignature, "fiat amount mismatch")
	case !a.Payer.Equals(b.Payer):
		return errors.Wrap(oracle.ErrInvalidSignature, "payer mismatch")
	case !a.Maker.Equals(b.Maker):
		return errors.Wrap(oracle.ErrInvalidSignature, "maker mismatch")
	}
	return nil
}

type makerConfirmHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ billchain.Handler = (*makerConfirmHandler)(nil)

func (h *makerConfirmHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: updateBillCost}, nil
}

func (h *makerConfirmHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	b.MakerConfirmed = true
	if err := h.ctrl.save(db, msg.BillID, b); err != nil {
		return nil, err
	}
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *makerConfirmHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*MakerConfirmPaymentMsg, *Bill, error) {
	var msg MakerConfirmPaymentMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, b.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}
	if !b.Status.in(StatusPaymentSent, StatusPaymentVerified) {
		return nil, nil, errors.Wrapf(errors.ErrState, "cannot confirm payment of a %s bill", b.Status)
	}
	return &msg, b, nil
}

// releaseHandler serves both ReleaseFundsMsg and AutoReleaseMsg. Anyone can
// send them.
type releaseHandler struct {
	ctrl *BaseController
}

var _ billchain.Handler = (*releaseHandler)(nil)

func (h *releaseHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: releaseBillCost}, nil
}

func (h *releaseHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	id, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Release(ctx, db, id, b); err != nil {
		return nil, err
	}
	if err := h.ctrl.risk.RecordSuccess(ctx, db, b.Maker); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	if err := h.ctrl.risk.RecordSuccess(ctx, db, b.Payer); err != nil {
		return nil, errors.Wrap(err, "payer")
	}
	return &billchain.DeliverResult{Data: id}, nil
}

func (h *releaseHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) ([]byte, *Bill, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var id []byte
	switch m := msg.(type) {
	case *ReleaseFundsMsg:
		id = m.BillID
	case *AutoReleaseMsg:
		id = m.BillID
	default:
		return nil, nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, err
	}
	b, err := h.ctrl.Bill(db, id)
	if err != nil {
		return nil, nil, err
	}
	if err := h.ctrl.checkRelease(ctx, db, b); err != nil {
		return nil, nil, err
	}
	return id, b, nil
}

type cancelBillHandler struct {
	auth x.Authenticator
	ctrl *BaseController
}

var _ billchain.Handler = (*cancelBillHandler)(nil)

func (h *cancelBillHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: refundBillCost}, nil
}

func (h *cancelBillHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.refund(ctx, db, msg.BillID, b, StatusCancelled); err != nil {
		return nil, err
	}
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *cancelBillHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*CancelBillMsg, *Bill, error) {
	var msg CancelBillMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, b.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature required")
	}
	if !b.Status.in(StatusCreated, StatusFunded) {
		return nil, nil, errors.Wrapf(errors.ErrState, "cannot cancel a %s bill", b.Status)
	}
	return &msg, b, nil
}

type refundExpiredHandler struct {
	ctrl *BaseController
}

var _ billchain.Handler = (*refundExpiredHandler)(nil)

func (h *refundExpiredHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: refundBillCost}, nil
}

func (h *refundExpiredHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.refund(ctx, db, msg.BillID, b, StatusRefunded); err != nil {
		return nil, err
	}
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

func (h *refundExpiredHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*RefundExpiredBillMsg, *Bill, error) {
	var msg RefundExpiredBillMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	b, err := h.ctrl.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, err
	}
	if !b.Status.in(StatusCreated, StatusFunded) {
		return nil, nil, errors.Wrapf(errors.ErrState, "cannot refund a %s bill", b.Status)
	}
	if !billchain.InThePast(ctx, b.ExpiresAt.Time()) {
		return nil, nil, errors.Wrapf(errors.ErrState, "bill expires at %s", b.ExpiresAt)
	}
	return &msg, b, nil
}

// disputeHandler serves RaiseDisputeMsg and, with payerOnly set,
// PayerDisputeMsg.
type disputeHandler struct {
	auth      x.Authenticator
	ctrl      *BaseController
	payerOnly bool
}

var _ billchain.Handler = (*disputeHandler)(nil)

func (h *disputeHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: updateBillCost}, nil
}

func (h *disputeHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	d, b, by, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	b.Status = StatusDisputed
	b.DisputeReason = d.reason
	b.DisputedBy = by
	if err := h.ctrl.save(db, d.id, b); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("bill disputed", "bill", d.id, "by", by, "reason", d.reason)
	return &billchain.DeliverResult{Data: d.id}, nil
}

type disputeRequest struct {
	id     []byte
	reason string
}

func (h *disputeHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*disputeRequest, *Bill, billchain.Address, error) {
	var d disputeRequest
	if h.payerOnly {
		var msg PayerDisputeMsg
		if err := billchain.LoadMsg(tx, &msg); err != nil {
			return nil, nil, nil, errors.Wrap(err, "load msg")
		}
		d = disputeRequest{id: msg.BillID, reason: msg.Reason}
	} else {
		var msg RaiseDisputeMsg
		if err := billchain.LoadMsg(tx, &msg); err != nil {
			return nil, nil, nil, errors.Wrap(err, "load msg")
		}
		d = disputeRequest{id: msg.BillID, reason: msg.Reason}
	}

	b, err := h.ctrl.Bill(db, d.id)
	if err != nil {
		return nil, nil, nil, err
	}
	var by billchain.Address
	switch {
	case len(b.Payer) != 0 && h.auth.HasAddress(ctx, b.Payer):
		by = b.Payer
	case h.payerOnly:
		return nil, nil, nil, ErrNotBillPayer
	case h.auth.HasAddress(ctx, b.Maker):
		by = b.Maker
	default:
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker or payer signature required")
	}
	if !b.Status.in(StatusClaimed, StatusPaymentSent, StatusPaymentVerified) {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "cannot dispute a %s bill", b.Status)
	}
	return &d, b, by, nil
}

type pauseHandler struct {
	auth x.Authenticator
}

var _ billchain.Handler = (*pauseHandler)(nil)

func (h *pauseHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{}, nil
}

func (h *pauseHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := SetPaused(db, msg.Paused); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("bill creation pause changed", "paused", msg.Paused)
	return &billchain.DeliverResult{}, nil
}

func (h *pauseHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*PauseMsg, error) {
	var msg PauseMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "bill owner signature required")
	}
	return &msg, nil
}
