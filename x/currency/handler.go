package currency

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/x"
)

const newTokenInfoCost = 100

func RegisterQuery(qr billchain.QueryRouter) {
	NewTokenInfoBucket().Register("tokens", qr)
}

func RegisterRoutes(r billchain.Registry, auth x.Authenticator) {
	r.Handle(&CreateMsg{}, newCreateTokenInfoHandler(auth))
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth, nil))
}

func newCreateTokenInfoHandler(auth x.Authenticator) billchain.Handler {
	return &createTokenInfoHandler{
		auth:   auth,
		bucket: NewTokenInfoBucket(),
	}
}

type createTokenInfoHandler struct {
	auth   x.Authenticator
	bucket *TokenInfoBucket
}

func (h *createTokenInfoHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: newTokenInfoCost}, nil
}

func (h *createTokenInfoHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Create(db, msg.Ticker, msg.Name); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("token registered", "ticker", msg.Ticker)
	return &billchain.DeliverResult{}, nil
}

func (h *createTokenInfoHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "token only issued by %s", conf.Owner)
	}

	// Token can be registered only once and must not be updated.
	if h.bucket.IsRegistered(db, msg.Ticker) {
		return nil, errors.Wrapf(errors.ErrDuplicate, "ticker %s", msg.Ticker)
	}
	return &msg, nil
}
