package risk

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/x"
)

const adminCost int64 = 50

// RegisterRoutes registers the administration handlers of the risk engine.
func RegisterRoutes(r billchain.Registry, auth x.Authenticator, engine *Engine) {
	r.Handle(&UpdateHoldPeriodMsg{}, &updateHoldPeriodHandler{auth: auth, engine: engine})
	r.Handle(&SetMethodBlockedMsg{}, &setMethodBlockedHandler{auth: auth, engine: engine})
	r.Handle(&UpdateVelocityLimitsMsg{}, &updateVelocityLimitsHandler{auth: auth, engine: engine})
	r.Handle(&SetUserBlacklistMsg{}, &setUserBlacklistHandler{auth: auth, engine: engine})
	r.Handle(&SetTrustLevelMsg{}, &setTrustLevelHandler{auth: auth, engine: engine})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth, nil))
}

// RegisterQuery exposes risk profiles, method policies and velocity limits.
func RegisterQuery(qr billchain.QueryRouter) {
	NewProfileBucket().Register("riskprofiles", qr)
	NewMethodPolicyBucket().Register("methodpolicies", qr)
	NewVelocityLimitsBucket().Register("velocitylimits", qr)
}

// requireOwner ensures that the owner of the risk configuration signed the
// transaction.
func requireOwner(ctx billchain.Context, db billchain.ReadOnlyKVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "risk owner signature required")
	}
	return nil
}

type updateHoldPeriodHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ billchain.Handler = (*updateHoldPeriodHandler)(nil)

func (h *updateHoldPeriodHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: adminCost}, nil
}

func (h *updateHoldPeriodHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	policy, err := h.engine.MethodPolicy(db, msg.Method)
	if err != nil {
		return nil, err
	}
	policy.HoldPeriod = msg.HoldPeriod
	if _, err := h.engine.methods.Put(db, []byte(msg.Method), policy); err != nil {
		return nil, errors.Wrap(err, "save policy")
	}
	billchain.GetLogger(ctx).Info("hold period updated", "method", msg.Method, "hold", msg.HoldPeriod)
	return &billchain.DeliverResult{}, nil
}

func (h *updateHoldPeriodHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*UpdateHoldPeriodMsg, error) {
	var msg UpdateHoldPeriodMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setMethodBlockedHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ billchain.Handler = (*setMethodBlockedHandler)(nil)

func (h *setMethodBlockedHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: adminCost}, nil
}

func (h *setMethodBlockedHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	policy, err := h.engine.MethodPolicy(db, msg.Method)
	if err != nil {
		return nil, err
	}
	policy.Blocked = msg.Blocked
	if _, err := h.engine.methods.Put(db, []byte(msg.Method), policy); err != nil {
		return nil, errors.Wrap(err, "save policy")
	}
	billchain.GetLogger(ctx).Info("method policy updated", "method", msg.Method, "blocked", msg.Blocked)
	return &billchain.DeliverResult{}, nil
}

func (h *setMethodBlockedHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*SetMethodBlockedMsg, error) {
	var msg SetMethodBlockedMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if !msg.Blocked && msg.Method.PermanentlyBlocked() {
		return nil, errors.Wrapf(ErrPaymentMethodBlocked, "%s cannot be unblocked", msg.Method)
	}
	return &msg, nil
}

type updateVelocityLimitsHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ billchain.Handler = (*updateVelocityLimitsHandler)(nil)

func (h *updateVelocityLimitsHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: adminCost}, nil
}

func (h *updateVelocityLimitsHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.engine.limits.Put(db, []byte(msg.TrustLevel), msg.limits()); err != nil {
		return nil, errors.Wrap(err, "save limits")
	}
	billchain.GetLogger(ctx).Info("velocity limits updated", "trust_level", msg.TrustLevel)
	return &billchain.DeliverResult{}, nil
}

func (h *updateVelocityLimitsHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*UpdateVelocityLimitsMsg, error) {
	var msg UpdateVelocityLimitsMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setUserBlacklistHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ billchain.Handler = (*setUserBlacklistHandler)(nil)

func (h *setUserBlacklistHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: adminCost}, nil
}

func (h *setUserBlacklistHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.engine.loadProfile(db, msg.User)
	if err != nil {
		return nil, err
	}
	p.IsBlacklisted = msg.Blacklisted
	if err := h.engine.saveProfile(db, msg.User, p); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("blacklist updated", "user", msg.User, "blacklisted", msg.Blacklisted)
	return &billchain.DeliverResult{}, nil
}

func (h *setUserBlacklistHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*SetUserBlacklistMsg, error) {
	var msg SetUserBlacklistMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type setTrustLevelHandler struct {
	auth   x.Authenticator
	engine *Engine
}

var _ billchain.Handler = (*setTrustLevelHandler)(nil)

func (h *setTrustLevelHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: adminCost}, nil
}

func (h *setTrustLevelHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	p, err := h.engine.loadProfile(db, msg.User)
	if err != nil {
		return nil, err
	}
	p.TrustLevel = msg.TrustLevel
	if err := h.engine.saveProfile(db, msg.User, p); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("trust level assigned", "user", msg.User, "trust_level", msg.TrustLevel)
	return &billchain.DeliverResult{}, nil
}

func (h *setTrustLevelHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*SetTrustLevelMsg, error) {
	var msg SetTrustLevelMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}
