package risk

import (
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

// Controller is the risk engine API used by the bill ledger.
type Controller interface {
	// CheckMethod returns ErrPaymentMethodBlocked if the method must not
	// be used.
	CheckMethod(db billchain.ReadOnlyKVStore, method PaymentMethod) error

	// HoldPeriod returns the current hold period of a payment method.
	HoldPeriod(db billchain.ReadOnlyKVStore, method PaymentMethod) (time.Duration, error)

	// CheckLimits returns an error if the user is blacklisted or the trade
	// does not fit the velocity limits. Nothing is written.
	CheckLimits(ctx billchain.Context, db billchain.ReadOnlyKVStore, user billchain.Address, fiatAmount int64) error

	// CheckAndRecord enforces the velocity limits of the user and, if the
	// trade fits, records it. Nothing is written on failure.
	CheckAndRecord(ctx billchain.Context, db billchain.KVStore, user billchain.Address, fiatAmount int64) error

	// RecordSuccess counts a completed trade and promotes the user if the
	// promotion threshold was reached.
	RecordSuccess(ctx billchain.Context, db billchain.KVStore, user billchain.Address) error
}

// Engine is the store backed Controller implementation.
type Engine struct {
	methods  orm.ModelBucket
	limits   orm.ModelBucket
	profiles orm.ModelBucket
}

var _ Controller = (*Engine)(nil)

// NewController returns a risk engine using the default buckets.
func NewController() *Engine {
	return &Engine{
		methods:  NewMethodPolicyBucket(),
		limits:   NewVelocityLimitsBucket(),
		profiles: NewProfileBucket(),
	}
}

// MethodPolicy returns the stored policy of a payment method.
func (e *Engine) MethodPolicy(db billchain.ReadOnlyKVStore, method PaymentMethod) (*MethodPolicy, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	var p MethodPolicy
	switch err := e.methods.One(db, []byte(method), &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownPaymentMethod, "no policy for %s", method)
	default:
		return nil, err
	}
}

func (e *Engine) CheckMethod(db billchain.ReadOnlyKVStore, method PaymentMethod) error {
	blocked, err := e.IsMethodBlocked(db, method)
	if err != nil {
		return err
	}
	if blocked {
		return errors.Wrapf(ErrPaymentMethodBlocked, "%s", method)
	}
	return nil
}

// IsMethodBlocked returns true if the method is blocked.
func (e *Engine) IsMethodBlocked(db billchain.ReadOnlyKVStore, method PaymentMethod) (bool, error) {
	p, err := e.MethodPolicy(db, method)
	if err != nil {
		return false, err
	}
	return p.Blocked || method.PermanentlyBlocked(), nil
}

func (e *Engine) HoldPeriod(db billchain.ReadOnlyKVStore, method PaymentMethod) (time.Duration, error) {
	p, err := e.MethodPolicy(db, method)
	if err != nil {
		return 0, err
	}
	return p.HoldPeriod.Duration(), nil
}

// Limits returns the velocity limits of a trust level.
func (e *Engine) Limits(db billchain.ReadOnlyKVStore, level TrustLevel) (*VelocityLimits, error) {
	if err := level.Validate(); err != nil {
		return nil, err
	}
	var l VelocityLimits
	switch err := e.limits.One(db, []byte(level), &l); {
	case err == nil:
		return &l, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrUnknownTrustLevel, "no limits for %s", level)
	default:
		return nil, err
	}
}

// Profile returns the risk profile of the user as of the block time, with
// elapsed windows reset. A user that never traded gets a fresh NEW_USER
// profile.
func (e *Engine) Profile(ctx billchain.Context, db billchain.ReadOnlyKVStore, user billchain.Address) (*UserRiskProfile, error) {
	p, err := e.loadProfile(db, user)
	if err != nil {
		return nil, err
	}
	now, err := billchain.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	p.roll(now)
	return p, nil
}

func (e *Engine) loadProfile(db billchain.ReadOnlyKVStore, user billchain.Address) (*UserRiskProfile, error) {
	if err := user.Validate(); err != nil {
		return nil, errors.Wrap(err, "user")
	}
	var p UserRiskProfile
	switch err := e.profiles.One(db, user, &p); {
	case err == nil:
		return &p, nil
	case errors.ErrNotFound.Is(err):
		return newProfile(), nil
	default:
		return nil, err
	}
}

func (e *Engine) saveProfile(db billchain.KVStore, user billchain.Address, p *UserRiskProfile) error {
	_, err := e.profiles.Put(db, user, p)
	return errors.Wrap(err, "save risk profile")
}

func (e *Engine) CheckLimits(ctx billchain.Context, db billchain.ReadOnlyKVStore, user billchain.Address, fiatAmount int64) error {
	_, err := e.check(ctx, db, user, fiatAmount)
	return err
}

func (e *Engine) CheckAndRecord(ctx billchain.Context, db billchain.KVStore, user billchain.Address, fiatAmount int64) error {
	p, err := e.check(ctx, db, user, fiatAmount)
	if err != nil {
		return err
	}
	p.DailyVolume += fiatAmount
	p.WeeklyVolume += fiatAmount
	p.TradesToday++
	return e.saveProfile(db, user, p)
}

// check returns the rolled profile of the user if the trade is allowed.
func (e *Engine) check(ctx billchain.Context, db billchain.ReadOnlyKVStore, user billchain.Address, fiatAmount int64) (*UserRiskProfile, error) {
	if fiatAmount <= 0 {
		return nil, errors.Wrap(errors.ErrAmount, "fiat amount must be positive")
	}
	p, err := e.Profile(ctx, db, user)
	if err != nil {
		return nil, err
	}
	if p.IsBlacklisted {
		return nil, errors.Wrapf(ErrUserBlacklisted, "%s", user)
	}
	limits, err := e.Limits(db, p.TrustLevel)
	if err != nil {
		return nil, err
	}
	if err := p.exceeds(limits, fiatAmount); err != nil {
		return nil, err
	}
	return p, nil
}

// IsBlacklisted returns true if the user was blacklisted.
func (e *Engine) IsBlacklisted(db billchain.ReadOnlyKVStore, user billchain.Address) (bool, error) {
	p, err := e.loadProfile(db, user)
	if err != nil {
		return false, err
	}
	return p.IsBlacklisted, nil
}

func (e *Engine) RecordSuccess(ctx billchain.Context, db billchain.KVStore, user billchain.Address) error {
	p, err := e.loadProfile(db, user)
	if err != nil {
		return err
	}
	threshold, err := promotionThreshold(db)
	if err != nil {
		return err
	}
	p.SuccessfulTrades++
	if p.TrustLevel == NewUser && p.SuccessfulTrades >= threshold {
		p.TrustLevel = Trusted
		billchain.GetLogger(ctx).Info("user promoted",
			"user", user, "trust_level", p.TrustLevel, "trades", p.SuccessfulTrades)
	}
	return e.saveProfile(db, user, p)
}

// SeedDefaults stores the default method policies and velocity limits.
func (e *Engine) SeedDefaults(db billchain.KVStore) error {
	for _, m := range PaymentMethods {
		d := defaultMethods[m]
		p := MethodPolicy{
			Metadata:   &billchain.Metadata{Schema: 1},
			HoldPeriod: billchain.AsUnixDuration(d.hold),
			Blocked:    d.blocked,
		}
		if _, err := e.methods.Put(db, []byte(m), &p); err != nil {
			return errors.Wrapf(err, "method %s", m)
		}
	}
	for _, level := range TrustLevels {
		l := defaultLimits[level]
		l.Metadata = &billchain.Metadata{Schema: 1}
		if _, err := e.limits.Put(db, []byte(level), &l); err != nil {
			return errors.Wrapf(err, "limits %s", level)
		}
	}
	return nil
}
