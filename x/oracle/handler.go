package oracle

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/orm"
	"github.com/iov-one/billchain/x"
)

const registryCost int64 = 50

// RegisterRoutes registers the oracle registry handlers.
func RegisterRoutes(r billchain.Registry, auth x.Authenticator) {
	b := NewOracleBucket()
	r.Handle(&AddOracleMsg{}, &addOracleHandler{auth: auth, bucket: b})
	r.Handle(&RemoveOracleMsg{}, &removeOracleHandler{auth: auth, bucket: b})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth, nil))
}

// RegisterQuery exposes the oracle registry as "/oracles" and consumed
// attestations as "/attestations".
func RegisterQuery(qr billchain.QueryRouter) {
	NewOracleBucket().Register("oracles", qr)
	NewConsumptionBucket().Register("attestations", qr)
}

func requireOwner(ctx billchain.Context, db billchain.ReadOnlyKVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "oracle owner signature required")
	}
	return nil
}

type addOracleHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

func (h *addOracleHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: registryCost}, nil
}

func (h *addOracleHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	o := Oracle{
		Metadata: &billchain.Metadata{Schema: 1},
		PubKey:   msg.PubKey,
		Name:     msg.Name,
	}
	key, err := h.bucket.Put(db, msg.PubKey.Address(), &o)
	if err != nil {
		return nil, errors.Wrap(err, "save oracle")
	}
	billchain.GetLogger(ctx).Info("oracle added", "oracle", msg.PubKey.Address(), "name", msg.Name)
	return &billchain.DeliverResult{Data: key}, nil
}

func (h *addOracleHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*AddOracleMsg, error) {
	var msg AddOracleMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, msg.PubKey.Address()); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "oracle %s", msg.PubKey.Address())
	}
	return &msg, nil
}

type removeOracleHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

func (h *removeOracleHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: registryCost}, nil
}

func (h *removeOracleHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.Oracle); err != nil {
		return nil, errors.Wrap(err, "delete oracle")
	}
	billchain.GetLogger(ctx).Info("oracle removed", "oracle", msg.Oracle)
	return &billchain.DeliverResult{}, nil
}

func (h *removeOracleHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*RemoveOracleMsg, error) {
	var msg RemoveOracleMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, msg.Oracle); err != nil {
		return nil, err
	}
	return &msg, nil
}
