package dispute

import (
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
	"github.com/iov-one/billchain/orm"
	"github.com/iov-one/billchain/x"
	"github.com/iov-one/billchain/x/bill"
)

const (
	registryCost int64 = 50
	resolveCost  int64 = 100
)

// RegisterRoutes registers the arbitration handlers. Resolutions move funds
// using the bill controller.
func RegisterRoutes(r billchain.Registry, auth x.Authenticator, bills bill.Controller) {
	arbitrators := NewArbitratorBucket()
	r.Handle(&AddArbitratorMsg{}, &addArbitratorHandler{auth: auth, bucket: arbitrators})
	r.Handle(&RemoveArbitratorMsg{}, &removeArbitratorHandler{auth: auth, bucket: arbitrators})
	r.Handle(&ResolveDisputeMsg{}, &resolveDisputeHandler{
		auth:        auth,
		arbitrators: arbitrators,
		resolutions: NewResolutionBucket(),
		bills:       bills,
	})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		confPkg, func() gconf.OwnedConfig { return &Configuration{} }, auth, nil))
}

// RegisterQuery exposes the registry as "/arbitrators" and decisions as
// "/resolutions".
func RegisterQuery(qr billchain.QueryRouter) {
	NewArbitratorBucket().Register("arbitrators", qr)
	NewResolutionBucket().Register("resolutions", qr)
}

func requireOwner(ctx billchain.Context, db billchain.ReadOnlyKVStore, auth x.Authenticator) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, conf.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "dispute owner signature required")
	}
	return nil
}

type addArbitratorHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ billchain.Handler = (*addArbitratorHandler)(nil)

func (h *addArbitratorHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: registryCost}, nil
}

func (h *addArbitratorHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	a := Arbitrator{
		Metadata: &billchain.Metadata{Schema: 1},
		Name:     msg.Name,
	}
	if _, err := h.bucket.Put(db, msg.Arbitrator, &a); err != nil {
		return nil, errors.Wrap(err, "save arbitrator")
	}
	billchain.GetLogger(ctx).Info("arbitrator added", "arbitrator", msg.Arbitrator, "name", msg.Name)
	return &billchain.DeliverResult{Data: msg.Arbitrator}, nil
}

func (h *addArbitratorHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*AddArbitratorMsg, error) {
	var msg AddArbitratorMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, msg.Arbitrator); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "arbitrator %s", msg.Arbitrator)
	}
	return &msg, nil
}

type removeArbitratorHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
}

var _ billchain.Handler = (*removeArbitratorHandler)(nil)

func (h *removeArbitratorHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: registryCost}, nil
}

func (h *removeArbitratorHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.Arbitrator); err != nil {
		return nil, errors.Wrap(err, "delete arbitrator")
	}
	billchain.GetLogger(ctx).Info("arbitrator removed", "arbitrator", msg.Arbitrator)
	return &billchain.DeliverResult{}, nil
}

func (h *removeArbitratorHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*RemoveArbitratorMsg, error) {
	var msg RemoveArbitratorMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := requireOwner(ctx, db, h.auth); err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, msg.Arbitrator); err != nil {
		return nil, err
	}
	return &msg, nil
}

type resolveDisputeHandler struct {
	auth        x.Authenticator
	arbitrators orm.ModelBucket
	resolutions orm.ModelBucket
	bills       bill.Controller
}

var _ billchain.Handler = (*resolveDisputeHandler)(nil)

func (h *resolveDisputeHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{GasAllocated: resolveCost}, nil
}

func (h *resolveDisputeHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	msg, b, arbitrator, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := billchain.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	r := Resolution{
		Metadata:       &billchain.Metadata{Schema: 1},
		Arbitrator:     arbitrator,
		ReleaseToPayer: msg.ReleaseToPayer,
		DisputeReason:  b.DisputeReason,
		DisputedBy:     b.DisputedBy,
		ResolvedAt:     billchain.AsUnixTime(now),
	}

	if msg.ReleaseToPayer {
		err = h.bills.Release(ctx, db, msg.BillID, b)
	} else {
		err = h.bills.Refund(ctx, db, msg.BillID, b)
	}
	if err != nil {
		return nil, err
	}
	if _, err := h.resolutions.Put(db, msg.BillID, &r); err != nil {
		return nil, errors.Wrap(err, "save resolution")
	}
	billchain.GetLogger(ctx).Info("dispute resolved",
		"bill", msg.BillID, "arbitrator", arbitrator, "release_to_payer", msg.ReleaseToPayer)
	return &billchain.DeliverResult{Data: msg.BillID}, nil
}

// validate returns the message, the disputed bill and the address of the
// signing arbitrator.
func (h *resolveDisputeHandler) validate(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*ResolveDisputeMsg, *bill.Bill, billchain.Address, error) {
	var msg ResolveDisputeMsg
	if err := billchain.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	arbitrator := h.signingArbitrator(ctx, db)
	if arbitrator == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "arbitrator signature required")
	}
	b, err := h.bills.Bill(db, msg.BillID)
	if err != nil {
		return nil, nil, nil, err
	}
	if b.Status != bill.StatusDisputed {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "cannot resolve a %s bill", b.Status)
	}
	return &msg, b, arbitrator, nil
}

// signingArbitrator returns the first signer that is a registered
// arbitrator or nil.
func (h *resolveDisputeHandler) signingArbitrator(ctx billchain.Context, db billchain.ReadOnlyKVStore) billchain.Address {
	for _, addr := range x.GetAddresses(ctx, h.auth) {
		if err := h.arbitrators.Has(db, addr); err == nil {
			return addr
		}
	}
	return nil
}
