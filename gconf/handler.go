package gconf

import (
	"reflect"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x"
)

// OwnedConfig must have an Owner field. A configuration update message must
// be signed by an owner in order to be authorized to apply the change.
type OwnedConfig interface {
	Configuration
	GetOwner() billchain.Address
}

// UpdateConfigurationHandler applies a configuration patch. The message must
// be a pointer to a struct with a "Patch" field of the configuration type.
type UpdateConfigurationHandler struct {
	pkg string
	// newConfig returns a fresh configuration instance to load the data into.
	newConfig func() OwnedConfig
	auth      x.Authenticator
	initAdmin func(billchain.ReadOnlyKVStore) (billchain.Address, error)
}

var _ billchain.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler of configuration patch
// messages signed by the configuration owner. The optional initConfAdmin
// names who may create a configuration that genesis did not declare.
func NewUpdateConfigurationHandler(
	pkg string,
	newConfig func() OwnedConfig,
	auth x.Authenticator,
	initConfAdmin func(billchain.ReadOnlyKVStore) (billchain.Address, error),
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:       pkg,
		newConfig: newConfig,
		auth:      auth,
		initAdmin: initConfAdmin,
	}
}

func (h UpdateConfigurationHandler) Check(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.CheckResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	return &billchain.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) (*billchain.DeliverResult, error) {
	if err := h.applyTx(ctx, db, tx); err != nil {
		return nil, err
	}
	billchain.GetLogger(ctx).Info("configuration updated", "package", h.pkg)
	return &billchain.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) applyTx(ctx billchain.Context, db billchain.KVStore, tx billchain.Tx) error {
	config := h.newConfig()
	if err := h.authorize(ctx, db, config); err != nil {
		return err
	}
	payload, err := patchPayload(tx)
	if err != nil {
		return errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return errors.Wrap(err, "cannot patch config with message payload")
	}
	return errors.Wrap(Save(db, h.pkg, config), "cannot save updated config")
}

// authorize loads the current configuration into config and requires the
// signature of its owner. When no configuration exists yet, the signature of
// the init admin is required instead.
func (h UpdateConfigurationHandler) authorize(ctx billchain.Context, db billchain.KVStore, config OwnedConfig) error {
	err := Load(db, h.pkg, config)
	switch {
	case err == nil:
		owner := config.GetOwner()
		if owner == nil {
			return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
		}
		if !h.auth.HasAddress(ctx, owner) {
			return errors.Wrap(errors.ErrUnauthorized, "owner did not sign transaction")
		}
		return nil
	case !errors.ErrNotFound.Is(err):
		return errors.Wrap(err, "load current configuration")
	case h.initAdmin == nil:
		return errors.Wrapf(err, "%s configuration not initialized", h.pkg)
	}

	admin, err := h.initAdmin(db)
	if err != nil {
		return errors.Wrap(err, "get init admin")
	}
	if !h.auth.HasAddress(ctx, admin) {
		return errors.Wrap(errors.ErrUnauthorized, "initialization admin signature required")
	}
	return nil
}

// patch copies every non zero field of payload into config.
func patch(config, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}
	dst := reflect.ValueOf(config).Elem()
	src := reflect.ValueOf(payload).Elem()
	for i := 0; i < src.NumField(); i++ {
		if f := src.Field(i); !isZero(f) {
			dst.Field(i).Set(f)
		}
	}
	return nil
}

func isZero(val reflect.Value) bool {
	return reflect.DeepEqual(val.Interface(), reflect.Zero(val.Type()).Interface())
}

// patchPayload returns the content of the Patch field of the transaction
// message. The field must hold a pointer to the configuration type.
func patchPayload(tx billchain.Tx) (OwnedConfig, error) {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return nil, err
	case msg == nil:
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := v.Elem().FieldByName("Patch")
	switch {
	case !field.IsValid() || field.Kind() != reflect.Ptr:
		return nil, errors.Wrapf(errors.ErrInput, "%T has no Patch field", msg)
	case field.IsNil():
		return nil, errors.Wrap(errors.ErrState, "Patch field is required")
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "Patch field is of a wrong type")
	}
	return payload, nil
}
