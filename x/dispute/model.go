package dispute

import (
	"regexp"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/orm"
)

var isName = regexp.MustCompile(`^[a-zA-Z0-9_\-. ]{3,64}$`).MatchString

// Arbitrator is allowed to resolve disputed bills. It is stored under its
// address.
type Arbitrator struct {
	Metadata *billchain.Metadata `json:"metadata"`
	Name     string              `json:"name"`
}

var _ orm.Model = (*Arbitrator)(nil)

func (a *Arbitrator) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	if !isName(a.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(errors.ErrInput, "invalid name %q", a.Name))
	}
	return errs
}

func (a *Arbitrator) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Arbitrator) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

// NewArbitratorBucket returns the arbitrator registry keyed by address.
func NewArbitratorBucket() orm.ModelBucket {
	return orm.NewModelBucket("arbitrator", &Arbitrator{})
}

// Resolution is the decision of an arbitrator about a single bill. It is
// stored under the bill ID.
type Resolution struct {
	Metadata       *billchain.Metadata `json:"metadata"`
	Arbitrator     billchain.Address   `json:"arbitrator"`
	ReleaseToPayer bool                `json:"release_to_payer"`
	// DisputeReason and DisputedBy are copied from the bill, which does not
	// keep them once resolved.
	DisputeReason string             `json:"dispute_reason"`
	DisputedBy    billchain.Address  `json:"disputed_by"`
	ResolvedAt    billchain.UnixTime `json:"resolved_at"`
}

var _ orm.Model = (*Resolution)(nil)

func (r *Resolution) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", r.Metadata.Validate())
	errs = errors.AppendField(errs, "Arbitrator", r.Arbitrator.Validate())
	if r.DisputeReason == "" {
		errs = errors.AppendField(errs, "DisputeReason", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "DisputedBy", r.DisputedBy.Validate())
	errs = errors.AppendField(errs, "ResolvedAt", r.ResolvedAt.Validate())
	return errs
}

func (r *Resolution) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(r)
}

func (r *Resolution) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, r)
}

func arbitratorIndexer(obj orm.Model) ([]byte, error) {
	r, ok := obj.(*Resolution)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj)
	}
	return r.Arbitrator, nil
}

// NewResolutionBucket returns the bucket of resolutions keyed by the bill ID
// and indexed by the arbitrator.
func NewResolutionBucket() orm.ModelBucket {
	return orm.NewModelBucket("resolution", &Resolution{},
		orm.WithIndex("arbitrator", arbitratorIndexer, false),
	)
}
