package oracle

import (
	"regexp"
	"time"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/gconf"
)

const confPkg = "oracle"

// DefaultFreshnessWindow is the maximum age of an attestation when the
// configuration does not declare one.
const DefaultFreshnessWindow = 5 * time.Minute

var isDeployment = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{1,64}$`).MatchString

// Configuration of the oracle subsystem.
type Configuration struct {
	Metadata *billchain.Metadata `json:"metadata"`
	// Owner can add and remove oracles.
	Owner billchain.Address `json:"owner"`
	// Deployment and ServiceAddress are part of the domain separator.
	Deployment      string                 `json:"deployment"`
	ServiceAddress  billchain.Address      `json:"service_address"`
	FreshnessWindow billchain.UnixDuration `json:"freshness_window"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	errs = errors.AppendField(errs, "Deployment", ValidateDeployment(c.Deployment))
	errs = errors.AppendField(errs, "ServiceAddress", c.ServiceAddress.Validate())
	if c.FreshnessWindow < 0 {
		errs = errors.AppendField(errs, "FreshnessWindow", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	return errs
}

// ValidateDeployment returns an error if d cannot identify a deployment.
func ValidateDeployment(d string) error {
	if !isDeployment(d) {
		return errors.Wrapf(errors.ErrInput, "invalid deployment %q", d)
	}
	return nil
}

func (c *Configuration) GetOwner() billchain.Address {
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// freshness returns the configured window or the default one.
func (c *Configuration) freshness() time.Duration {
	if c.FreshnessWindow == 0 {
		return DefaultFreshnessWindow
	}
	return c.FreshnessWindow.Duration()
}

func loadConf(db billchain.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load oracle configuration")
	}
	return &conf, nil
}
