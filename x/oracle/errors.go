package oracle

import "github.com/iov-one/billchain/errors"

// ErrInvalidSignature is returned for any attestation that cannot be
// accepted: unknown signer, bad signature, wrong domain, stale or replayed.
var ErrInvalidSignature = errors.Register(1200, "invalid oracle signature")
