package sigs

import "github.com/iov-one/billchain/errors"

// ErrInvalidSequence is returned when a signature sequence does not match the
// signer nonce.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
