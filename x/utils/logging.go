package utils

import (
	"time"

	"github.com/iov-one/billchain"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ billchain.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx, next billchain.Checker) (*billchain.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx billchain.Context, store billchain.KVStore, tx billchain.Tx, next billchain.Deliverer) (*billchain.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx billchain.Context, tx billchain.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := billchain.GetLogger(ctx).With(
		"path", billchain.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// An entry is emitted even for an empty message, the key/values carry
	// the relevant information.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
