package errors

import (
	"github.com/pkg/errors"
)

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the trace of the innermost error in the cause chain that
// recorded one.
func stackTrace(err error) errors.StackTrace {
	var res errors.StackTrace
	for ; err != nil; err = cause(err) {
		if st, ok := err.(stackTracer); ok {
			res = st.StackTrace()
		}
	}
	return res
}
