package errors

import "fmt"

// SuccessABCICode is the code of a response that carries no error.
const SuccessABCICode = 0

// Errors that were not registered in this package share one code. Outside of
// debug mode their message is replaced so that no internal detail leaks to
// the client.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo translates err into the code and the log of an ABCI response.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first registered error found in the
// cause chain.
func abciCode(err error) uint32 {
	for e := err; e != nil; e = cause(e) {
		if c, ok := e.(coder); ok {
			return c.ABCICode()
		}
	}
	return internalABCICode
}
