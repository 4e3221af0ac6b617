package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. If only one non-nil error
// is given, that error is returned as it is.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors. It is flat: appending a multiErr
// to another multiErr merges both lists.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(errs), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, following the fail-fast
// approach.
func (errs multiErr) ABCICode() uint32 {
	return abciCode(errs[0])
}

// Unpack returns all errors that this group consists of.
func (errs multiErr) Unpack() []error {
	return errs
}

type unpacker interface {
	Unpack() []error
}
