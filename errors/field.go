package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of a model or message field to err. Nested fields
// use dot notation, for example Limits.MaxAmount. A nil err gives nil.
func Field(name string, err error, format string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return &fieldError{name: name, desc: format, parent: err}
}

// AppendField adds the field error, if any, to errs.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	name   string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	msg := e.parent.Error()
	if e.desc != "" {
		msg = e.desc + ": " + msg
	}
	return fmt.Sprintf("field %q: %s", e.name, msg)
}

func (e *fieldError) Cause() error {
	return e.parent
}

// FieldErrors collects the errors attached to the named field. Every member
// of a group created with Append is searched.
func FieldErrors(err error, name string) []error {
	var res []error
	for e := err; !isNilErr(e); e = cause(e) {
		if f, ok := e.(*fieldError); ok && f.name == name {
			return append(res, e)
		}
		if u, ok := e.(unpacker); ok {
			for _, member := range u.Unpack() {
				res = append(res, FieldErrors(member, name)...)
			}
			return res
		}
	}
	return res
}
