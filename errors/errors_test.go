package errors

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrUnauthorized,
			b:      ErrUnauthorized,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrUnauthorized,
			b:      ErrState,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrUnauthorized,
			b:      Wrap(ErrUnauthorized, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrUnauthorized,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrUnauthorized,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrUnauthorized,
			b:      errors.Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*wrappedError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrUnauthorized,
			wantIs: false,
		},
		"multi error contains the kind": {
			a:      ErrExpired,
			b:      Append(ErrEmpty, Wrap(ErrExpired, "late")),
			wantIs: true,
		},
		"field error is unwrapped": {
			a:      ErrAmount,
			b:      Field("Amount", ErrAmount, "negative"),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	Register(ErrUnauthorized.code, "again")
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
	if err := Wrapf(nil, "wrapping <%s>", "nil"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("boom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"no error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      ErrNotFound.New("bill 1"),
			wantCode: ErrNotFound.code,
			wantLog:  "bill 1: not found",
		},
		"stdlib error is redacted": {
			err:      stderr.New("disk on fire"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"multi error uses the first code": {
			err:      Append(ErrEmpty, ErrState),
			wantCode: ErrEmpty.code,
			wantLog:  Append(ErrEmpty, ErrState).Error(),
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestFieldErrors(t *testing.T) {
	var (
		amountErr = Field("Amount", ErrAmount, "negative")
		makerErr  = Field("Maker", ErrEmpty, "required")
	)
	combined := Append(amountErr, makerErr)

	if got := FieldErrors(combined, "Amount"); len(got) != 1 || got[0] != amountErr {
		t.Fatalf("unexpected amount errors: %v", got)
	}
	if got := FieldErrors(combined, "Maker"); len(got) != 1 || got[0] != makerErr {
		t.Fatalf("unexpected maker errors: %v", got)
	}
	if got := FieldErrors(combined, "Payer"); len(got) != 0 {
		t.Fatalf("unexpected payer errors: %v", got)
	}
	if got := AppendField(nil, "Payer", nil); got != nil {
		t.Fatalf("want nil, got %v", got)
	}
}
