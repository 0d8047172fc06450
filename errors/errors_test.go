package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind  *Error
		err   error
		match bool
	}{
		"instance of the same root": {
			kind:  ErrAccountData,
			err:   ErrAccountData,
			match: true,
		},
		"wrapped instance": {
			kind:  ErrAccountData,
			err:   Wrap(ErrAccountData, "holding does not match"),
			match: true,
		},
		"deeply wrapped instance": {
			kind:  ErrOverflow,
			err:   Wrap(Wrap(ErrOverflow, "rent refund"), "withdraw"),
			match: true,
		},
		"different root": {
			kind:  ErrAccountData,
			err:   ErrMissingSignature,
			match: false,
		},
		"stdlib error": {
			kind:  ErrAccountData,
			err:   errors.New("invalid account data"),
			match: false,
		},
		"nil error": {
			kind:  ErrAccountData,
			err:   nil,
			match: false,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.match, tc.kind.Is(tc.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "noop"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrappedErrorMessage(t *testing.T) {
	err := Wrap(ErrNotRentExempt, "escrow record")
	assert.Equal(t, "escrow record: account not rent exempt", err.Error())
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		code uint32
	}{
		"root error":      {ErrMissingSignature, 9},
		"wrapped":         {Wrap(ErrNotRentExempt, "record"), 10},
		"double wrapped":  {Wrap(Wrap(ErrOverflow, "a"), "b"), 13},
		"stdlib internal": {errors.New("invalid"), 1},
		"nil":             {nil, 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.code, Code(tc.err))
		})
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on duplicated error code registration")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestRedact(t *testing.T) {
	if msg := Redact(errors.New("secret")).Error(); msg != internalDesc {
		t.Fatalf("stdlib error must be redacted, got %q", msg)
	}
	if msg := Redact(Wrapf(ErrPanic, "seen: %v", "secret")).Error(); strings.Contains(msg, "secret") {
		t.Fatalf("panic error must be redacted, got %q", msg)
	}
	err := Wrap(ErrAccountData, "wrong holding")
	if got := Redact(err); got != err {
		t.Fatalf("coded error must pass through redaction, got %v", got)
	}
}

func TestStacktraceAttached(t *testing.T) {
	err := Wrap(ErrInput, "bad amount")
	if stackTrace(err) == nil {
		t.Fatal("wrapped error must carry a stacktrace")
	}
	// Only the message for %s, trace details for %+v.
	assert.Equal(t, "bad amount: invalid input", fmt.Sprintf("%s", err))
	if !strings.Contains(fmt.Sprintf("%+v", err), "errors_test.go") {
		t.Fatalf("%s must contain the creation frame", "%+v")
	}
}

func TestRecover(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("kaboom")
	}()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}
