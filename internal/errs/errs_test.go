package errs

import (
	"errors"
	"testing"
)

func TestConfigErrorUnwrap(t *testing.T) {
	cause := errors.New("no tsconfig.json found")
	err := NewConfigError("missing project file", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
	if got := err.Error(); got == "" {
		t.Errorf("expected a non-empty message")
	}
}

func TestConfigErrorWithoutCause(t *testing.T) {
	err := NewConfigError("inconsistent flags", nil)
	if got, want := err.Error(), "config error: inconsistent flags"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestProtocolViolationUnwrap(t *testing.T) {
	cause := errors.New("unrecognized item edge combination")
	err := NewProtocolViolation(cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the wrapped cause")
	}
}

func TestStateAssertionMessage(t *testing.T) {
	err := NewStateAssertion("partition closed twice")
	if got, want := err.Error(), "state assertion failed: partition closed twice"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInternalSymbolLeakMessage(t *testing.T) {
	err := NewInternalSymbolLeak("x", "a.ts")
	if got, want := err.Error(), `internal symbol "x" leaked beyond its scope in a.ts`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
