// Package errs defines the error kinds spec §7 names, each carrying enough
// context for the Reporter to log it and for the driver to decide whether
// it aborts the run.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConfigError is a missing project file, unparseable configuration, or
// inconsistent flags. Always aborts the run.
type ConfigError struct {
	Reason string
	Cause  error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Reason, e.Cause)
	}
	return "config error: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Cause }

// NewConfigError wraps cause (if any) as a ConfigError.
func NewConfigError(reason string, cause error) *ConfigError {
	return &ConfigError{Reason: reason, Cause: errors.WithStack(cause)}
}

// ProtocolViolation is an attempt to construct an edge whose endpoints are
// malformed (spec §4.1 item rules). Always fatal.
type ProtocolViolation struct {
	Cause error
}

func (e *ProtocolViolation) Error() string {
	return fmt.Sprintf("protocol violation: %v", e.Cause)
}

func (e *ProtocolViolation) Unwrap() error { return e.Cause }

// NewProtocolViolation wraps cause as a ProtocolViolation.
func NewProtocolViolation(cause error) *ProtocolViolation {
	return &ProtocolViolation{Cause: errors.WithStack(cause)}
}

// CompilerFault is the type-checker failing to resolve a position or
// returning inconsistent declarations. Recoverable: the offending
// identifier is skipped after it is logged.
type CompilerFault struct {
	File   string
	Reason string
	Cause  error
}

func (e *CompilerFault) Error() string {
	return fmt.Sprintf("compiler fault in %s: %s", e.File, e.Reason)
}

func (e *CompilerFault) Unwrap() error { return e.Cause }

// NewCompilerFault constructs a CompilerFault for the given file.
func NewCompilerFault(file, reason string, cause error) *CompilerFault {
	return &CompilerFault{File: file, Reason: reason, Cause: cause}
}

// InternalSymbolLeak is a non-exported symbol referenced beyond its emission
// scope. Lenient mode: reported and the run continues. Strict mode: fatal.
type InternalSymbolLeak struct {
	SymbolName string
	File       string
}

func (e *InternalSymbolLeak) Error() string {
	return fmt.Sprintf("internal symbol %q leaked beyond its scope in %s", e.SymbolName, e.File)
}

// NewInternalSymbolLeak constructs an InternalSymbolLeak.
func NewInternalSymbolLeak(symbolName, file string) *InternalSymbolLeak {
	return &InternalSymbolLeak{SymbolName: symbolName, File: file}
}

// StateAssertion is a violated lifecycle invariant (e.g. closing a partition
// twice). Always a bug; always fatal.
type StateAssertion struct {
	Reason string
}

func (e *StateAssertion) Error() string {
	return "state assertion failed: " + e.Reason
}

// NewStateAssertion constructs a StateAssertion.
func NewStateAssertion(reason string) *StateAssertion {
	return &StateAssertion{Reason: reason}
}
