// Package report implements the Reporter spec §7 calls for: the sink that
// InternalSymbolLeak and CompilerFault errors flow through, with behavior
// gated by strict/lenient mode.
package report

import (
	"github.com/hashicorp/go-multierror"

	"github.com/tscodeintel/lsif-ecma/internal/errs"
	"github.com/tscodeintel/lsif-ecma/internal/log"
)

// Mode selects how an InternalSymbolLeak is handled.
type Mode int

const (
	// Lenient logs InternalSymbolLeak as a warning and continues.
	Lenient Mode = iota
	// Strict returns InternalSymbolLeak from Leak, aborting the run.
	Strict
)

// Reporter collects CompilerFaults (always recoverable) and dispatches
// InternalSymbolLeaks according to Mode.
type Reporter struct {
	mode   Mode
	faults *multierror.Error
}

// New returns a Reporter in the given mode.
func New(mode Mode) *Reporter {
	return &Reporter{mode: mode}
}

// Fault records a CompilerFault. The caller must still skip the offending
// identifier; Fault never aborts (spec §7: "logged, the offending identifier
// is skipped").
func (r *Reporter) Fault(err *errs.CompilerFault) {
	log.Warnf("compiler fault: %v", err)
	r.faults = multierror.Append(r.faults, err)
}

// Leak records an InternalSymbolLeak. In Lenient mode it is logged and nil
// is returned; in Strict mode it is returned so the caller aborts.
func (r *Reporter) Leak(err *errs.InternalSymbolLeak) error {
	if r.mode == Strict {
		return err
	}
	log.Warnf("%v", err)
	return nil
}

// Faults returns every CompilerFault recorded so far, or nil if none were.
func (r *Reporter) Faults() error {
	if r.faults == nil {
		return nil
	}
	return r.faults.ErrorOrNil()
}
