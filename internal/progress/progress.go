// Package progress drives the animated terminal output shown while a
// project is indexed, mirroring the teacher's internal/output package:
// a pentimento throbber when stdout is a real terminal, a static line
// otherwise (spec 2A ambient stack).
package progress

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/efritz/pentimento"
	"github.com/mattn/go-isatty"

	"github.com/tscodeintel/lsif-ecma/internal/util"
)

// Verbosity controls how much is printed around a tracked phase.
type Verbosity int

const (
	NoOutput Verbosity = iota
	DefaultOutput
	VerboseOutput
)

// Options configures a Reporter.
type Options struct {
	Verbosity      Verbosity
	ShowAnimations bool
}

// DetectTTY reports whether fd is connected to a real terminal, the same
// gate the teacher's progress package uses to decide whether to animate.
func DetectTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var updateInterval = time.Second / 4

var ticker = pentimento.NewAnimatedString([]string{
	"⠸", "⠼",
	"⠴", "⠦",
	"⠧", "⠇",
	"⠏", "⠋",
	"⠙", "⠹",
}, updateInterval)

const successPrefix = "✔"

// Reporter tracks one named phase of work (one project, by convention) and
// prints its progress as the Visitor's source-file loop advances.
type Reporter struct {
	name    string
	options Options
	total   uint64
	done    uint64
	start   time.Time
	printer *pentimento.Printer
	stop    chan struct{}
	stopped chan struct{}
}

// Start begins tracking name, expected to run over total units of work (for
// an indexing run, the project's file count). Every call must be paired with
// Done.
func Start(name string, total int, options Options) *Reporter {
	r := &Reporter{name: name, options: options, total: uint64(total), start: time.Now()}

	if options.Verbosity == NoOutput {
		return r
	}

	if !options.ShowAnimations {
		fmt.Printf("%s\n", name)
		return r
	}

	fmt.Printf("%s %s... ", ticker, name)
	r.stop = make(chan struct{})
	r.stopped = make(chan struct{})

	go func() {
		defer close(r.stopped)
		_ = pentimento.PrintProgress(func(printer *pentimento.Printer) error {
			defer func() { _ = printer.Reset() }()
			for {
				select {
				case <-r.stop:
					return nil
				case <-time.After(updateInterval):
				}
				r.render(printer)
			}
		})
	}()

	return r
}

func (r *Reporter) render(printer *pentimento.Printer) {
	content := pentimento.NewContent()
	content.AddLine("%s %s... %d/%d", ticker, r.name, atomic.LoadUint64(&r.done), r.total)
	printer.WriteContent(content)
}

// Advance marks one more unit of total as complete (one source file done).
func (r *Reporter) Advance() {
	atomic.AddUint64(&r.done, 1)
}

// Done stops the tracker and prints a completion line.
func (r *Reporter) Done() {
	if r.options.Verbosity == NoOutput {
		return
	}
	if r.stop != nil {
		close(r.stop)
		<-r.stopped
	}

	if r.options.Verbosity >= VerboseOutput {
		fmt.Printf("%s %s... Done (%s)\n", successPrefix, r.name, util.HumanElapsed(r.start))
	} else {
		fmt.Printf("%s %s... Done\n", successPrefix, r.name)
	}
}
