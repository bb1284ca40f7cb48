// The program lsif-ecma is an LSIF indexer for a statically typed
// ECMAScript-family language. It wires a compiler front-end binding
// (implementing internal/checker's contracts) to the Graph Builder,
// Emitter, Data Manager, Symbol Resolver, and Visitor.
//
// No concrete front-end ships in this repository (spec §1: out of scope,
// contracts only), so Loader must be set by an embedder that links a real
// compiler binding into this command before main runs; see loader.go.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/alecthomas/kingpin"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/config"
	"github.com/tscodeintel/lsif-ecma/internal/datamanager"
	"github.com/tscodeintel/lsif-ecma/internal/emit"
	"github.com/tscodeintel/lsif-ecma/internal/errs"
	"github.com/tscodeintel/lsif-ecma/internal/log"
	"github.com/tscodeintel/lsif-ecma/internal/pkgmeta"
	"github.com/tscodeintel/lsif-ecma/internal/progress"
	"github.com/tscodeintel/lsif-ecma/internal/project"
	"github.com/tscodeintel/lsif-ecma/internal/report"
	"github.com/tscodeintel/lsif-ecma/internal/resolver"
	"github.com/tscodeintel/lsif-ecma/internal/util"
	"github.com/tscodeintel/lsif-ecma/internal/visitor"
	"github.com/tscodeintel/lsif-ecma/internal/writer"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

const versionNumber = "0.1.0"
const versionString = versionNumber + ", protocol version " + protocol.Version

// knownFormats lists the flag values --format accepts, used both for
// validation and for the "did you mean" suggestion on an unrecognized value.
var knownFormats = []string{
	string(writer.FormatNDJSON),
	string(writer.FormatPretty),
	string(writer.FormatGraphViz),
	string(writer.FormatGraphDB),
}

var knownIDModes = []string{string(config.IDModeSequential), string(config.IDModeUUID)}

func main() {
	if err := realMain(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error kind to the process exit status (spec §6): 1 for
// configuration/usage failures, a distinct negative code per always-fatal
// kind so a caller scripting this binary can distinguish them.
func exitCode(err error) int {
	switch err.(type) {
	case *errs.ConfigError:
		return 1
	case *errs.ProtocolViolation:
		return -1
	case *errs.StateAssertion:
		return -2
	case *errs.InternalSymbolLeak:
		return -3
	default:
		return 1
	}
}

type cliFlags struct {
	outFile        string
	format         string
	gzipOut        bool
	idMode         string
	strictLeaks    bool
	addContents    bool
	projectRoot    string
	packageName    string
	packageVersion string
	noProgress     bool
	verboseOutput  bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	app := kingpin.New("lsif-ecma", "lsif-ecma indexes a statically typed ECMAScript-family project into LSIF.").Version(versionString)
	app.HelpFlag.Short('h')
	app.VersionFlag.Short('v')
	app.HelpFlag.Hidden()

	app.Flag("out", "The output file.").Short('o').Default("dump.lsif").StringVar(&f.outFile)
	app.Flag("format", "The emitted dump format: ndjson, pretty, graphviz, or graphdb.").Default(string(writer.FormatNDJSON)).StringVar(&f.format)
	app.Flag("gzip", "Gzip-compress the output file.").Default("false").BoolVar(&f.gzipOut)
	app.Flag("ids", "The id generation strategy: sequential or uuid.").Default(string(config.IDModeSequential)).StringVar(&f.idMode)
	app.Flag("strict", "Abort the run if an internal symbol leaks beyond its scope.").Default("false").BoolVar(&f.strictLeaks)
	app.Flag("addContents", "Embed file contents into the dump.").Default("false").BoolVar(&f.addContents)
	app.Flag("projectRoot", "The root directory of the project being indexed.").Default(".").StringVar(&f.projectRoot)
	app.Flag("package", "This project's own package name, for export monikers.").StringVar(&f.packageName)
	app.Flag("packageVersion", "This project's own package version, for export monikers.").StringVar(&f.packageVersion)
	app.Flag("noProgress", "Do not print progress output.").Default("false").BoolVar(&f.noProgress)
	app.Flag("verbose", "Display timings after indexing.").Default("false").BoolVar(&f.verboseOutput)

	if _, err := app.Parse(args); err != nil {
		return nil, errs.NewConfigError(err.Error(), nil)
	}
	return f, nil
}

func realMain(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.ToolName = "lsif-ecma"
	cfg.ToolVersion = versionNumber
	cfg.Gzip = f.gzipOut
	cfg.EmbedContents = f.addContents
	cfg.ShowProgress = !f.noProgress

	format, err := parseFormat(f.format)
	if err != nil {
		return err
	}
	cfg.Format = format

	switch f.idMode {
	case string(config.IDModeUUID):
		cfg.IDs = config.IDModeUUID
	case string(config.IDModeSequential):
		cfg.IDs = config.IDModeSequential
	default:
		return errs.NewConfigError(suggestFlag("--ids", f.idMode, knownIDModes), nil)
	}

	if f.strictLeaks {
		cfg.LeakMode = report.Strict
	}

	absRoot, err := filepath.Abs(f.projectRoot)
	if err != nil {
		return errs.NewConfigError("resolve project root", err)
	}
	cfg.ProjectRoot = absRoot

	if Loader == nil {
		return errs.NewConfigError("no compiler front-end registered: this build of lsif-ecma was not linked against a Program loader (see cmd/lsif-ecma/loader.go)", nil)
	}
	root, err := Loader(absRoot)
	if err != nil {
		return errs.NewConfigError("load project", err)
	}

	out, err := os.Create(f.outFile)
	if err != nil {
		return errs.NewConfigError("create output file", err)
	}
	defer out.Close()

	var dst io.Writer = out
	var closeGzip func() error
	if cfg.Gzip {
		dst, closeGzip = writer.WrapGzip(out)
	}

	sink, err := writer.New(cfg.Format, dst)
	if err != nil {
		return err
	}

	manifest := pkgmeta.NewManifest(f.packageName, f.packageVersion, nil)

	start := time.Now()
	numFiles, numElements, err := runIndex(root, cfg, sink, manifest)
	if err != nil {
		return err
	}
	if closeGzip != nil {
		if err := closeGzip(); err != nil {
			return errs.NewConfigError("finalize gzip output", err)
		}
	}

	fmt.Printf("%d file(s), %d element(s)\n", numFiles, numElements)
	if f.verboseOutput {
		fmt.Printf("indexed in %s\n", util.HumanElapsed(start))
	}
	return nil
}

// runIndex drives one full run: metaData, then the dependency-project
// scheduler over root and its references, then finalization.
func runIndex(root checker.Program, cfg config.Config, sink protocol.Sink, manifest *pkgmeta.Manifest) (numFiles int, numElements uint64, err error) {
	gen := cfg.IDGenerator()
	emitter := emit.New(gen, sink)

	if err := emitter.Start(); err != nil {
		return 0, 0, err
	}

	if _, err := emitter.MetaData(cfg.ProjectRoot, protocol.ToolInfo{Name: cfg.ToolName, Version: cfg.ToolVersion, Args: os.Args[1:]}); err != nil {
		return 0, 0, err
	}

	reporter := report.New(cfg.LeakMode)
	scheduler := project.New()

	err = scheduler.Run(context.Background(), root, func(ctx context.Context, p checker.Program) error {
		n, err := indexProgram(ctx, p, emitter, reporter, cfg, manifest)
		numFiles += n
		return err
	})
	if err != nil {
		return numFiles, emitter.NumElements(), err
	}

	if err := emitter.Flush(); err != nil {
		return numFiles, emitter.NumElements(), err
	}
	if err := emitter.End(); err != nil {
		return numFiles, emitter.NumElements(), err
	}
	if err := reporter.Faults(); err != nil {
		log.Warnf("completed with recoverable faults: %v", err)
	}

	return numFiles, emitter.NumElements(), nil
}

func indexProgram(_ context.Context, p checker.Program, emitter *emit.Emitter, reporter *report.Reporter, cfg config.Config, self *pkgmeta.Manifest) (int, error) {
	resolve := resolver.New(emitter, "", self, self)
	manager := datamanager.New(emitter, resolve)
	if err := manager.BeginProject(p.Name(), nil); err != nil {
		return 0, err
	}
	resolve.SetProjectID(manager.ProjectID())

	var prog visitor.Progress
	if cfg.ShowProgress {
		r := progress.Start(p.Name(), len(p.Files()), progress.Options{Verbosity: progress.DefaultOutput, ShowAnimations: progress.DetectTTY(os.Stdout)})
		defer r.Done()
		prog = r
	}

	v := visitor.New(emitter, manager, resolve, reporter, cfg.EmbedContents, prog)
	if err := v.VisitProgram(p); err != nil {
		return 0, err
	}

	if err := manager.ProjectDone(); err != nil {
		return 0, err
	}

	return len(p.Files()), nil
}

func parseFormat(value string) (writer.Format, error) {
	for _, f := range knownFormats {
		if f == value {
			return writer.Format(value), nil
		}
	}
	return "", errs.NewConfigError(suggestFlag("--format", value, knownFormats), nil)
}

// suggestFlag builds a "did you mean" message for an unrecognized flag
// value, using edit distance against the known values.
func suggestFlag(flag, got string, known []string) string {
	best := ""
	bestDist := -1
	for _, k := range known {
		d := levenshtein.ComputeDistance(got, k)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = k
		}
	}
	if best != "" && bestDist <= 3 {
		return fmt.Sprintf("unrecognized %s value %q, did you mean %q?", flag, got, best)
	}
	return fmt.Sprintf("unrecognized %s value %q", flag, got)
}
