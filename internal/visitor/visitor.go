// Package visitor implements the Visitor (spec §4.5): it drives a
// depth-first walk of every source file in a Program, classifies each node,
// and calls into the Data Manager, Resolver (indirectly, through the Data
// Manager) and Graph Builder to produce ranges, result-set links, and
// per-document partitions. This is the largest of the five components
// (spec §2: "45%").
package visitor

import (
	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/datamanager"
	"github.com/tscodeintel/lsif-ecma/internal/emit"
	"github.com/tscodeintel/lsif-ecma/internal/errs"
	"github.com/tscodeintel/lsif-ecma/internal/idkey"
	"github.com/tscodeintel/lsif-ecma/internal/report"
	"github.com/tscodeintel/lsif-ecma/internal/resolver"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Progress is the subset of internal/progress.Reporter the Visitor drives;
// satisfied by *progress.Reporter, kept as an interface so tests can run
// without pulling in the terminal-animation dependency.
type Progress interface {
	Advance()
}

// declKinds are the node kinds that themselves name a declared symbol
// (spec §4.5 step 1's "container-declaration", extended per spec §4.4's
// emit-boundary table to every kind that can scope a symbol — parameters,
// type-parameters and block-scoped bindings declare exactly as much as a
// function or class does, they just rarely get a document-symbol entry).
var declKinds = map[checker.NodeKind]bool{
	checker.KindModuleDecl:    true,
	checker.KindClassDecl:     true,
	checker.KindInterfaceDecl: true,
	checker.KindFunctionDecl:  true,
	checker.KindMethodDecl:    true,
	checker.KindVariableDecl:  true,
	checker.KindParameter:     true,
	checker.KindTypeParameter: true,
}

func kindLabel(k checker.NodeKind) string {
	switch k {
	case checker.KindModuleDecl:
		return "module"
	case checker.KindClassDecl, checker.KindClassExpression:
		return "class"
	case checker.KindInterfaceDecl:
		return "interface"
	case checker.KindFunctionDecl, checker.KindFunctionExpression:
		return "function"
	case checker.KindMethodDecl:
		return "method"
	case checker.KindArrowFunction:
		return "arrow"
	case checker.KindParameter:
		return "parameter"
	case checker.KindTypeParameter:
		return "typeParameter"
	case checker.KindVariableDecl:
		return "variable"
	default:
		return "unknown"
	}
}

func posOf(p checker.Position) protocol.Pos {
	return protocol.Pos{Line: p.Line, Character: p.Character}
}

func spanOf(s checker.Span) [2]protocol.Pos {
	return [2]protocol.Pos{posOf(s.Start), posOf(s.End)}
}

// Visitor drives one Program's traversal, emitting through e and routing
// lifecycle through m. reporter receives CompilerFault/InternalSymbolLeak
// occurrences (spec §7); progress, if non-nil, is advanced once per file.
type Visitor struct {
	emitter  *emit.Emitter
	manager  *datamanager.DataManager
	resolve  *resolver.Resolver
	reporter *report.Reporter
	progress Progress

	// embedContents mirrors Config.EmbedContents: whether document/project
	// vertices carry base64 file contents.
	embedContents bool

	// compositeSeen memoizes composite-return-type expansion by the
	// declaring symbol's identity key, so a method visited once per
	// declaration doesn't re-expand its return type on every pass (spec
	// §4.5: "memoized by symbol-key").
	compositeSeen map[idkey.Key]bool
}

// New returns a Visitor for one project's traversal.
func New(e *emit.Emitter, m *datamanager.DataManager, resolve *resolver.Resolver, reporter *report.Reporter, embedContents bool, progress Progress) *Visitor {
	return &Visitor{
		emitter:       e,
		manager:       m,
		resolve:       resolve,
		reporter:      reporter,
		progress:      progress,
		embedContents: embedContents,
		compositeSeen: map[idkey.Key]bool{},
	}
}

// fileCtx is the per-source-file state the walk threads through: the
// checker to query, the document-symbol stack (step 3), and the exported
// symbol set computed at source-file enter (step 2).
type fileCtx struct {
	path     string
	file     checker.SourceFile
	checker  checker.TypeChecker
	docStack []*protocol.DocumentSymbol
	docRoot  protocol.DocumentSymbol
	exported []checker.Symbol
}

func (c *fileCtx) pushDocSymbol(node checker.Node, rangeID protocol.ID) {
	top := c.docStack[len(c.docStack)-1]
	top.Children = append(top.Children, protocol.DocumentSymbol{
		Text:     node.Name(),
		Kind:     kindLabel(node.Kind()),
		RangeIDs: &protocol.RangeIDs{Range: rangeID, FullRange: rangeID},
	})
	c.docStack = append(c.docStack, &top.Children[len(top.Children)-1])
}

func (c *fileCtx) popDocSymbol() {
	c.docStack = c.docStack[:len(c.docStack)-1]
}

// VisitProgram walks every source file of p in order, per spec §4.5.
func (v *Visitor) VisitProgram(p checker.Program) error {
	checkerImpl := p.Checker()
	for _, file := range p.Files() {
		if err := v.visitFile(checkerImpl, file); err != nil {
			return err
		}
		if v.progress != nil {
			v.progress.Advance()
		}
	}
	return nil
}

func (v *Visitor) fileContents(file checker.SourceFile) []byte {
	if !v.embedContents {
		return nil
	}
	return file.Contents()
}

func (v *Visitor) visitFile(tc checker.TypeChecker, file checker.SourceFile) error {
	path := file.Path()
	if _, err := v.manager.GetOrCreateDocumentData(path, "file://"+path, v.fileContents(file)); err != nil {
		return err
	}

	ctx := &fileCtx{path: path, file: file, checker: tc}
	ctx.docStack = []*protocol.DocumentSymbol{&ctx.docRoot}
	ctx.exported = expandExports(file.FileSymbol())

	root := file.AST()
	if root != nil {
		if err := v.walk(ctx, root); err != nil {
			return err
		}
	}

	// step 2/end: make sure every transitively exported symbol has had its
	// symbol-data constructed (and thus its export moniker attached) even if
	// no identifier in this file ever referenced it directly, e.g. `export *`.
	for _, sym := range ctx.exported {
		if _, err := v.manager.GetOrCreateSymbolData(sym); err != nil {
			return err
		}
	}

	diagnostics := convertDiagnostics(tc.Diagnostics(file))
	v.manager.SetDiagnostics(path, diagnostics)
	v.manager.SetFolding(path, convertFolding(tc.OutliningSpans(file)))
	v.manager.SetDocumentSymbols(path, ctx.docRoot.Children)

	return v.manager.DocumentDone(path)
}

// expandExports transitively expands fileSym's Exports() map (handling
// namespace merging, where an exported namespace itself has further
// exports), deduplicated by identity key (spec §4.5 step 2).
func expandExports(fileSym checker.Symbol) []checker.Symbol {
	if fileSym == nil {
		return nil
	}
	seen := map[idkey.Key]bool{}
	var out []checker.Symbol
	var walk func(sym checker.Symbol)
	walk = func(sym checker.Symbol) {
		key := idkey.Of(sym)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, sym)
		for _, exp := range sym.Exports() {
			walk(exp)
		}
	}
	for _, exp := range fileSym.Exports() {
		walk(exp)
	}
	return out
}

func convertDiagnostics(ds []checker.Diagnostic) []protocol.Diagnostic {
	if len(ds) == 0 {
		return nil
	}
	out := make([]protocol.Diagnostic, len(ds))
	for i, d := range ds {
		out[i] = protocol.Diagnostic{
			Severity: convertSeverity(d.Severity),
			Code:     d.Code,
			Message:  d.Message,
			Range:    spanOf(d.Span),
		}
	}
	return out
}

// convertSeverity maps the compiler's severity scale per spec §7:
// error/warning/suggestion/message -> 1/2/4/3.
func convertSeverity(s checker.DiagnosticSeverity) protocol.DiagnosticSeverity {
	switch s {
	case checker.SeverityError:
		return protocol.SeverityError
	case checker.SeverityWarning:
		return protocol.SeverityWarning
	case checker.SeveritySuggestion:
		return protocol.SeveritySuggestion
	case checker.SeverityMessage:
		return protocol.SeverityMessage
	default:
		return protocol.SeverityMessage
	}
}

func convertFolding(spans []checker.Span) []protocol.FoldingRange {
	if len(spans) == 0 {
		return nil
	}
	out := make([]protocol.FoldingRange, len(spans))
	for i, s := range spans {
		out[i] = protocol.FoldingRange{
			StartLine:      s.Start.Line,
			StartCharacter: s.Start.Character,
			EndLine:        s.End.Line,
			EndCharacter:   s.End.Character,
		}
	}
	return out
}

// walk visits node and its children, in source order, per the state machine
// of spec §4.5 ("idle -> in-file -> in-container* -> in-file -> closed").
func (v *Visitor) walk(ctx *fileCtx, node checker.Node) error {
	var declRangeID protocol.ID
	isDecl := declKinds[node.Kind()]

	switch {
	case node.Kind() == checker.KindIdentifier:
		if err := v.visitIdentifier(ctx, node); err != nil {
			return err
		}
	case isDecl:
		id, err := v.visitDeclaration(ctx, node)
		if err != nil {
			return err
		}
		declRangeID = id
	}

	pushedDocSymbol := isDecl && node.Name() != ""
	if pushedDocSymbol {
		ctx.pushDocSymbol(node, declRangeID)
	}

	for _, child := range node.Children() {
		if err := v.walk(ctx, child); err != nil {
			return err
		}
	}

	if pushedDocSymbol {
		ctx.popDocSymbol()
	}

	return v.manager.NodeProcessed(node)
}

// symbolFor resolves node's canonical symbol, preferring its own back
// reference and falling back to a checker position query (spec §6: "for
// each Node position, resolve to a canonical Symbol").
func (v *Visitor) symbolFor(ctx *fileCtx, node checker.Node) (checker.Symbol, bool) {
	if sym, ok := node.Symbol(); ok {
		return sym, true
	}
	return ctx.checker.SymbolAt(ctx.file, node.Span().Start)
}

// visitDeclaration handles a container-declaration node: it locates the
// declaration entry matching node (which carries the name's own span,
// distinct from node.Span()'s full declaration range), emits a
// declaration/definition range, and records it against the symbol's data
// (spec §4.5 steps 3-4, Data Model "Range").
func (v *Visitor) visitDeclaration(ctx *fileCtx, node checker.Node) (protocol.ID, error) {
	sym, ok := node.Symbol()
	if !ok {
		return "", nil
	}

	nameSpan := node.Span()
	for _, d := range sym.Declarations() {
		if d.Node == node {
			nameSpan = d.Span
			break
		}
	}

	ambient := sym.Flags().Has(checker.FlagAmbient)
	tagType := protocol.RangeTagDefinition
	if ambient {
		tagType = protocol.RangeTagDeclaration
	}
	full := spanOf(node.Span())
	tag := &protocol.RangeTag{
		Type:      tagType,
		Text:      node.Name(),
		Kind:      kindLabel(node.Kind()),
		FullRange: &full,
	}

	rangeID, err := v.emitter.Range(posOf(nameSpan.Start), posOf(nameSpan.End), tag)
	if err != nil {
		return "", err
	}
	v.manager.AddRange(ctx.path, rangeID)

	symData, err := v.manager.GetOrCreateSymbolData(sym)
	if err != nil {
		return "", err
	}

	if _, err := v.emitter.Next(rangeID, symData.ResultSetID); err != nil {
		return "", err
	}

	if contents, ok := ctx.checker.QuickInfo(ctx.file, nameSpan.Start); ok {
		if err := symData.AddHover(v.emitter, []protocol.MarkedString{protocol.NewMarkedString(contents)}); err != nil {
			return "", err
		}
	}

	if ambient {
		if err := v.manager.RecordDeclaration(ctx.path, symData, rangeID); err != nil {
			return "", err
		}
	} else {
		if err := v.manager.RecordDefinition(ctx.path, symData, rangeID); err != nil {
			return "", err
		}
	}

	if sym.Flags().Has(checker.FlagMethod) || sym.Flags().Has(checker.FlagFunction) {
		if err := v.handleCompositeReturnType(ctx, node, sym); err != nil {
			return "", err
		}
	}

	return rangeID, nil
}

// isDeclaringOccurrence reports whether node is itself one of sym's
// declaring positions, by exact span+file match (spec §4.5 step 4a). In
// this repository's node model declarations are dispatched through
// visitDeclaration directly and never re-enter as a KindIdentifier, so this
// only guards against a checker embedding that models declaration names as
// their own identifier nodes.
func isDeclaringOccurrence(path string, sym checker.Symbol, node checker.Node) bool {
	span := node.Span()
	for _, d := range sym.Declarations() {
		if d.File == path && d.Span == span {
			return true
		}
	}
	return false
}

// visitIdentifier handles a reference occurrence (spec §4.5 step 4).
func (v *Visitor) visitIdentifier(ctx *fileCtx, node checker.Node) error {
	sym, ok := v.symbolFor(ctx, node)
	if !ok {
		return nil // "if absent, ignore"
	}

	if isDeclaringOccurrence(ctx.path, sym, node) {
		return nil // already emitted at declaration time
	}

	symData, err := v.manager.GetOrCreateSymbolData(sym)
	if err != nil {
		return err
	}

	if err := v.checkInternalLeak(ctx, node, sym, symData); err != nil {
		return err
	}

	tag := &protocol.RangeTag{Type: protocol.RangeTagReference}
	rangeID, err := v.emitter.Range(posOf(node.Span().Start), posOf(node.Span().End), tag)
	if err != nil {
		return err
	}
	v.manager.AddRange(ctx.path, rangeID)

	if _, err := v.emitter.Next(rangeID, symData.ResultSetID); err != nil {
		return err
	}

	return v.manager.RecordReference(ctx.path, symData, rangeID)
}

// checkInternalLeak implements the visitor's internal-symbol report (spec
// §4.5, §7 InternalSymbolLeak): a non-exported, scoped symbol referenced
// from outside the syntactic boundary its symbol-data is scoped to.
func (v *Visitor) checkInternalLeak(ctx *fileCtx, node checker.Node, sym checker.Symbol, symData *resolver.SymbolData) error {
	scope, ok := symData.Scope()
	if !ok {
		return nil
	}
	if withinScope(node, scope) {
		return nil
	}
	return v.reporter.Leak(errs.NewInternalSymbolLeak(sym.Name(), ctx.path))
}

func withinScope(node, scope checker.Node) bool {
	for cur := node; cur != nil; cur = cur.Parent() {
		if cur == scope {
			return true
		}
	}
	return false
}

// handleCompositeReturnType implements the composite-symbol expansion of
// spec §4.5 for a declaration whose declared type is a union/intersection:
// for each member of each constituent that has its own symbol, attach a
// synthetic moniker naming this declaration's "return type position" plus
// the member name to that member's moniker, so consumers of the composite
// property can still navigate to each concrete shape.
func (v *Visitor) handleCompositeReturnType(ctx *fileCtx, node checker.Node, sym checker.Symbol) error {
	key := idkey.Of(sym)
	if v.compositeSeen[key] {
		return nil
	}

	t, ok := ctx.checker.DeclaredType(sym)
	if !ok {
		return nil
	}
	constituents := t.Constituents()
	if len(constituents) == 0 {
		return nil
	}
	v.compositeSeen[key] = true

	containers, global, ok := v.resolve.ContainerChain(node)
	if !ok {
		return nil
	}
	base := append(append([]string{}, containers...), sym.Name(), "__rt")

	for _, c := range constituents {
		cSym, ok := c.Symbol()
		if !ok {
			continue
		}
		for memberName, member := range cSym.Members() {
			leafData, err := v.manager.GetOrCreateSymbolData(member)
			if err != nil {
				return err
			}
			if leafData.MonikerID == "" {
				continue
			}
			identifier := resolver.MonikerIdentifier(ctx.path, memberName, base, global)
			compositeID, err := v.resolve.EnsureCompositeMoniker(identifier)
			if err != nil {
				return err
			}
			if _, err := v.emitter.Attach(compositeID, leafData.MonikerID); err != nil {
				return err
			}
		}
	}
	return nil
}
