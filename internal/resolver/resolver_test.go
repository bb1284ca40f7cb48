package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/checker/checkertest"
	"github.com/tscodeintel/lsif-ecma/internal/emit"
	"github.com/tscodeintel/lsif-ecma/internal/idgen"
	"github.com/tscodeintel/lsif-ecma/internal/pkgmeta"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

type memorySink struct {
	elements []interface{}
}

func (s *memorySink) Start() error { return nil }
func (s *memorySink) Emit(el interface{}) error {
	s.elements = append(s.elements, el)
	return nil
}
func (s *memorySink) Flush() error { return nil }
func (s *memorySink) End() error   { return nil }

func newEmitter() (*emit.Emitter, *memorySink) {
	sink := &memorySink{}
	return emit.New(idgen.NewSequential(), sink), sink
}

func TestClassifyVariant(t *testing.T) {
	cases := []struct {
		name  string
		flags checker.SymbolFlag
		want  Variant
	}{
		{"plain", 0, Standard},
		{"alias", checker.FlagAlias, Alias},
		{"class", checker.FlagClass, MemberContainer},
		{"interface", checker.FlagInterface, MemberContainer},
		{"method", checker.FlagMethod, Method},
		{"alias wins over class", checker.FlagAlias | checker.FlagClass, Alias},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := classifyVariant(c.flags); got != c.want {
				t.Errorf("classifyVariant(%v) = %v, want %v", c.flags, got, c.want)
			}
		})
	}
}

func TestComputeScope(t *testing.T) {
	file := &checkertest.Node{NodeKind: checker.KindSourceFile}
	fn := &checkertest.Node{NodeKind: checker.KindFunctionDecl, NodeName: "outer"}
	file.AddChild(fn)
	block := &checkertest.Node{NodeKind: checker.KindBlock}
	fn.AddChild(block)
	decl := &checkertest.Node{NodeKind: checker.KindVariableDecl, NodeName: "localVar"}
	block.AddChild(decl)

	sym := &checkertest.Symbol{
		SymbolName: "localVar",
		SymbolDecls: []checker.Declaration{
			{File: "a.ts", Span: decl.Span(), Kind: checker.KindVariableDecl, Node: decl},
		},
	}

	scope, ok := computeScope(sym)
	if !ok {
		t.Fatal("computeScope: want a scope, got none")
	}
	if scope != checker.Node(block) {
		t.Errorf("computeScope: want the enclosing block, got a different node")
	}
}

func TestComputeScopeExportedHasNone(t *testing.T) {
	decl := &checkertest.Node{NodeKind: checker.KindVariableDecl}
	sym := &checkertest.Symbol{
		SymbolFlags: checker.FlagExported,
		SymbolDecls: []checker.Declaration{{File: "a.ts", Node: decl, Kind: checker.KindVariableDecl}},
	}
	if _, ok := computeScope(sym); ok {
		t.Error("computeScope: exported symbol must never get a scope")
	}
}

func TestComputeScopeMultipleDeclarationsHasNone(t *testing.T) {
	decl1 := &checkertest.Node{NodeKind: checker.KindVariableDecl}
	decl2 := &checkertest.Node{NodeKind: checker.KindVariableDecl}
	sym := &checkertest.Symbol{
		SymbolDecls: []checker.Declaration{
			{File: "a.ts", Node: decl1, Kind: checker.KindVariableDecl},
			{File: "a.ts", Node: decl2, Kind: checker.KindVariableDecl},
		},
	}
	if _, ok := computeScope(sym); ok {
		t.Error("computeScope: a multiply-declared symbol must never get a single scope")
	}
}

func TestContainerChain(t *testing.T) {
	file := &checkertest.Node{NodeKind: checker.KindSourceFile}
	class := &checkertest.Node{NodeKind: checker.KindClassDecl, NodeName: "Widget"}
	file.AddChild(class)
	method := &checkertest.Node{NodeKind: checker.KindMethodDecl, NodeName: "render"}
	class.AddChild(method)
	param := &checkertest.Node{NodeKind: checker.KindParameter, NodeName: "opts"}
	method.AddChild(param)

	names, global, ok := containerChain(param)
	if !ok {
		t.Fatal("containerChain: want ok")
	}
	if global {
		t.Error("containerChain: want not global")
	}
	if diff := cmp.Diff([]string{"Widget", "render"}, names); diff != "" {
		t.Errorf("containerChain names mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerChainGlobalModule(t *testing.T) {
	file := &checkertest.Node{NodeKind: checker.KindSourceFile}
	mod := &checkertest.Node{NodeKind: checker.KindModuleDecl, NodeName: "global"}
	file.AddChild(mod)
	fn := &checkertest.Node{NodeKind: checker.KindFunctionDecl, NodeName: "setup"}
	mod.AddChild(fn)

	names, global, ok := containerChain(fn)
	if !ok {
		t.Fatal("containerChain: want ok")
	}
	if !global {
		t.Error("containerChain: want global for a `declare global` module")
	}
	if len(names) != 0 {
		t.Errorf("containerChain: want no named containers under global, got %v", names)
	}
}

func TestContainerChainStopsAtAnonymousContainer(t *testing.T) {
	file := &checkertest.Node{NodeKind: checker.KindSourceFile}
	arrow := &checkertest.Node{NodeKind: checker.KindArrowFunction}
	file.AddChild(arrow)
	param := &checkertest.Node{NodeKind: checker.KindParameter, NodeName: "x"}
	arrow.AddChild(param)

	if _, _, ok := containerChain(param); ok {
		t.Error("containerChain: an arrow-function ancestor must stop the chain")
	}
}

func TestMonikerIdentifier(t *testing.T) {
	cases := []struct {
		name       string
		file       string
		symName    string
		containers []string
		global     bool
		want       string
	}{
		{"top-level export", "src/widget.ts", "Widget", nil, false, "src/widget:Widget"},
		{"nested member", "src/widget.ts", "render", []string{"Widget"}, false, "src/widget:Widget.render"},
		{"declaration file", "types/lib.d.ts", "Thing", nil, false, "types/lib:Thing"},
		{"global has no path", "src/globals.ts", "setup", nil, true, ":setup"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := monikerIdentifier(c.file, c.symName, c.containers, c.global)
			if got != c.want {
				t.Errorf("monikerIdentifier() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestNodeModulesImportPath(t *testing.T) {
	path, ok := nodeModulesImportPath("/repo/node_modules/@scope/pkg/dist/index.d.ts")
	if !ok {
		t.Fatal("nodeModulesImportPath: want ok")
	}
	if path != "@scope/pkg/dist/index" {
		t.Errorf("nodeModulesImportPath() = %q, want %q", path, "@scope/pkg/dist/index")
	}

	if _, ok := nodeModulesImportPath("/repo/src/index.ts"); ok {
		t.Error("nodeModulesImportPath: a file outside node_modules must not resolve")
	}
}

func TestClassifyDeclarationKind(t *testing.T) {
	if kind, ok := classifyDeclarationKind(true, "src/a.ts"); !ok || kind != protocol.MonikerKindExport {
		t.Errorf("classifyDeclarationKind(exported) = (%v, %v), want (export, true)", kind, ok)
	}
	if kind, ok := classifyDeclarationKind(false, "node_modules/dep/index.d.ts"); !ok || kind != protocol.MonikerKindImport {
		t.Errorf("classifyDeclarationKind(node_modules) = (%v, %v), want (import, true)", kind, ok)
	}
	if _, ok := classifyDeclarationKind(false, "src/a.ts"); ok {
		t.Error("classifyDeclarationKind: a non-exported, non-node_modules declaration must not classify")
	}
}

// TestNewSymbolDataExportedStandard exercises the full Standard-variant path:
// a single exported declaration gets one result-set, one export moniker, and
// one packageInformation edge naming the project's own package.
func TestNewSymbolDataExportedStandard(t *testing.T) {
	e, sink := newEmitter()
	self := pkgmeta.NewManifest("my-lib", "1.2.3", nil)
	r := New(e, "proj1", self, self)

	decl := &checkertest.Node{NodeKind: checker.KindFunctionDecl, NodeName: "doThing"}
	sym := &checkertest.Symbol{
		SymbolName:  "doThing",
		SymbolFlags: checker.FlagExported | checker.FlagFunction,
		SymbolDecls: []checker.Declaration{{File: "src/a.ts", Node: decl, Kind: checker.KindFunctionDecl}},
	}
	decl.NodeParent = &checkertest.Node{NodeKind: checker.KindSourceFile}

	data, err := r.NewSymbolData(sym, func(s checker.Symbol) (*SymbolData, error) { return nil, nil })
	if err != nil {
		t.Fatalf("NewSymbolData: %v", err)
	}
	if data.Variant != Standard {
		t.Errorf("Variant = %v, want Standard", data.Variant)
	}
	if data.ResultSetID == "" {
		t.Error("want a non-empty ResultSetID")
	}
	if data.MonikerID == "" {
		t.Fatal("want an attached export moniker")
	}

	var moniker *protocol.Moniker
	var pkgEdgeCount int
	for _, el := range sink.elements {
		if m, ok := el.(*protocol.Moniker); ok && m.ID == data.MonikerID {
			moniker = m
		}
		if _, ok := el.(*protocol.PackageInformationEdge); ok {
			pkgEdgeCount++
		}
	}
	if moniker == nil {
		t.Fatal("moniker vertex not found in emitted elements")
	}
	if moniker.Identifier != "src/a:doThing" {
		t.Errorf("moniker identifier = %q, want %q", moniker.Identifier, "src/a:doThing")
	}
	if moniker.Kind != protocol.MonikerKindExport {
		t.Errorf("moniker kind = %q, want export", moniker.Kind)
	}
	if pkgEdgeCount != 1 {
		t.Errorf("packageInformation edges = %d, want 1", pkgEdgeCount)
	}
}

// TestNewSymbolDataRenameAliasAttachesLocalMoniker covers spec scenario 2: a
// non-exported `import { x as y }` attaches a document-unique local moniker
// to its own result-set and wires the aliased-to-alias referenceResults item
// edge, rather than sharing the aliased symbol's export moniker.
func TestNewSymbolDataRenameAliasAttachesLocalMoniker(t *testing.T) {
	e, sink := newEmitter()
	r := New(e, "proj1", nil, nil)

	xDecl := &checkertest.Node{NodeKind: checker.KindVariableDecl, NodeName: "x"}
	xDecl.NodeParent = &checkertest.Node{NodeKind: checker.KindSourceFile}
	xSym := &checkertest.Symbol{
		SymbolName:  "x",
		SymbolFlags: checker.FlagExported,
		SymbolDecls: []checker.Declaration{{File: "lib.ts", Node: xDecl, Kind: checker.KindVariableDecl}},
	}

	var xData *SymbolData
	lookup := func(s checker.Symbol) (*SymbolData, error) {
		if xData != nil {
			return xData, nil
		}
		d, err := r.NewSymbolData(s, func(checker.Symbol) (*SymbolData, error) { return nil, nil })
		xData = d
		return d, err
	}

	ySym := &checkertest.Symbol{
		SymbolName:    "y",
		SymbolFlags:   checker.FlagAlias,
		SymbolAliased: xSym,
	}

	yData, err := r.NewSymbolData(ySym, lookup)
	if err != nil {
		t.Fatalf("NewSymbolData: %v", err)
	}
	if yData.Variant != Alias {
		t.Errorf("Variant = %v, want Alias", yData.Variant)
	}
	if yData.MonikerID == "" {
		t.Fatal("want a local moniker attached to the alias")
	}

	var moniker *protocol.Moniker
	var crossRefItem *protocol.Item
	for _, el := range sink.elements {
		if m, ok := el.(*protocol.Moniker); ok && m.ID == yData.MonikerID {
			moniker = m
		}
		if it, ok := el.(*protocol.Item); ok && it.Property == protocol.ItemPropertyReferenceResults {
			crossRefItem = it
		}
	}
	if moniker == nil {
		t.Fatal("local moniker vertex not found")
	}
	if moniker.Kind != protocol.MonikerKindLocal {
		t.Errorf("moniker kind = %q, want local", moniker.Kind)
	}
	if moniker.Unique != protocol.UniquenessDocument {
		t.Errorf("moniker uniqueness = %q, want document", moniker.Unique)
	}
	if moniker.Identifier != "y" {
		t.Errorf("moniker identifier = %q, want %q", moniker.Identifier, "y")
	}

	if crossRefItem == nil {
		t.Fatal("want a referenceResults item edge linking the aliased symbol to the alias")
	}
	if crossRefItem.OutV != xData.ReferenceResultID {
		t.Errorf("cross-reference item outV = %q, want aliased symbol's reference result %q", crossRefItem.OutV, xData.ReferenceResultID)
	}
	if len(crossRefItem.InVs) != 1 || crossRefItem.InVs[0] != yData.ReferenceResultID {
		t.Errorf("cross-reference item inVs = %v, want [%q]", crossRefItem.InVs, yData.ReferenceResultID)
	}
	if crossRefItem.Shard != "proj1" {
		t.Errorf("cross-reference item shard = %q, want project id %q", crossRefItem.Shard, "proj1")
	}
}

func TestMonikersDedupedAcrossSymbols(t *testing.T) {
	e, sink := newEmitter()
	r := New(e, "proj1", nil, nil)

	declFor := func(name string) *checkertest.Node {
		n := &checkertest.Node{NodeKind: checker.KindFunctionDecl, NodeName: name}
		n.NodeParent = &checkertest.Node{NodeKind: checker.KindSourceFile}
		return n
	}

	sym1 := &checkertest.Symbol{
		SymbolName:  "shared",
		SymbolFlags: checker.FlagExported,
		SymbolDecls: []checker.Declaration{{File: "a.ts", Node: declFor("shared"), Kind: checker.KindFunctionDecl}},
	}
	sym2 := &checkertest.Symbol{
		SymbolName:  "shared",
		SymbolFlags: checker.FlagExported,
		SymbolDecls: []checker.Declaration{{File: "a.ts", Node: declFor("shared"), Kind: checker.KindFunctionDecl}},
	}

	lookup := func(checker.Symbol) (*SymbolData, error) { return nil, nil }
	d1, err := r.NewSymbolData(sym1, lookup)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := r.NewSymbolData(sym2, lookup)
	if err != nil {
		t.Fatal(err)
	}

	if d1.MonikerID != d2.MonikerID {
		t.Errorf("two symbols resolving to the same (scheme, identifier) must share one moniker vertex, got %q and %q", d1.MonikerID, d2.MonikerID)
	}

	count := 0
	for _, el := range sink.elements {
		if _, ok := el.(*protocol.Moniker); ok {
			count++
		}
	}
	if count != 1 {
		t.Errorf("want exactly 1 moniker vertex emitted, got %d", count)
	}
}
