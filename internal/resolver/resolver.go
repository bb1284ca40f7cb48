// Package resolver implements the Symbol Resolver (spec §4.4): it maps a
// compiler symbol to a stable identity key, picks the SymbolData variant its
// flags call for, computes an emission scope, and constructs the monikers
// that let a symbol's identifier be matched across independently indexed
// projects (§4.4.1). Alias forwarding and method-override sharing (§4.4.2)
// are resolved once, at symbol-data construction time.
package resolver

import (
	"strings"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/emit"
	"github.com/tscodeintel/lsif-ecma/internal/idkey"
	"github.com/tscodeintel/lsif-ecma/internal/log"
	"github.com/tscodeintel/lsif-ecma/internal/pkgmeta"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Variant selects how a SymbolData behaves, per the table in spec §4.4.
type Variant int

const (
	Standard Variant = iota
	Alias
	MemberContainer
	Method
)

// Scheme is the moniker scheme this resolver stamps on every moniker it
// constructs (spec §6: "the primary scheme").
const Scheme = "tsc"

// Lookup resolves a symbol to its SymbolData, creating it if necessary. The
// Data Manager supplies this as a closure over its own GetOrCreateSymbolData
// so the Resolver can chase an alias's target or a method's overridden
// ancestor without an import cycle between internal/resolver and
// internal/datamanager.
type Lookup func(sym checker.Symbol) (*SymbolData, error)

// Partition is the per-document slice of a symbol-data's pending item edges
// (spec §3: SymbolDataPartition).
type Partition struct {
	definitions  []protocol.ID
	declarations []protocol.ID
	references   []protocol.ID
}

// SymbolData is the durable, non-emitted projection of a compiler symbol in
// the LSIF graph (spec §3).
type SymbolData struct {
	Key     idkey.Key
	Variant Variant

	ResultSetID            protocol.ID
	HoverID                protocol.ID
	DefinitionResultID     protocol.ID
	DeclarationResultID    protocol.ID
	ReferenceResultID      protocol.ID
	TypeDefinitionResultID protocol.ID
	ImplementationResultID protocol.ID
	MonikerID              protocol.ID

	// scope is the syntactic node whose end-visit closes this symbol-data
	// (spec §3 invariant 7); nil means project-wide lifetime.
	scope checker.Node
	ended bool

	partitions map[protocol.ID]*Partition

	// aliasOf is set when Variant == Alias and the aliased symbol itself
	// resolved; defs/refs added to this data forward to aliasOf instead.
	aliasOf *SymbolData
	// overrides is set when Variant == Method and an ancestor container
	// declares the same method name; references forward to it (spec §4.4.2).
	overrides *SymbolData
	// Heritage holds the class/interface symbols a MemberContainer extends
	// or implements, for member-lookup callers that need the base chain.
	Heritage []checker.Symbol
}

// Scope reports the node this symbol-data is scoped to, if any.
func (d *SymbolData) Scope() (checker.Node, bool) {
	if d.scope == nil {
		return nil, false
	}
	return d.scope, true
}

// Ended reports whether Close has already run.
func (d *SymbolData) Ended() bool { return d.ended }

func (d *SymbolData) partitionFor(doc protocol.ID) *Partition {
	if d.partitions == nil {
		d.partitions = map[protocol.ID]*Partition{}
	}
	p, ok := d.partitions[doc]
	if !ok {
		p = &Partition{}
		d.partitions[doc] = p
	}
	return p
}

func (d *SymbolData) aliasTarget() *SymbolData {
	cur := d
	for cur.aliasOf != nil {
		cur = cur.aliasOf
	}
	if cur == d {
		return nil
	}
	return cur
}

func (d *SymbolData) overrideTarget() *SymbolData {
	cur := d
	for cur.overrides != nil {
		cur = cur.overrides
	}
	if cur == d {
		return nil
	}
	return cur
}

// ensureResult creates *id via create on first call and reports whether this
// call was the one that created it, so callers can link the result-set to a
// freshly created result vertex exactly once (spec §4.3: a result vertex is
// unreachable until its textDocument/* edge attaches it to the result-set).
func (d *SymbolData) ensureResult(e *emit.Emitter, id *protocol.ID, create func() (protocol.ID, error)) (created bool, err error) {
	if *id != "" {
		return false, nil
	}
	newID, err := create()
	if err != nil {
		return false, err
	}
	*id = newID
	return true, nil
}

// AddDefinition records rangeID as a definition occurrence in doc. Per the
// worked examples in spec §8, a definition also counts as a reference (the
// declaring occurrence is part of find-references), so it is filed in both
// result vertices. Aliases forward to the data they alias.
func (d *SymbolData) AddDefinition(e *emit.Emitter, doc, rangeID protocol.ID) error {
	target := d
	if at := d.aliasTarget(); at != nil {
		target = at
	}
	created, err := target.ensureResult(e, &target.DefinitionResultID, e.DefinitionResult)
	if err != nil {
		return err
	}
	if created {
		if _, err := e.TextDocumentDefinition(target.ResultSetID, target.DefinitionResultID); err != nil {
			return err
		}
	}
	created, err = target.ensureResult(e, &target.ReferenceResultID, e.ReferenceResult)
	if err != nil {
		return err
	}
	if created {
		if _, err := e.TextDocumentReferences(target.ResultSetID, target.ReferenceResultID); err != nil {
			return err
		}
	}
	p := target.partitionFor(doc)
	p.definitions = append(p.definitions, rangeID)
	p.references = append(p.references, rangeID)
	return nil
}

// AddDeclaration records rangeID as a declaration occurrence, mirroring
// AddDefinition's forwarding and dual-bucket behavior.
func (d *SymbolData) AddDeclaration(e *emit.Emitter, doc, rangeID protocol.ID) error {
	target := d
	if at := d.aliasTarget(); at != nil {
		target = at
	}
	created, err := target.ensureResult(e, &target.DeclarationResultID, e.DeclarationResult)
	if err != nil {
		return err
	}
	if created {
		if _, err := e.TextDocumentDeclaration(target.ResultSetID, target.DeclarationResultID); err != nil {
			return err
		}
	}
	created, err = target.ensureResult(e, &target.ReferenceResultID, e.ReferenceResult)
	if err != nil {
		return err
	}
	if created {
		if _, err := e.TextDocumentReferences(target.ResultSetID, target.ReferenceResultID); err != nil {
			return err
		}
	}
	p := target.partitionFor(doc)
	p.declarations = append(p.declarations, rangeID)
	p.references = append(p.references, rangeID)
	return nil
}

// AddReference records rangeID as a reference occurrence. Aliases forward to
// the aliased data; methods forward to the ancestor method they override.
func (d *SymbolData) AddReference(e *emit.Emitter, doc, rangeID protocol.ID) error {
	target := d
	if at := d.aliasTarget(); at != nil {
		target = at
	} else if ot := d.overrideTarget(); ot != nil {
		target = ot
	}
	created, err := target.ensureResult(e, &target.ReferenceResultID, e.ReferenceResult)
	if err != nil {
		return err
	}
	if created {
		if _, err := e.TextDocumentReferences(target.ResultSetID, target.ReferenceResultID); err != nil {
			return err
		}
	}
	p := target.partitionFor(doc)
	p.references = append(p.references, rangeID)
	return nil
}

// AddHover attaches contents as this symbol-data's hoverResult, emitted and
// linked from the result-set on first call; later calls for the same
// symbol-data (e.g. a second declaration of the same ambient symbol) are a
// no-op, matching the single-hoverResult-per-symbol caching the teacher's
// makeCachedHoverResult performs.
func (d *SymbolData) AddHover(e *emit.Emitter, contents []protocol.MarkedString) error {
	if d.HoverID != "" || len(contents) == 0 {
		return nil
	}
	id, err := e.HoverResult(contents)
	if err != nil {
		return err
	}
	d.HoverID = id
	_, err = e.TextDocumentHover(d.ResultSetID, id)
	return err
}

// FlushPartition emits doc's pending item edges and discards the partition.
// Within a symbol-data's end, spec §4.3 calls for one item edge per
// (document, property) bucket for references, plus one for definitions.
func (d *SymbolData) FlushPartition(e *emit.Emitter, doc protocol.ID) error {
	p, ok := d.partitions[doc]
	if !ok {
		return nil
	}
	delete(d.partitions, doc)

	if len(p.definitions) > 0 {
		if _, err := e.Item(d.DefinitionResultID, protocol.VertexDefinitionResult, p.definitions, protocol.VertexRange, doc, protocol.ItemPropertyNone); err != nil {
			return err
		}
	}
	if len(p.declarations) > 0 {
		if _, err := e.Item(d.DeclarationResultID, protocol.VertexDeclarationResult, p.declarations, protocol.VertexRange, doc, protocol.ItemPropertyNone); err != nil {
			return err
		}
	}
	if len(p.references) > 0 {
		if _, err := e.Item(d.ReferenceResultID, protocol.VertexReferenceResult, p.references, protocol.VertexRange, doc, protocol.ItemPropertyReferences); err != nil {
			return err
		}
	}
	return nil
}

// FlushAll flushes every still-open partition, in Go map iteration order,
// which varies from run to run (callers at ProjectDone no longer care about
// cross-document ordering since every document is closing together).
func (d *SymbolData) FlushAll(e *emit.Emitter) error {
	for doc := range d.partitions {
		if err := d.FlushPartition(e, doc); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes every remaining partition and marks this symbol-data ended.
// Later Add* calls are not rejected: a range recorded after Close (such as
// a leaked reference in lenient mode) goes into a new partition and is
// flushed with its document.
func (d *SymbolData) Close(e *emit.Emitter) error {
	if d.ended {
		return nil
	}
	if err := d.FlushAll(e); err != nil {
		return err
	}
	d.ended = true
	return nil
}

// Resolver constructs SymbolData for symbols first seen during one project's
// traversal. It owns the project-scoped moniker/packageInformation dedup
// tables (spec §3 invariant 4: a moniker is emitted at most once per
// (scheme, identifier) within a project).
type Resolver struct {
	emitter   *emit.Emitter
	projectID protocol.ID
	packages  pkgmeta.Resolver
	self      *pkgmeta.Manifest

	monikers map[string]protocol.ID
	pkgInfos map[string]protocol.ID
}

// SetProjectID fixes the project id used as the Shard of the alias
// cross-reference item edge (spec §4.4.2) once it is known. Needed because
// the Data Manager is the one that emits the project vertex (spec §4.3
// BeginProject) but the Resolver must exist before any symbol-data is
// constructed; a driver wires New with a placeholder and calls this once
// BeginProject returns the real id.
func (r *Resolver) SetProjectID(id protocol.ID) {
	r.projectID = id
}

// New returns a Resolver emitting through e, scoped to projectID. self names
// this project's own package (for export packageInformation); packages
// resolves node_modules import paths to a published package (for import
// packageInformation) and may be nil if unavailable.
func New(e *emit.Emitter, projectID protocol.ID, self *pkgmeta.Manifest, packages pkgmeta.Resolver) *Resolver {
	return &Resolver{
		emitter:   e,
		projectID: projectID,
		packages:  packages,
		self:      self,
		monikers:  map[string]protocol.ID{},
		pkgInfos:  map[string]protocol.ID{},
	}
}

func classifyVariant(flags checker.SymbolFlag) Variant {
	switch {
	case flags.Has(checker.FlagAlias):
		return Alias
	case flags.Has(checker.FlagClass), flags.Has(checker.FlagInterface):
		return MemberContainer
	case flags.Has(checker.FlagMethod):
		return Method
	default:
		return Standard
	}
}

// computeScope finds the nearest enclosing emit-boundary ancestor of a
// singly-declared, non-exported symbol's declaration (spec §4.4). Scenario 4
// (§8) fixes the intended granularity: `const x` inside a function body
// scopes to the enclosing block, not to x's own declaration node.
func computeScope(sym checker.Symbol) (checker.Node, bool) {
	if sym.Flags().Has(checker.FlagExported) {
		return nil, false
	}
	decls := sym.Declarations()
	if len(decls) != 1 {
		return nil, false
	}
	node := decls[0].Node
	if node == nil {
		return nil, false
	}
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if checker.EmitBoundaryKinds[cur.Kind()] {
			return cur, true
		}
	}
	return nil, false
}

func isNamedContainerKind(k checker.NodeKind) bool {
	switch k {
	case checker.KindModuleDecl, checker.KindClassDecl, checker.KindInterfaceDecl, checker.KindFunctionDecl, checker.KindMethodDecl:
		return true
	}
	return false
}

// containerChain walks up from a declaration node to the enclosing source
// file, collecting named-container names innermost-first then reversing
// them, per spec §4.4.1. ok is false if an emit-stop or anonymous container
// is crossed first, meaning no moniker identifier can be built.
func containerChain(declNode checker.Node) (names []string, global bool, ok bool) {
	for cur := declNode.Parent(); cur != nil; cur = cur.Parent() {
		k := cur.Kind()
		if k == checker.KindSourceFile {
			break
		}
		if checker.EmitStopKinds[k] {
			return nil, false, false
		}
		if !isNamedContainerKind(k) {
			continue
		}
		name := cur.Name()
		if name == "" {
			return nil, false, false
		}
		if k == checker.KindModuleDecl && strings.EqualFold(name, "global") {
			global = true
			continue
		}
		names = append(names, name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names, global, true
}

// monikerPath computes the `path` half of the identifier grammar in spec §6:
// the forward-slash file path with a TS extension stripped and literal
// colons doubled.
func monikerPath(file string) string {
	p := strings.ReplaceAll(file, "\\", "/")
	for _, ext := range []string{".d.ts", ".ts", ".js"} {
		if strings.HasSuffix(p, ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}
	return strings.ReplaceAll(p, ":", "::")
}

func monikerIdentifier(file, name string, containers []string, global bool) string {
	chain := make([]string, 0, len(containers)+1)
	chain = append(chain, containers...)
	chain = append(chain, name)
	path := ""
	if !global {
		path = monikerPath(file)
	}
	return path + ":" + strings.Join(chain, ".")
}

// nodeModulesImportPath extracts the package-relative import path from a
// declaration file that sits inside a node_modules directory.
func nodeModulesImportPath(file string) (string, bool) {
	const marker = "node_modules/"
	idx := strings.Index(file, marker)
	if idx < 0 {
		return "", false
	}
	rest := file[idx+len(marker):]
	for _, ext := range []string{".d.ts", ".ts", ".js"} {
		rest = strings.TrimSuffix(rest, ext)
	}
	return rest, true
}

func classifyDeclarationKind(exported bool, file string) (protocol.MonikerKind, bool) {
	if exported {
		return protocol.MonikerKindExport, true
	}
	if _, ok := nodeModulesImportPath(file); ok {
		return protocol.MonikerKindImport, true
	}
	return "", false
}

// ContainerChain exposes containerChain to the Visitor's composite-symbol
// handling (spec §4.5 "Composite symbols"), which needs the same lexical
// container path a normal declaration's moniker is built from to name the
// synthetic attach-point for a union/intersection return type.
func (r *Resolver) ContainerChain(declNode checker.Node) (names []string, global bool, ok bool) {
	return containerChain(declNode)
}

// MonikerIdentifier exposes the identifier grammar of spec §6 to callers
// outside this package that need to build a synthetic (non-symbol-backed)
// moniker identifier, namely the Visitor's composite return-type handling.
func MonikerIdentifier(file, name string, containers []string, global bool) string {
	return monikerIdentifier(file, name, containers, global)
}

// EnsureCompositeMoniker returns the moniker vertex id for identifier,
// creating and emitting it on first use and deduplicating on subsequent
// calls (spec §3 invariant 4), for the synthetic attach-points spec §4.5's
// composite-symbol handling introduces (these have no declaring symbol of
// their own, so they never go through NewSymbolData/attachMoniker).
func (r *Resolver) EnsureCompositeMoniker(identifier string) (protocol.ID, error) {
	return r.ensureMoniker(identifier, protocol.UniquenessProject, protocol.MonikerKindExport)
}

func (r *Resolver) ensureMoniker(identifier string, unique protocol.MonikerUniqueness, kind protocol.MonikerKind) (protocol.ID, error) {
	key := string(kind) + "\x00" + identifier
	if id, ok := r.monikers[key]; ok {
		return id, nil
	}
	id, err := r.emitter.Moniker(Scheme, identifier, unique, kind)
	if err != nil {
		return "", err
	}
	r.monikers[key] = id
	return id, nil
}

func (r *Resolver) ensurePackageInformation(name, version string) (protocol.ID, error) {
	key := name + "\x00" + version
	if id, ok := r.pkgInfos[key]; ok {
		return id, nil
	}
	id, err := r.emitter.PackageInformation(name, pkgmeta.Manager, version, "")
	if err != nil {
		return "", err
	}
	r.pkgInfos[key] = id
	return id, nil
}

type monikerCandidate struct {
	kind       protocol.MonikerKind
	identifier string
	file       string
}

// attachMoniker implements spec §4.4.1. For each declaration whose container
// chain and file classify cleanly, it builds a candidate identifier; if
// every candidate agrees, one moniker is emitted from the result-set. A
// disagreement is resolved per the Open Question in spec §9: emit from the
// first declaration only and log the elision, rather than emit multiple
// conflicting result-set monikers (the source's behavior there is stricter
// under this contract than what it unconditionally produces upstream).
func (r *Resolver) attachMoniker(data *SymbolData, sym checker.Symbol) error {
	exported := sym.Flags().Has(checker.FlagExported)

	var candidates []monikerCandidate
	for _, decl := range sym.Declarations() {
		if decl.Node == nil {
			continue
		}
		names, global, ok := containerChain(decl.Node)
		if !ok {
			continue
		}
		kind, ok := classifyDeclarationKind(exported, decl.File)
		if !ok {
			continue
		}
		candidates = append(candidates, monikerCandidate{
			kind:       kind,
			identifier: monikerIdentifier(decl.File, sym.Name(), names, global),
			file:       decl.File,
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	first := candidates[0]
	for _, c := range candidates[1:] {
		if c.kind != first.kind || c.identifier != first.identifier {
			log.Debugf("symbol %q: declarations disagree on moniker path, emitting only %q", sym.Name(), first.identifier)
			break
		}
	}

	monikerID, err := r.ensureMoniker(first.identifier, protocol.UniquenessProject, first.kind)
	if err != nil {
		return err
	}
	data.MonikerID = monikerID
	if _, err := r.emitter.MonikerEdge(data.ResultSetID, monikerID); err != nil {
		return err
	}

	switch first.kind {
	case protocol.MonikerKindExport:
		if r.self != nil {
			pkgID, err := r.ensurePackageInformation(r.self.Self, r.self.SelfVersion)
			if err != nil {
				return err
			}
			if _, err := r.emitter.PackageInformationEdge(monikerID, pkgID); err != nil {
				return err
			}
		}
	case protocol.MonikerKindImport:
		if r.packages == nil {
			break
		}
		importPath, ok := nodeModulesImportPath(first.file)
		if !ok {
			break
		}
		name, version, ok := r.packages.Resolve(importPath)
		if !ok {
			break
		}
		pkgID, err := r.ensurePackageInformation(name, version)
		if err != nil {
			return err
		}
		if _, err := r.emitter.PackageInformationEdge(monikerID, pkgID); err != nil {
			return err
		}
	}
	return nil
}

// attachLocalMoniker implements the rename-alias clause of spec §4.4.2: a
// non-exported `import { x as y }` attaches a local moniker naming the local
// binding to its own result-set (not the aliased symbol's), so `y` remains
// distinguishable from `x` within the document.
func (r *Resolver) attachLocalMoniker(data *SymbolData, sym checker.Symbol) error {
	monikerID, err := r.ensureMoniker(sym.Name(), protocol.UniquenessDocument, protocol.MonikerKindLocal)
	if err != nil {
		return err
	}
	data.MonikerID = monikerID
	_, err = r.emitter.MonikerEdge(data.ResultSetID, monikerID)
	return err
}

// isRenameAlias reports whether sym's own name differs from the symbol it
// aliases, i.e. `import { x as y }` rather than a plain re-export of `x`.
func isRenameAlias(sym, aliased checker.Symbol) bool {
	return sym.Name() != aliased.Name()
}

// NewSymbolData constructs the SymbolData for a symbol seen for the first
// time, per the variant table and moniker rules of spec §4.4/§4.4.1. lookup
// is used to resolve an alias's target or a method's overridden ancestor,
// which may themselves trigger symbol-data construction.
func (r *Resolver) NewSymbolData(sym checker.Symbol, lookup Lookup) (*SymbolData, error) {
	data := &SymbolData{
		Key:     idkey.Of(sym),
		Variant: classifyVariant(sym.Flags()),
	}
	data.scope, _ = computeScope(sym)

	resultSetID, err := r.emitter.ResultSet()
	if err != nil {
		return nil, err
	}
	data.ResultSetID = resultSetID

	switch data.Variant {
	case Alias:
		if aliased, ok := sym.AliasedSymbol(); ok {
			aliasedData, err := lookup(aliased)
			if err != nil {
				return nil, err
			}
			data.aliasOf = aliasedData

			// Ensure both reference-results exist so the cross-reference edge
			// (spec §4.4.2 / scenario 2 in §8) can be emitted immediately:
			// an item edge from the ALIASED symbol's reference-result to
			// this alias's own reference-result, property referenceResults,
			// so consumers resolving references on the aliased symbol
			// transitively see references made through the alias.
			if aliasedData != nil {
				created, err := aliasedData.ensureResult(r.emitter, &aliasedData.ReferenceResultID, r.emitter.ReferenceResult)
				if err != nil {
					return nil, err
				}
				if created {
					if _, err := r.emitter.TextDocumentReferences(aliasedData.ResultSetID, aliasedData.ReferenceResultID); err != nil {
						return nil, err
					}
				}
				created, err = data.ensureResult(r.emitter, &data.ReferenceResultID, r.emitter.ReferenceResult)
				if err != nil {
					return nil, err
				}
				if created {
					if _, err := r.emitter.TextDocumentReferences(data.ResultSetID, data.ReferenceResultID); err != nil {
						return nil, err
					}
				}
				if _, err := r.emitter.Item(aliasedData.ReferenceResultID, protocol.VertexReferenceResult, []protocol.ID{data.ReferenceResultID}, protocol.VertexReferenceResult, r.projectID, protocol.ItemPropertyNone); err != nil {
					return nil, err
				}
			}

			if !sym.Flags().Has(checker.FlagExported) && isRenameAlias(sym, aliased) {
				if err := r.attachLocalMoniker(data, sym); err != nil {
					return nil, err
				}
				return data, nil
			}
		}

	case Method:
		if parent, ok := sym.Parent(); ok {
			for _, heritage := range parent.HeritageSymbols() {
				member, ok := heritage.Members()[sym.Name()]
				if !ok {
					continue
				}
				overridden, err := lookup(member)
				if err != nil {
					return nil, err
				}
				data.overrides = overridden
				break
			}
		}

	case MemberContainer:
		data.Heritage = sym.HeritageSymbols()
	}

	if err := r.attachMoniker(data, sym); err != nil {
		return nil, err
	}
	return data, nil
}
