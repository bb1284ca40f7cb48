// Package builder implements spec §4.1's Graph Builder: a pure factory for
// vertices and edges with a monotonic id generator. It never performs I/O —
// it only constructs fully-formed protocol values carrying a freshly
// generated id. The Emitter (internal/emit) is the only caller that also
// writes the constructed value to a Sink.
package builder

import (
	"github.com/tscodeintel/lsif-ecma/internal/idgen"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Builder constructs protocol vertices and edges, assigning each a fresh id.
type Builder struct {
	gen idgen.Generator
}

// New returns a Builder drawing ids from gen.
func New(gen idgen.Generator) *Builder {
	return &Builder{gen: gen}
}

func (b *Builder) nextID() protocol.ID {
	return b.gen.Next()
}

func (b *Builder) MetaData(projectRoot string, info protocol.ToolInfo) *protocol.MetaData {
	return protocol.NewMetaData(b.nextID(), projectRoot, info)
}

func (b *Builder) Project(name string, contents []byte) *protocol.Project {
	return protocol.NewProject(b.nextID(), name, contents)
}

func (b *Builder) Document(uri string, contents []byte) *protocol.Document {
	return protocol.NewDocument(b.nextID(), uri, contents)
}

func (b *Builder) Range(start, end protocol.Pos, tag *protocol.RangeTag) *protocol.Range {
	return protocol.NewRange(b.nextID(), start, end, tag)
}

func (b *Builder) ResultSet() *protocol.ResultSet {
	return protocol.NewResultSet(b.nextID())
}

func (b *Builder) DefinitionResult() *protocol.DefinitionResult {
	return protocol.NewDefinitionResult(b.nextID())
}

func (b *Builder) DeclarationResult() *protocol.DeclarationResult {
	return protocol.NewDeclarationResult(b.nextID())
}

func (b *Builder) ReferenceResult() *protocol.ReferenceResult {
	return protocol.NewReferenceResult(b.nextID())
}

func (b *Builder) TypeDefinitionResult() *protocol.TypeDefinitionResult {
	return protocol.NewTypeDefinitionResult(b.nextID())
}

func (b *Builder) ImplementationResult() *protocol.ImplementationResult {
	return protocol.NewImplementationResult(b.nextID())
}

func (b *Builder) HoverResult(contents []protocol.MarkedString) *protocol.HoverResult {
	return protocol.NewHoverResult(b.nextID(), contents)
}

func (b *Builder) Moniker(scheme, identifier string, unique protocol.MonikerUniqueness, kind protocol.MonikerKind) *protocol.Moniker {
	return protocol.NewMoniker(b.nextID(), scheme, identifier, unique, kind)
}

func (b *Builder) PackageInformation(name, manager, version, uri string) *protocol.PackageInformation {
	return protocol.NewPackageInformation(b.nextID(), name, manager, version, uri)
}

func (b *Builder) DocumentSymbolResult(tree []protocol.DocumentSymbol) *protocol.DocumentSymbolResult {
	return protocol.NewDocumentSymbolResult(b.nextID(), tree)
}

func (b *Builder) FoldingRangeResult(spans []protocol.FoldingRange) *protocol.FoldingRangeResult {
	return protocol.NewFoldingRangeResult(b.nextID(), spans)
}

func (b *Builder) DiagnosticResult(diagnostics []protocol.Diagnostic) *protocol.DiagnosticResult {
	return protocol.NewDiagnosticResult(b.nextID(), diagnostics)
}

func (b *Builder) BeginEvent(scope protocol.EventScope, data protocol.ID) *protocol.Event {
	return protocol.NewEvent(b.nextID(), scope, protocol.EventBegin, data)
}

func (b *Builder) EndEvent(scope protocol.EventScope, data protocol.ID) *protocol.Event {
	return protocol.NewEvent(b.nextID(), scope, protocol.EventEnd, data)
}

func (b *Builder) Contains(outV protocol.ID, inVs []protocol.ID) *protocol.Contains {
	return protocol.NewContains(b.nextID(), outV, inVs)
}

func (b *Builder) Next(outV, inV protocol.ID) *protocol.Next {
	return protocol.NewNext(b.nextID(), outV, inV)
}

func (b *Builder) MonikerEdge(outV, inV protocol.ID) *protocol.MonikerEdge {
	return protocol.NewMonikerEdge(b.nextID(), outV, inV)
}

func (b *Builder) PackageInformationEdge(outV, inV protocol.ID) *protocol.PackageInformationEdge {
	return protocol.NewPackageInformationEdge(b.nextID(), outV, inV)
}

func (b *Builder) Attach(outV, inV protocol.ID) *protocol.Attach {
	return protocol.NewAttach(b.nextID(), outV, inV)
}

// Item constructs an item edge from a vertex labeled sourceLabel to the given
// targets labeled targetLabel, applying the disambiguation rules of spec §4.1.
func (b *Builder) Item(outV protocol.ID, sourceLabel protocol.VertexLabel, inVs []protocol.ID, targetLabel protocol.VertexLabel, shard protocol.ID, property protocol.ItemProperty) (*protocol.Item, error) {
	return protocol.NewItem(b.nextID(), outV, inVs, shard, sourceLabel, targetLabel, property)
}

func (b *Builder) TextDocumentHover(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentHover(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentDeclaration(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentDeclaration(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentDefinition(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentDefinition(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentTypeDefinition(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentTypeDefinition(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentReferences(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentReferences(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentImplementation(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentImplementation(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentDocumentSymbol(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentDocumentSymbol(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentFoldingRange(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentFoldingRange(b.nextID(), outV, inV)
}

func (b *Builder) TextDocumentDiagnostic(outV, inV protocol.ID) *protocol.TextDocumentEdge {
	return protocol.NewTextDocumentDiagnostic(b.nextID(), outV, inV)
}
