// Package emit implements spec §4.2's Emitter: it serializes vertices and
// edges constructed by the Graph Builder (internal/builder) to a Sink,
// hiding which format is active from every other component.
package emit

import (
	"github.com/tscodeintel/lsif-ecma/internal/builder"
	"github.com/tscodeintel/lsif-ecma/internal/idgen"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Emitter glues the Graph Builder to a Sink. Every Emit* method constructs
// the element (via the embedded Builder) and writes it through the Sink in
// one call, returning the id the Builder assigned.
type Emitter struct {
	build *builder.Builder
	sink  protocol.Sink
	count uint64
}

// New returns an Emitter drawing ids from gen and writing through sink.
func New(gen idgen.Generator, sink protocol.Sink) *Emitter {
	return &Emitter{build: builder.New(gen), sink: sink}
}

// Start prepares the underlying sink.
func (e *Emitter) Start() error { return e.sink.Start() }

// Flush forwards to the sink's Flush (see protocol.Sink for what each
// format writes out at that point).
func (e *Emitter) Flush() error { return e.sink.Flush() }

// End finalizes the underlying sink.
func (e *Emitter) End() error { return e.sink.End() }

// NumElements reports how many vertices and edges have been emitted so far.
func (e *Emitter) NumElements() uint64 { return e.count }

func (e *Emitter) write(element interface{}) error {
	e.count++
	return e.sink.Emit(element)
}

func (e *Emitter) MetaData(projectRoot string, info protocol.ToolInfo) (protocol.ID, error) {
	v := e.build.MetaData(projectRoot, info)
	return v.ID, e.write(v)
}

func (e *Emitter) Project(name string, contents []byte) (protocol.ID, error) {
	v := e.build.Project(name, contents)
	return v.ID, e.write(v)
}

func (e *Emitter) Document(uri string, contents []byte) (protocol.ID, error) {
	v := e.build.Document(uri, contents)
	return v.ID, e.write(v)
}

func (e *Emitter) Range(start, end protocol.Pos, tag *protocol.RangeTag) (protocol.ID, error) {
	v := e.build.Range(start, end, tag)
	return v.ID, e.write(v)
}

func (e *Emitter) ResultSet() (protocol.ID, error) {
	v := e.build.ResultSet()
	return v.ID, e.write(v)
}

func (e *Emitter) DefinitionResult() (protocol.ID, error) {
	v := e.build.DefinitionResult()
	return v.ID, e.write(v)
}

func (e *Emitter) DeclarationResult() (protocol.ID, error) {
	v := e.build.DeclarationResult()
	return v.ID, e.write(v)
}

func (e *Emitter) ReferenceResult() (protocol.ID, error) {
	v := e.build.ReferenceResult()
	return v.ID, e.write(v)
}

func (e *Emitter) TypeDefinitionResult() (protocol.ID, error) {
	v := e.build.TypeDefinitionResult()
	return v.ID, e.write(v)
}

func (e *Emitter) ImplementationResult() (protocol.ID, error) {
	v := e.build.ImplementationResult()
	return v.ID, e.write(v)
}

func (e *Emitter) HoverResult(contents []protocol.MarkedString) (protocol.ID, error) {
	v := e.build.HoverResult(contents)
	return v.ID, e.write(v)
}

func (e *Emitter) Moniker(scheme, identifier string, unique protocol.MonikerUniqueness, kind protocol.MonikerKind) (protocol.ID, error) {
	v := e.build.Moniker(scheme, identifier, unique, kind)
	return v.ID, e.write(v)
}

func (e *Emitter) PackageInformation(name, manager, version, uri string) (protocol.ID, error) {
	v := e.build.PackageInformation(name, manager, version, uri)
	return v.ID, e.write(v)
}

func (e *Emitter) DocumentSymbolResult(tree []protocol.DocumentSymbol) (protocol.ID, error) {
	v := e.build.DocumentSymbolResult(tree)
	return v.ID, e.write(v)
}

func (e *Emitter) FoldingRangeResult(spans []protocol.FoldingRange) (protocol.ID, error) {
	v := e.build.FoldingRangeResult(spans)
	return v.ID, e.write(v)
}

func (e *Emitter) DiagnosticResult(diagnostics []protocol.Diagnostic) (protocol.ID, error) {
	v := e.build.DiagnosticResult(diagnostics)
	return v.ID, e.write(v)
}

func (e *Emitter) BeginEvent(scope protocol.EventScope, data protocol.ID) (protocol.ID, error) {
	v := e.build.BeginEvent(scope, data)
	return v.ID, e.write(v)
}

func (e *Emitter) EndEvent(scope protocol.EventScope, data protocol.ID) (protocol.ID, error) {
	v := e.build.EndEvent(scope, data)
	return v.ID, e.write(v)
}

func (e *Emitter) Contains(outV protocol.ID, inVs []protocol.ID) (protocol.ID, error) {
	v := e.build.Contains(outV, inVs)
	return v.ID, e.write(v)
}

func (e *Emitter) Next(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.Next(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) MonikerEdge(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.MonikerEdge(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) PackageInformationEdge(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.PackageInformationEdge(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) Attach(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.Attach(outV, inV)
	return v.ID, e.write(v)
}

// Item constructs and emits an item edge; see builder.Builder.Item for the
// property-disambiguation rules applied.
func (e *Emitter) Item(outV protocol.ID, sourceLabel protocol.VertexLabel, inVs []protocol.ID, targetLabel protocol.VertexLabel, shard protocol.ID, property protocol.ItemProperty) (protocol.ID, error) {
	v, err := e.build.Item(outV, sourceLabel, inVs, targetLabel, shard, property)
	if err != nil {
		return "", err
	}
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentHover(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentHover(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentDeclaration(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentDeclaration(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentDefinition(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentDefinition(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentTypeDefinition(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentTypeDefinition(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentReferences(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentReferences(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentImplementation(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentImplementation(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentDocumentSymbol(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentDocumentSymbol(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentFoldingRange(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentFoldingRange(outV, inV)
	return v.ID, e.write(v)
}

func (e *Emitter) TextDocumentDiagnostic(outV, inV protocol.ID) (protocol.ID, error) {
	v := e.build.TextDocumentDiagnostic(outV, inV)
	return v.ID, e.write(v)
}
