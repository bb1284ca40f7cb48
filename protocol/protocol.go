// Package protocol defines the vertex and edge schema of the LSIF graph this
// indexer emits. Types here are plain data: construction takes an explicit
// id so that id generation stays the sole responsibility of the Graph
// Builder (see internal/builder).
package protocol

import "encoding/base64"

// Version is the LSIF version of the emitted graph.
const Version = "0.4.3"

// LanguageID is the LSP language identifier emitted on project and document vertices.
const LanguageID = "typescript"

// PositionEncoding is the encoding used to compute line/character offsets.
const PositionEncoding = "utf-16"

// ID identifies a vertex or edge within the scope of a single emitted graph.
// Its concrete shape (decimal integer or UUID) is decided once per run by the
// configured idgen.Generator and is otherwise opaque to every other component.
type ID string

// ElementType distinguishes a vertex from an edge.
type ElementType string

const (
	ElementVertex ElementType = "vertex"
	ElementEdge   ElementType = "edge"
)

// Element is embedded by every vertex and edge.
type Element struct {
	ID   ID          `json:"id"`
	Type ElementType `json:"type"`
}

// VertexLabel names the kind of a vertex.
type VertexLabel string

const (
	VertexMetaData             VertexLabel = "metaData"
	VertexEvent                VertexLabel = "$event"
	VertexProject              VertexLabel = "project"
	VertexDocument              VertexLabel = "document"
	VertexRange                 VertexLabel = "range"
	VertexResultSet             VertexLabel = "resultSet"
	VertexMoniker               VertexLabel = "moniker"
	VertexPackageInformation    VertexLabel = "packageInformation"
	VertexHoverResult           VertexLabel = "hoverResult"
	VertexDeclarationResult     VertexLabel = "declarationResult"
	VertexDefinitionResult      VertexLabel = "definitionResult"
	VertexTypeDefinitionResult  VertexLabel = "typeDefinitionResult"
	VertexReferenceResult       VertexLabel = "referenceResult"
	VertexImplementationResult  VertexLabel = "implementationResult"
	VertexDocumentSymbolResult  VertexLabel = "documentSymbolResult"
	VertexFoldingRangeResult    VertexLabel = "foldingRangeResult"
	VertexDiagnosticResult      VertexLabel = "diagnosticResult"
)

// Vertex is embedded by every concrete vertex type.
type Vertex struct {
	Element
	Label VertexLabel `json:"label"`
}

func newVertex(id ID, label VertexLabel) Vertex {
	return Vertex{Element: Element{ID: id, Type: ElementVertex}, Label: label}
}

// EdgeLabel names the kind of an edge.
type EdgeLabel string

const (
	EdgeContains                   EdgeLabel = "contains"
	EdgeNext                       EdgeLabel = "next"
	EdgeMoniker                    EdgeLabel = "moniker"
	EdgePackageInformation         EdgeLabel = "packageInformation"
	EdgeAttach                     EdgeLabel = "attach"
	EdgeItem                       EdgeLabel = "item"
	EdgeTextDocumentHover          EdgeLabel = "textDocument/hover"
	EdgeTextDocumentDeclaration    EdgeLabel = "textDocument/declaration"
	EdgeTextDocumentDefinition     EdgeLabel = "textDocument/definition"
	EdgeTextDocumentTypeDefinition EdgeLabel = "textDocument/typeDefinition"
	EdgeTextDocumentReferences     EdgeLabel = "textDocument/references"
	EdgeTextDocumentImplementation EdgeLabel = "textDocument/implementation"
	EdgeTextDocumentDocumentSymbol EdgeLabel = "textDocument/documentSymbol"
	EdgeTextDocumentFoldingRange   EdgeLabel = "textDocument/foldingRange"
	EdgeTextDocumentDiagnostic     EdgeLabel = "textDocument/diagnostic"
)

// Edge is embedded by every concrete edge type.
type Edge struct {
	Element
	Label EdgeLabel `json:"label"`
}

func newEdge(id ID, label EdgeLabel) Edge {
	return Edge{Element: Element{ID: id, Type: ElementEdge}, Label: label}
}

// ToolInfo describes the producer of the dump.
type ToolInfo struct {
	Name    string   `json:"name"`
	Version string   `json:"version,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// MetaData is the first vertex of every dump.
type MetaData struct {
	Vertex
	Version          string   `json:"version"`
	ProjectRoot      string   `json:"projectRoot"`
	PositionEncoding string   `json:"positionEncoding"`
	ToolInfo         ToolInfo `json:"toolInfo"`
}

// NewMetaData returns a new MetaData vertex.
func NewMetaData(id ID, projectRoot string, info ToolInfo) *MetaData {
	return &MetaData{
		Vertex:           newVertex(id, VertexMetaData),
		Version:          Version,
		ProjectRoot:      projectRoot,
		PositionEncoding: PositionEncoding,
		ToolInfo:         info,
	}
}

func encodeContents(contents []byte) string {
	if len(contents) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(contents)
}
