package protocol

import "fmt"

// Next is a 1:1 edge linking a range (or nested result set) to the ResultSet
// that owns its language-server results.
type Next struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

func NewNext(id, outV, inV ID) *Next {
	return &Next{Edge: newEdge(id, EdgeNext), OutV: outV, InV: inV}
}

// Contains is a 1:N edge from a project or document to everything it owns.
type Contains struct {
	Edge
	OutV ID   `json:"outV"`
	InVs []ID `json:"inVs"`
}

func NewContains(id, outV ID, inVs []ID) *Contains {
	return &Contains{Edge: newEdge(id, EdgeContains), OutV: outV, InVs: inVs}
}

// MonikerEdge is a 1:1 edge attaching a Moniker to a range or result set.
type MonikerEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

func NewMonikerEdge(id, outV, inV ID) *MonikerEdge {
	return &MonikerEdge{Edge: newEdge(id, EdgeMoniker), OutV: outV, InV: inV}
}

// PackageInformationEdge is a 1:1 edge from a Moniker to the PackageInformation naming it.
type PackageInformationEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

func NewPackageInformationEdge(id, outV, inV ID) *PackageInformationEdge {
	return &PackageInformationEdge{Edge: newEdge(id, EdgePackageInformation), OutV: outV, InV: inV}
}

// Attach is a 1:1 edge linking a composite symbol's moniker to one of its leaf monikers.
type Attach struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

func NewAttach(id, outV, inV ID) *Attach {
	return &Attach{Edge: newEdge(id, EdgeAttach), OutV: outV, InV: inV}
}

// ItemProperty disambiguates what an Item edge's target list means.
type ItemProperty string

const (
	ItemPropertyNone              ItemProperty = ""
	ItemPropertyDeclarations      ItemProperty = "declarations"
	ItemPropertyDefinitions       ItemProperty = "definitions"
	ItemPropertyReferences        ItemProperty = "references"
	ItemPropertyReferenceResults  ItemProperty = "referenceResults"
	ItemPropertyReferenceLinks    ItemProperty = "referenceLinks"
	ItemPropertyImplementationLinks ItemProperty = "implementationLinks"
)

// Item is a 1:N edge fanning a result vertex out to ranges, nested result
// vertices, or linked monikers, tagged with Property and carrying Shard (the
// containing document or project id).
type Item struct {
	Edge
	OutV     ID           `json:"outV"`
	InVs     []ID         `json:"inVs"`
	Shard    ID           `json:"document"`
	Property ItemProperty `json:"property,omitempty"`
}

// NewItem constructs an Item edge, applying the construction rules of spec §4.1:
//
//	(a) empty targets from a reference-result source -> property "references"
//	(b) reference-result source with range targets requires an explicit property
//	    in {declarations, definitions, references}
//	(c) reference-result -> reference-result -> property "referenceResults"
//	(d) reference-result -> moniker -> property "referenceLinks"
//	(e) implementation-result -> moniker -> property "implementationLinks"
//
// sourceLabel and targetLabel identify the kind of the OutV/InVs vertices so
// the rule can be checked; callers outside this package reach it through
// builder.Builder.Item, which passes the labels its own caller supplies.
func NewItem(id, outV ID, inVs []ID, shard ID, sourceLabel, targetLabel VertexLabel, property ItemProperty) (*Item, error) {
	resolved, err := resolveItemProperty(sourceLabel, targetLabel, len(inVs), property)
	if err != nil {
		return nil, err
	}

	return &Item{
		Edge:     newEdge(id, EdgeItem),
		OutV:     outV,
		InVs:     inVs,
		Shard:    shard,
		Property: resolved,
	}, nil
}

func resolveItemProperty(sourceLabel, targetLabel VertexLabel, targetCount int, property ItemProperty) (ItemProperty, error) {
	switch {
	case sourceLabel == VertexReferenceResult && targetCount == 0:
		return ItemPropertyReferences, nil

	case sourceLabel == VertexReferenceResult && targetLabel == VertexRange:
		switch property {
		case ItemPropertyDeclarations, ItemPropertyDefinitions, ItemPropertyReferences:
			return property, nil
		default:
			return "", fmt.Errorf("protocol: item edge from referenceResult to range requires an explicit property in {declarations, definitions, references}, got %q", property)
		}

	case sourceLabel == VertexReferenceResult && targetLabel == VertexReferenceResult:
		return ItemPropertyReferenceResults, nil

	case sourceLabel == VertexReferenceResult && targetLabel == VertexMoniker:
		return ItemPropertyReferenceLinks, nil

	case sourceLabel == VertexImplementationResult && targetLabel == VertexMoniker:
		return ItemPropertyImplementationLinks, nil

	case sourceLabel == VertexDefinitionResult && targetLabel == VertexRange:
		return ItemPropertyNone, nil

	case sourceLabel == VertexDeclarationResult && targetLabel == VertexRange:
		return ItemPropertyNone, nil

	case sourceLabel == VertexTypeDefinitionResult && targetLabel == VertexRange:
		return ItemPropertyNone, nil

	case sourceLabel == VertexImplementationResult && targetLabel == VertexRange:
		return ItemPropertyNone, nil

	default:
		return "", fmt.Errorf("protocol: item edge from %s to %s is not a recognized combination", sourceLabel, targetLabel)
	}
}

// TextDocumentEdge is a 1:1 edge from a range, result set or document to one
// of the textDocument/* result vertices.
type TextDocumentEdge struct {
	Edge
	OutV ID `json:"outV"`
	InV  ID `json:"inV"`
}

func newTextDocumentEdge(id ID, label EdgeLabel, outV, inV ID) *TextDocumentEdge {
	return &TextDocumentEdge{Edge: newEdge(id, label), OutV: outV, InV: inV}
}

func NewTextDocumentHover(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentHover, outV, inV)
}

func NewTextDocumentDeclaration(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentDeclaration, outV, inV)
}

func NewTextDocumentDefinition(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentDefinition, outV, inV)
}

func NewTextDocumentTypeDefinition(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentTypeDefinition, outV, inV)
}

func NewTextDocumentReferences(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentReferences, outV, inV)
}

func NewTextDocumentImplementation(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentImplementation, outV, inV)
}

func NewTextDocumentDocumentSymbol(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentDocumentSymbol, outV, inV)
}

func NewTextDocumentFoldingRange(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentFoldingRange, outV, inV)
}

func NewTextDocumentDiagnostic(id, outV, inV ID) *TextDocumentEdge {
	return newTextDocumentEdge(id, EdgeTextDocumentDiagnostic, outV, inV)
}
