package writer

import "github.com/tscodeintel/lsif-ecma/protocol"

// edgeEndpoints extracts the (out, ins, label) triple from any concrete edge
// type the protocol package defines. Used by the two aggregate sinks, which
// need to fold edges into per-vertex in/out lists rather than stream them.
func edgeEndpoints(element interface{}) (out protocol.ID, ins []protocol.ID, label protocol.EdgeLabel, ok bool) {
	switch e := element.(type) {
	case *protocol.Next:
		return e.OutV, []protocol.ID{e.InV}, e.Label, true
	case *protocol.Contains:
		return e.OutV, e.InVs, e.Label, true
	case *protocol.MonikerEdge:
		return e.OutV, []protocol.ID{e.InV}, e.Label, true
	case *protocol.PackageInformationEdge:
		return e.OutV, []protocol.ID{e.InV}, e.Label, true
	case *protocol.Attach:
		return e.OutV, []protocol.ID{e.InV}, e.Label, true
	case *protocol.Item:
		return e.OutV, e.InVs, e.Label, true
	case *protocol.TextDocumentEdge:
		return e.OutV, []protocol.ID{e.InV}, e.Label, true
	default:
		return "", nil, "", false
	}
}

// vertexID extracts the id of any concrete vertex type. Returns ok=false for
// edges (and anything else that isn't a vertex).
func vertexID(element interface{}) (protocol.ID, bool) {
	switch v := element.(type) {
	case *protocol.MetaData:
		return v.ID, true
	case *protocol.Project:
		return v.ID, true
	case *protocol.Document:
		return v.ID, true
	case *protocol.Range:
		return v.ID, true
	case *protocol.ResultSet:
		return v.ID, true
	case *protocol.DefinitionResult:
		return v.ID, true
	case *protocol.DeclarationResult:
		return v.ID, true
	case *protocol.ReferenceResult:
		return v.ID, true
	case *protocol.TypeDefinitionResult:
		return v.ID, true
	case *protocol.ImplementationResult:
		return v.ID, true
	case *protocol.HoverResult:
		return v.ID, true
	case *protocol.Moniker:
		return v.ID, true
	case *protocol.PackageInformation:
		return v.ID, true
	case *protocol.DocumentSymbolResult:
		return v.ID, true
	case *protocol.FoldingRangeResult:
		return v.ID, true
	case *protocol.DiagnosticResult:
		return v.ID, true
	case *protocol.Event:
		return v.ID, true
	default:
		return "", false
	}
}
