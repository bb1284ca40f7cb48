// Package graphtest holds reusable assertions over an emitted element slice
// (spec §8 "testable properties"): the structural invariants any scenario
// must hold regardless of which compiler front-end produced it, plus small
// counting and lookup helpers for scenario assertions.
package graphtest

import (
	"fmt"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

// MemorySink is a protocol.Sink that keeps every emitted element in order, in
// memory, for a test to inspect afterward. Grounded in the teacher's own
// habit of testing the indexer against an in-memory writer rather than a
// real file.
type MemorySink struct {
	Elements []interface{}
}

func (s *MemorySink) Start() error { return nil }

func (s *MemorySink) Emit(element interface{}) error {
	s.Elements = append(s.Elements, element)
	return nil
}

func (s *MemorySink) Flush() error { return nil }

func (s *MemorySink) End() error { return nil }

var _ protocol.Sink = (*MemorySink)(nil)

// Vertices returns the id set of every vertex in elements.
func Vertices(elements []interface{}) map[protocol.ID]bool {
	seen := map[protocol.ID]bool{}
	for _, el := range elements {
		if id, ok := vertexID(el); ok {
			seen[id] = true
		}
	}
	return seen
}

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

func edgeEndpoints(element interface{}) (out protocol.ID, ins []protocol.ID, ok bool) {
	switch e := element.(type) {
	case *protocol.Next:
		return e.OutV, []protocol.ID{e.InV}, true
	case *protocol.Contains:
		return e.OutV, e.InVs, true
	case *protocol.MonikerEdge:
		return e.OutV, []protocol.ID{e.InV}, true
	case *protocol.PackageInformationEdge:
		return e.OutV, []protocol.ID{e.InV}, true
	case *protocol.Attach:
		return e.OutV, []protocol.ID{e.InV}, true
	case *protocol.Item:
		return e.OutV, e.InVs, true
	case *protocol.TextDocumentEdge:
		return e.OutV, []protocol.ID{e.InV}, true
	default:
		return "", nil, false
	}
}

// EndpointsExist asserts that every edge's outV and inVs name a vertex that
// was emitted somewhere in elements (spec §3's element graph is only
// well-formed if every edge endpoint resolves).
func EndpointsExist(elements []interface{}) error {
	vertices := Vertices(elements)
	for i, el := range elements {
		out, ins, ok := edgeEndpoints(el)
		if !ok {
			continue
		}
		if !vertices[out] {
			return fmt.Errorf("element %d: edge outV %q does not name a known vertex", i, out)
		}
		for _, in := range ins {
			if !vertices[in] {
				return fmt.Errorf("element %d: edge inV %q does not name a known vertex", i, in)
			}
		}
	}
	return nil
}

// OneNextPerRange asserts the upper half of spec §3 invariant 2: no vertex
// has more than one outgoing `next` edge. A range with no `next` edge at all
// is not reported.
func OneNextPerRange(elements []interface{}) error {
	counts := map[protocol.ID]int{}
	for _, el := range elements {
		n, ok := el.(*protocol.Next)
		if !ok {
			continue
		}
		counts[n.OutV]++
	}
	for id, c := range counts {
		if c != 1 {
			return fmt.Errorf("range/result-set %q has %d outgoing next edges, want exactly 1", id, c)
		}
	}
	return nil
}

// ItemsReferenceOwnDocument asserts spec §3 invariant 3: every item edge
// targeting ranges only targets ranges contained in its own Shard document
// (via that document's `contains` edge).
func ItemsReferenceOwnDocument(elements []interface{}) error {
	containsByDoc := map[protocol.ID]map[protocol.ID]bool{}
	for _, el := range elements {
		c, ok := el.(*protocol.Contains)
		if !ok {
			continue
		}
		set := containsByDoc[c.OutV]
		if set == nil {
			set = map[protocol.ID]bool{}
			containsByDoc[c.OutV] = set
		}
		for _, in := range c.InVs {
			set[in] = true
		}
	}

	for i, el := range elements {
		item, ok := el.(*protocol.Item)
		if !ok {
			continue
		}
		if item.Property != protocol.ItemPropertyDeclarations &&
			item.Property != protocol.ItemPropertyDefinitions &&
			item.Property != protocol.ItemPropertyReferences {
			continue
		}
		owned := containsByDoc[item.Shard]
		for _, in := range item.InVs {
			if !owned[in] {
				return fmt.Errorf("element %d: item edge shard %q does not contain target range %q", i, item.Shard, in)
			}
		}
	}
	return nil
}

// MonikersDeduped asserts spec §3 invariant 4: no two Moniker vertices share
// a (scheme, identifier) pair.
func MonikersDeduped(elements []interface{}) error {
	seen := map[string]protocol.ID{}
	for _, el := range elements {
		m, ok := el.(*protocol.Moniker)
		if !ok {
			continue
		}
		key := m.Scheme + "\x00" + m.Identifier
		if prior, ok := seen[key]; ok && prior != m.ID {
			return fmt.Errorf("moniker (%s, %s) emitted twice: %q and %q", m.Scheme, m.Identifier, prior, m.ID)
		}
		seen[key] = m.ID
	}
	return nil
}

// OneContainsPerDocument asserts spec §3 invariant 5: a document emits at
// most one `contains` edge, at document-end.
func OneContainsPerDocument(elements []interface{}) error {
	counts := map[protocol.ID]int{}
	for _, el := range elements {
		c, ok := el.(*protocol.Contains)
		if !ok {
			continue
		}
		if _, isDoc := documentIDs(elements)[c.OutV]; !isDoc {
			continue
		}
		counts[c.OutV]++
	}
	for id, c := range counts {
		if c > 1 {
			return fmt.Errorf("document %q emits %d contains edges, want at most 1", id, c)
		}
	}
	return nil
}

func documentIDs(elements []interface{}) map[protocol.ID]bool {
	ids := map[protocol.ID]bool{}
	for _, el := range elements {
		if d, ok := el.(*protocol.Document); ok {
			ids[d.ID] = true
		}
	}
	return ids
}

// EventsBalanced asserts spec §3 invariant 6: every begin event for a given
// (scope, data) pair is matched by exactly one end event, and checks the
// simple LIFO nesting a single project/document lifecycle implies: no two
// begin events for the same data without an intervening end.
func EventsBalanced(elements []interface{}) error {
	open := map[protocol.ID]bool{}
	for i, el := range elements {
		e, ok := el.(*protocol.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case protocol.EventBegin:
			if open[e.Data] {
				return fmt.Errorf("element %d: begin event for %q with no matching end from a prior begin", i, e.Data)
			}
			open[e.Data] = true
		case protocol.EventEnd:
			if !open[e.Data] {
				return fmt.Errorf("element %d: end event for %q with no matching begin", i, e.Data)
			}
			delete(open, e.Data)
		}
	}
	for id := range open {
		return fmt.Errorf("begin event for %q never matched by an end event", id)
	}
	return nil
}

// AllInvariants runs every structural check above, returning the first
// failure encountered.
func AllInvariants(elements []interface{}) error {
	checks := []func([]interface{}) error{
		EndpointsExist,
		OneNextPerRange,
		ItemsReferenceOwnDocument,
		MonikersDeduped,
		OneContainsPerDocument,
		EventsBalanced,
	}
	for _, check := range checks {
		if err := check(elements); err != nil {
			return err
		}
	}
	return nil
}

// CountByLabel tallies vertices by label and edges by label, for assertions
// like "exactly one export moniker was emitted".
func CountByLabel(elements []interface{}) map[string]int {
	counts := map[string]int{}
	for _, el := range elements {
		switch v := el.(type) {
		case *protocol.Moniker:
			counts["vertex:"+string(v.Label)]++
		case *protocol.Range:
			counts["vertex:"+string(v.Label)]++
		case *protocol.Document:
			counts["vertex:"+string(v.Label)]++
		case *protocol.Project:
			counts["vertex:"+string(v.Label)]++
		case *protocol.ResultSet:
			counts["vertex:"+string(v.Label)]++
		case *protocol.Next:
			counts["edge:"+string(v.Label)]++
		case *protocol.Item:
			counts["edge:"+string(v.Label)]++
		case *protocol.Contains:
			counts["edge:"+string(v.Label)]++
		case *protocol.MonikerEdge:
			counts["edge:"+string(v.Label)]++
		case *protocol.Attach:
			counts["edge:"+string(v.Label)]++
		case *protocol.Event:
			counts["vertex:"+string(v.Label)]++
		}
	}
	return counts
}

// MonikerByIdentifier returns the first Moniker vertex with the given
// identifier, for assertions that a specific scenario's export/import/local
// moniker exists with the expected text.
func MonikerByIdentifier(elements []interface{}, identifier string) (*protocol.Moniker, bool) {
	for _, el := range elements {
		if m, ok := el.(*protocol.Moniker); ok && m.Identifier == identifier {
			return m, true
		}
	}
	return nil, false
}
