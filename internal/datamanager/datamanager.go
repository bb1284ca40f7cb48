// Package datamanager implements the Data Manager (spec §4.3): the single
// point of lifecycle truth for a project's vertices and events. It owns the
// per-document accumulators, the per-symbol SymbolData cache, and the
// scope-to-symbol-data table that lets a closing syntactic scope tear down
// the symbol-data declared within it (spec §3 invariant 7).
package datamanager

import (
	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/emit"
	"github.com/tscodeintel/lsif-ecma/internal/errs"
	"github.com/tscodeintel/lsif-ecma/internal/idkey"
	"github.com/tscodeintel/lsif-ecma/internal/resolver"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// documentData is the internal accumulator for one open document (spec §3:
// "DocumentData ... holding ranges, diagnostics, folding ranges, and
// document-symbols to be committed at end").
type documentData struct {
	id          protocol.ID
	path        string
	ranges      []protocol.ID
	diagnostics []protocol.Diagnostic
	folding     []protocol.FoldingRange
	docSymbols  []protocol.DocumentSymbol
	// touched is every symbol-data that recorded a definition, declaration,
	// or reference range in this document, so DocumentDone knows which
	// partitions to flush.
	touched map[idkey.Key]*resolver.SymbolData
}

// DataManager owns the lifecycle of a project's vertices and events.
type DataManager struct {
	emitter *emit.Emitter
	resolve *resolver.Resolver

	projectID protocol.ID

	documents map[string]*documentData
	symbols   map[idkey.Key]*resolver.SymbolData
	// scoped maps a syntactic scope node to the symbol-datas whose lifetime
	// ends when that node finishes processing (spec §4.3 manageLifecycle).
	scoped map[checker.Node][]*resolver.SymbolData
}

// New returns a DataManager emitting through e and resolving symbols via res.
func New(e *emit.Emitter, res *resolver.Resolver) *DataManager {
	return &DataManager{
		emitter:   e,
		resolve:   res,
		documents: map[string]*documentData{},
		symbols:   map[idkey.Key]*resolver.SymbolData{},
		scoped:    map[checker.Node][]*resolver.SymbolData{},
	}
}

// BeginProject emits the project vertex followed by its begin event.
func (m *DataManager) BeginProject(name string, contents []byte) error {
	id, err := m.emitter.Project(name, contents)
	if err != nil {
		return err
	}
	m.projectID = id
	_, err = m.emitter.BeginEvent(protocol.ScopeProject, id)
	return err
}

// ProjectID returns the id of the project vertex emitted by BeginProject.
func (m *DataManager) ProjectID() protocol.ID { return m.projectID }

// GetOrCreateDocumentData returns the existing document, or emits a fresh
// document vertex and begin event on first visit of path (spec §4.3).
func (m *DataManager) GetOrCreateDocumentData(path, uri string, contents []byte) (protocol.ID, error) {
	if d, ok := m.documents[path]; ok {
		return d.id, nil
	}
	id, err := m.emitter.Document(uri, contents)
	if err != nil {
		return "", err
	}
	m.documents[path] = &documentData{id: id, path: path, touched: map[idkey.Key]*resolver.SymbolData{}}
	if _, err := m.emitter.BeginEvent(protocol.ScopeDocument, id); err != nil {
		return "", err
	}
	return id, nil
}

// DocumentID returns the id of an already-opened document.
func (m *DataManager) DocumentID(path string) (protocol.ID, bool) {
	d, ok := m.documents[path]
	if !ok {
		return "", false
	}
	return d.id, true
}

// GetOrCreateSymbolData returns sym's existing SymbolData, or invokes the
// Resolver to construct one and emits its result-set on first touch (spec
// §4.3). The scope computed on first construction is authoritative for the
// symbol-data's whole lifetime, per the Open Question resolved in spec §9:
// a symbol first seen through an alias or a direct reference keeps whatever
// scope its first resolution produced.
func (m *DataManager) GetOrCreateSymbolData(sym checker.Symbol) (*resolver.SymbolData, error) {
	key := idkey.Of(sym)
	if d, ok := m.symbols[key]; ok {
		return d, nil
	}

	d, err := m.resolve.NewSymbolData(sym, m.GetOrCreateSymbolData)
	if err != nil {
		return nil, err
	}
	m.symbols[key] = d

	if scope, ok := d.Scope(); ok {
		m.scoped[scope] = append(m.scoped[scope], d)
	}
	return d, nil
}

// AddRange records rangeID as belonging to the open document at path, for
// the document's single `contains` edge at document-end (spec §3 invariant 5).
func (m *DataManager) AddRange(path string, rangeID protocol.ID) {
	if d, ok := m.documents[path]; ok {
		d.ranges = append(d.ranges, rangeID)
	}
}

// RecordDefinition files rangeID as a definition occurrence of symData in
// the document at path.
func (m *DataManager) RecordDefinition(path string, symData *resolver.SymbolData, rangeID protocol.ID) error {
	doc, ok := m.documents[path]
	if !ok {
		return errs.NewStateAssertion("recordDefinition: document not open: " + path)
	}
	doc.touched[symData.Key] = symData
	return symData.AddDefinition(m.emitter, doc.id, rangeID)
}

// RecordDeclaration files rangeID as a declaration occurrence of symData in
// the document at path.
func (m *DataManager) RecordDeclaration(path string, symData *resolver.SymbolData, rangeID protocol.ID) error {
	doc, ok := m.documents[path]
	if !ok {
		return errs.NewStateAssertion("recordDeclaration: document not open: " + path)
	}
	doc.touched[symData.Key] = symData
	return symData.AddDeclaration(m.emitter, doc.id, rangeID)
}

// RecordReference files rangeID as a reference occurrence of symData in the
// document at path.
func (m *DataManager) RecordReference(path string, symData *resolver.SymbolData, rangeID protocol.ID) error {
	doc, ok := m.documents[path]
	if !ok {
		return errs.NewStateAssertion("recordReference: document not open: " + path)
	}
	doc.touched[symData.Key] = symData
	return symData.AddReference(m.emitter, doc.id, rangeID)
}

// SetDiagnostics, SetFolding and SetDocumentSymbols stage the results the
// Visitor gathers at source-file end (spec §4.5 step 6) for DocumentDone to
// flush.
func (m *DataManager) SetDiagnostics(path string, diagnostics []protocol.Diagnostic) {
	if d, ok := m.documents[path]; ok {
		d.diagnostics = diagnostics
	}
}

func (m *DataManager) SetFolding(path string, spans []protocol.FoldingRange) {
	if d, ok := m.documents[path]; ok {
		d.folding = spans
	}
}

func (m *DataManager) SetDocumentSymbols(path string, tree []protocol.DocumentSymbol) {
	if d, ok := m.documents[path]; ok {
		d.docSymbols = tree
	}
}

// NodeProcessed is called by the Visitor after each AST node's end-visit
// (spec §4.3). Every symbol-data whose scope is exactly this node is closed:
// its remaining partitions are flushed and it is marked ended. Ranges
// recorded against it afterward are still accepted (see SymbolData.Close).
func (m *DataManager) NodeProcessed(node checker.Node) error {
	datas, ok := m.scoped[node]
	if !ok {
		return nil
	}
	delete(m.scoped, node)
	for _, d := range datas {
		if err := d.Close(m.emitter); err != nil {
			return err
		}
	}
	return nil
}

// DocumentDone flushes the document's pending ranges, diagnostics, folding
// ranges, and document-symbol tree, then emits the document-end event (spec
// §4.3). Order of emission: contains -> ranges, then diagnostic/folding/
// document-symbol results, then every touched symbol-data's partition for
// this document, finally the document-end event.
func (m *DataManager) DocumentDone(path string) error {
	doc, ok := m.documents[path]
	if !ok {
		return errs.NewStateAssertion("documentDone: unknown document: " + path)
	}
	delete(m.documents, path)

	if len(doc.ranges) > 0 {
		if _, err := m.emitter.Contains(doc.id, doc.ranges); err != nil {
			return err
		}
	}

	if len(doc.diagnostics) > 0 {
		resultID, err := m.emitter.DiagnosticResult(doc.diagnostics)
		if err != nil {
			return err
		}
		if _, err := m.emitter.TextDocumentDiagnostic(doc.id, resultID); err != nil {
			return err
		}
	}

	if len(doc.folding) > 0 {
		resultID, err := m.emitter.FoldingRangeResult(doc.folding)
		if err != nil {
			return err
		}
		if _, err := m.emitter.TextDocumentFoldingRange(doc.id, resultID); err != nil {
			return err
		}
	}

	if len(doc.docSymbols) > 0 {
		resultID, err := m.emitter.DocumentSymbolResult(doc.docSymbols)
		if err != nil {
			return err
		}
		if _, err := m.emitter.TextDocumentDocumentSymbol(doc.id, resultID); err != nil {
			return err
		}
	}

	for _, symData := range doc.touched {
		if err := symData.FlushPartition(m.emitter, doc.id); err != nil {
			return err
		}
	}

	_, err := m.emitter.EndEvent(protocol.ScopeDocument, doc.id)
	return err
}

// ProjectDone flushes every still-open symbol-data, then every open
// document, then emits the project-end event (spec §4.3). A symbol-data
// closed here a second time by a document's own flush is a no-op: Close and
// FlushPartition both tolerate an already-empty partition.
func (m *DataManager) ProjectDone() error {
	for _, d := range m.symbols {
		if d.Ended() {
			continue
		}
		if err := d.Close(m.emitter); err != nil {
			return err
		}
	}

	for path := range m.documents {
		if err := m.DocumentDone(path); err != nil {
			return err
		}
	}

	_, err := m.emitter.EndEvent(protocol.ScopeProject, m.projectID)
	return err
}
