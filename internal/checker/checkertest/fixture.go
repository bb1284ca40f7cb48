// Package checkertest is a small in-memory implementation of the
// internal/checker contracts, used only by this repository's own tests. It
// stands in for a real compiler embedding — no TypeScript/ECMAScript parser
// ships in this repository (spec §1 places the front-end out of scope).
package checkertest

import (
	"fmt"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
)

// Node is a hand-built syntax node.
type Node struct {
	NodeKind     checker.NodeKind
	NodeSpan     checker.Span
	NodeParent   checker.Node
	NodeChildren []checker.Node
	NodeSymbol   checker.Symbol
	NodeName     string
}

func (n *Node) Kind() checker.NodeKind   { return n.NodeKind }
func (n *Node) Span() checker.Span       { return n.NodeSpan }
func (n *Node) Parent() checker.Node     { return n.NodeParent }
func (n *Node) Children() []checker.Node { return n.NodeChildren }
func (n *Node) Name() string             { return n.NodeName }

func (n *Node) Symbol() (checker.Symbol, bool) {
	if n.NodeSymbol == nil {
		return nil, false
	}
	return n.NodeSymbol, true
}

// AddChild appends a child node and wires its parent back-reference.
func (n *Node) AddChild(child *Node) *Node {
	child.NodeParent = n
	n.NodeChildren = append(n.NodeChildren, child)
	return n
}

// Symbol is a hand-built semantic symbol.
type Symbol struct {
	SymbolHandle   string
	SymbolName     string
	SymbolFlags    checker.SymbolFlag
	SymbolDecls    []checker.Declaration
	SymbolParent   checker.Symbol
	SymbolExports  map[string]checker.Symbol
	SymbolMembers  map[string]checker.Symbol
	SymbolAliased  checker.Symbol
	SymbolHeritage []checker.Symbol
}

func (s *Symbol) Handle() string                  { return s.SymbolHandle }
func (s *Symbol) Name() string                     { return s.SymbolName }
func (s *Symbol) Flags() checker.SymbolFlag        { return s.SymbolFlags }
func (s *Symbol) Declarations() []checker.Declaration { return s.SymbolDecls }
func (s *Symbol) Exports() map[string]checker.Symbol  { return s.SymbolExports }
func (s *Symbol) Members() map[string]checker.Symbol  { return s.SymbolMembers }
func (s *Symbol) HeritageSymbols() []checker.Symbol    { return s.SymbolHeritage }

func (s *Symbol) Parent() (checker.Symbol, bool) {
	if s.SymbolParent == nil {
		return nil, false
	}
	return s.SymbolParent, true
}

func (s *Symbol) AliasedSymbol() (checker.Symbol, bool) {
	if s.SymbolAliased == nil {
		return nil, false
	}
	return s.SymbolAliased, true
}

// Type is a hand-built resolved type.
type Type struct {
	TypeConstituents []checker.Type
	TypeSymbol       checker.Symbol
}

func (t *Type) Constituents() []checker.Type { return t.TypeConstituents }

func (t *Type) Symbol() (checker.Symbol, bool) {
	if t.TypeSymbol == nil {
		return nil, false
	}
	return t.TypeSymbol, true
}

// SourceFile is a hand-built source file.
type SourceFile struct {
	FilePath    string
	FileContent []byte
	Root        *Node
	File        checker.Symbol
}

func (f *SourceFile) Path() string            { return f.FilePath }
func (f *SourceFile) Contents() []byte        { return f.FileContent }
func (f *SourceFile) AST() checker.Node       { return f.Root }
func (f *SourceFile) FileSymbol() checker.Symbol { return f.File }

// Checker is a hand-built type checker: every query is satisfied from maps
// populated by the test building the fixture.
type Checker struct {
	SymbolsByPosition map[string]checker.Symbol // key: file path + ":" + line + ":" + char
	QuickInfos        map[string]string
	Outlines          map[string][]checker.Span
	DiagnosticsByFile map[string][]checker.Diagnostic
	DeclaredTypes     map[string]checker.Type // key: symbol handle
}

// NewChecker returns an empty Checker ready to be populated.
func NewChecker() *Checker {
	return &Checker{
		SymbolsByPosition: map[string]checker.Symbol{},
		QuickInfos:        map[string]string{},
		Outlines:          map[string][]checker.Span{},
		DiagnosticsByFile: map[string][]checker.Diagnostic{},
		DeclaredTypes:     map[string]checker.Type{},
	}
}

func posKey(path string, pos checker.Position) string {
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Character)
}

// Bind associates the symbol resolved at a position, for later SymbolAt calls.
func (c *Checker) Bind(file checker.SourceFile, pos checker.Position, sym checker.Symbol) {
	c.SymbolsByPosition[posKey(file.Path(), pos)] = sym
}

func (c *Checker) SymbolAt(file checker.SourceFile, pos checker.Position) (checker.Symbol, bool) {
	sym, ok := c.SymbolsByPosition[posKey(file.Path(), pos)]
	return sym, ok
}

func (c *Checker) QuickInfo(file checker.SourceFile, pos checker.Position) (string, bool) {
	contents, ok := c.QuickInfos[posKey(file.Path(), pos)]
	return contents, ok
}

func (c *Checker) OutliningSpans(file checker.SourceFile) []checker.Span {
	return c.Outlines[file.Path()]
}

func (c *Checker) Diagnostics(file checker.SourceFile) []checker.Diagnostic {
	return c.DiagnosticsByFile[file.Path()]
}

func (c *Checker) DeclaredType(sym checker.Symbol) (checker.Type, bool) {
	t, ok := c.DeclaredTypes[sym.Handle()]
	return t, ok
}

// Program is a hand-built compilation unit.
type Program struct {
	Path       string
	ProgName   string
	SourceList []checker.SourceFile
	Check      *Checker
	Refs       []checker.Program
}

func (p *Program) ModulePath() string         { return p.Path }
func (p *Program) Name() string               { return p.ProgName }
func (p *Program) Files() []checker.SourceFile { return p.SourceList }
func (p *Program) Checker() checker.TypeChecker { return p.Check }
func (p *Program) References() []checker.Program { return p.Refs }
