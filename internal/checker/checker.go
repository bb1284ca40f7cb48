// Package checker declares the capabilities this indexer requires from a
// compiler front-end for a statically typed ECMAScript-family language. Per
// spec §1 the front-end itself (TypeChecker, Program, SourceFile, Symbol,
// Node) is out of scope: these are contracts only. Nothing in this
// repository implements them against a real compiler; internal/checker/checkertest
// provides a small in-memory implementation used by this repository's own
// tests, standing in for a real embedder's binding.
package checker

// Position is a zero-based line/character location within a source file.
type Position struct {
	Line      int
	Character int
}

// Span is a half-open [Start,End) region of a source file.
type Span struct {
	Start Position
	End   Position
}

// NodeKind classifies a syntax node. The Visitor (internal/visitor) only
// needs to distinguish source files, the handful of container-declaration
// kinds, identifiers, and everything else ("transparent", per spec §4.5).
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindSourceFile
	KindIdentifier
	KindModuleDecl
	KindClassDecl
	KindInterfaceDecl
	KindFunctionDecl
	KindMethodDecl
	KindArrowFunction
	KindFunctionExpression
	KindClassExpression
	KindParameter
	KindTypeParameter
	KindVariableDecl // block-scoped let/const
	KindBlock
)

// EmitBoundaryKinds are the node kinds spec §4.4 designates as possible
// emission scopes for a non-exported, singly-declared symbol: function,
// class, block-scoped let/const, parameter, type-parameter, arrow, ...
var EmitBoundaryKinds = map[NodeKind]bool{
	KindFunctionDecl:       true,
	KindMethodDecl:         true,
	KindArrowFunction:      true,
	KindFunctionExpression: true,
	KindClassDecl:          true,
	KindClassExpression:    true,
	KindVariableDecl:       true,
	KindParameter:          true,
	KindTypeParameter:      true,
	KindBlock:              true,
}

// EmitStopKinds are the node kinds spec §4.4.1 treats as moniker-path stops:
// anonymous expressions and blocks beyond which a container chain cannot be
// named.
var EmitStopKinds = map[NodeKind]bool{
	KindBlock:              true,
	KindClassExpression:    true,
	KindFunctionExpression: true,
	KindArrowFunction:      true,
}

// Node is one syntax-tree node. Back-references to Parent let the Visitor
// and Resolver walk container chains without needing the checker to expose
// a textual source buffer.
type Node interface {
	Kind() NodeKind
	Span() Span
	Parent() Node
	Children() []Node
	// Symbol returns the canonical symbol this node declares or references,
	// if any ("optional symbol back-reference" in spec §6).
	Symbol() (Symbol, bool)
	// Name returns the node's own identifier text, for container-declaration
	// and identifier nodes; empty otherwise.
	Name() string
}

// SymbolFlag is a bitmask of the facts the Resolver needs to pick a
// SymbolData variant and compute an emission scope (spec §4.4).
type SymbolFlag uint32

const (
	FlagExported SymbolFlag = 1 << iota
	FlagAlias
	FlagClass
	FlagInterface
	FlagMethod
	FlagFunction
	FlagTypeLiteral
	FlagTransient // synthesized by the checker, not written by the user
	// FlagAmbient marks a `declare`-only binding: it has a DeclarationResult
	// rather than a DefinitionResult, since no value is ever constructed for
	// it in this compilation (spec §3 Data Model, scenario 6 in §8).
	FlagAmbient
)

func (f SymbolFlag) Has(flag SymbolFlag) bool { return f&flag != 0 }

// Declaration names one place a symbol is declared.
type Declaration struct {
	File string
	Span Span
	Kind NodeKind
	// Node is the declaring syntax node itself, giving the Resolver a
	// parent chain to walk for emission-scope and moniker-path computation.
	Node Node
}

// Symbol is a canonical semantic entity the checker resolves a Node to.
type Symbol interface {
	// Handle is the checker's own opaque identity for this symbol. It is
	// NOT the stable identity key the Resolver computes (spec §4.4) — two
	// Symbol values with different Handles may still resolve to the same
	// symbol-data if the checker re-synthesizes wrapper objects, which is
	// exactly why the Resolver keys on declarations instead.
	Handle() string
	Name() string
	Flags() SymbolFlag
	Declarations() []Declaration
	Parent() (Symbol, bool)
	Exports() map[string]Symbol
	Members() map[string]Symbol
	AliasedSymbol() (Symbol, bool)
	// HeritageSymbols returns the base class / implemented interface
	// symbols of a class or interface symbol (spec §4.4 MemberContainer).
	HeritageSymbols() []Symbol
}

// Type is a symbol's resolved type, used to expand composite (union or
// intersection) property types into their leaf constituents (spec §4.5).
type Type interface {
	// Constituents returns the union/intersection members of a composite
	// type, or nil for a non-composite type.
	Constituents() []Type
	// Symbol returns the symbol a (non-composite) type's own declaration
	// belongs to, if any.
	Symbol() (Symbol, bool)
}

// DiagnosticSeverity mirrors the compiler's severity scale.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota
	SeverityWarning
	SeveritySuggestion
	SeverityMessage
)

// Diagnostic is one compiler-reported issue.
type Diagnostic struct {
	Span     Span
	Severity DiagnosticSeverity
	Message  string
	Code     string
}

// SourceFile is one file of a Program.
type SourceFile interface {
	Path() string
	Contents() []byte
	AST() Node
	// FileSymbol returns the symbol representing the module itself, whose
	// Exports() map seeds export-moniker computation (spec §4.5 step 2).
	FileSymbol() Symbol
}

// TypeChecker answers semantic queries against a Program's symbol graph.
type TypeChecker interface {
	SymbolAt(file SourceFile, pos Position) (Symbol, bool)
	QuickInfo(file SourceFile, pos Position) (contents string, ok bool)
	OutliningSpans(file SourceFile) []Span
	Diagnostics(file SourceFile) []Diagnostic
	DeclaredType(sym Symbol) (Type, bool)
}

// Program is one compilation unit (the analogue of a tsconfig project).
type Program interface {
	// ModulePath uniquely identifies this program for the dependency-project
	// scheduler's memoization table (spec §5: "memoizes by tsconfig path").
	ModulePath() string
	Name() string
	Files() []SourceFile
	Checker() TypeChecker
	// References lists the project references this program depends on;
	// each must be indexed to completion before this Program is indexed
	// (spec §5).
	References() []Program
}
