package idkey

import (
	"testing"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
	"github.com/tscodeintel/lsif-ecma/internal/checker/checkertest"
)

func declAt(file string, startLine, startChar, endLine, endChar int, kind checker.NodeKind) checker.Declaration {
	return checker.Declaration{
		File: file,
		Span: checker.Span{
			Start: checker.Position{Line: startLine, Character: startChar},
			End:   checker.Position{Line: endLine, Character: endChar},
		},
		Kind: kind,
	}
}

func TestOfSentinels(t *testing.T) {
	undefined := &checkertest.Symbol{SymbolName: "undefined"}
	if got := Of(undefined); got != Undefined {
		t.Errorf("Of(undefined) = %q, want %q", got, Undefined)
	}

	ambient := &checkertest.Symbol{SymbolName: "Array"}
	if got := Of(ambient); got != None {
		t.Errorf("Of(no-decl, non-undefined) = %q, want %q", got, None)
	}
}

func TestOfStableAcrossDeclarationOrder(t *testing.T) {
	d1 := declAt("a.ts", 0, 0, 0, 5, checker.KindFunctionDecl)
	d2 := declAt("a.ts", 2, 0, 2, 5, checker.KindFunctionDecl)

	sym1 := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d1, d2}}
	sym2 := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d2, d1}}

	if Of(sym1) != Of(sym2) {
		t.Errorf("key should not depend on declaration slice order")
	}
}

func TestOfDistinguishesDeclarations(t *testing.T) {
	d1 := declAt("a.ts", 0, 0, 0, 5, checker.KindFunctionDecl)
	d2 := declAt("b.ts", 0, 0, 0, 5, checker.KindFunctionDecl)

	sym1 := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d1}}
	sym2 := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d2}}

	if Of(sym1) == Of(sym2) {
		t.Errorf("symbols declared in different files should key differently")
	}
}

func TestOfTransientSalt(t *testing.T) {
	d := declAt("a.ts", 0, 0, 0, 5, checker.KindFunctionDecl)
	plain := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d}}
	transient := &checkertest.Symbol{SymbolName: "foo", SymbolDecls: []checker.Declaration{d}, SymbolFlags: checker.FlagTransient}

	if Of(plain) == Of(transient) {
		t.Errorf("a transient symbol must key differently from its plain counterpart with identical declarations")
	}
}
