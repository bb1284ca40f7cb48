// Package idkey computes the stable symbol identity key spec §4.4 defines:
// the hash of the sorted list of (file, start, end, kind) of a symbol's
// declarations, salted with a "transient" marker for checker-synthesized
// symbols. A symbol with no declarations keys as one of three sentinels.
package idkey

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
)

// Key is a stable identity for a checker.Symbol, independent of however many
// distinct Symbol values the checker hands back for the "same" symbol across
// separate queries.
type Key string

const (
	// Unknown keys a symbol the checker could not resolve at all. Of never
	// returns it, and no other code in this repository produces it: when
	// SymbolAt fails, the Visitor skips the identifier instead.
	Unknown Key = "unknown"
	// Undefined keys a symbol the checker resolved to its special
	// "undefined" binding (no declarations, not synthesized).
	Undefined Key = "undefined"
	// None keys a symbol with no declarations that is also not the
	// "undefined" binding (e.g. a built-in ambient symbol).
	None Key = "none"
)

// Of computes the identity key for sym.
func Of(sym checker.Symbol) Key {
	decls := sym.Declarations()
	if len(decls) == 0 {
		if sym.Name() == "undefined" {
			return Undefined
		}
		return None
	}

	entries := make([]string, len(decls))
	for i, d := range decls {
		entries[i] = fmt.Sprintf("%s:%d:%d:%d:%d:%d", d.File, d.Span.Start.Line, d.Span.Start.Character, d.Span.End.Line, d.Span.End.Character, d.Kind)
	}
	sort.Strings(entries)

	payload := strings.Join(entries, "|")
	if sym.Flags().Has(checker.FlagTransient) {
		payload = "transient:" + payload
	}

	sum := sha256.Sum256([]byte(payload))
	return Key(hex.EncodeToString(sum[:]))
}
