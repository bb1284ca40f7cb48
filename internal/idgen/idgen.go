// Package idgen provides the two id generation strategies spec §4.1 allows:
// monotonic decimal integers, or universally-unique 128-bit values. The
// choice is made once per run and handed to the Graph Builder.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Generator produces a fresh, process-wide-unique id on every call.
type Generator interface {
	Next() protocol.ID
}

// Sequential generates decimal integer ids starting at 1. Safe for use from
// a single driver goroutine only, matching spec §5 ("the id generator ... is
// entered from the single driver thread only. No locks are required.").
type Sequential struct {
	n uint64
}

// NewSequential returns a fresh Sequential generator.
func NewSequential() *Sequential {
	return &Sequential{}
}

func (s *Sequential) Next() protocol.ID {
	n := atomic.AddUint64(&s.n, 1)
	return protocol.ID(strconv.FormatUint(n, 10))
}

// UUID generates RFC 4122 random ids.
type UUID struct{}

// NewUUID returns a fresh UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

func (*UUID) Next() protocol.ID {
	return protocol.ID(uuid.New().String())
}
