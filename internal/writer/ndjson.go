// Package writer implements the four Sink format variants spec §4.2 calls
// for: line-delimited JSON, a pretty JSON array, a graph-visualization
// aggregate, and a graph-database dialect. The indexer is never aware which
// one is active; all four implement protocol.Sink.
package writer

import (
	"bufio"
	"io"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

var marshaller = jsoniter.ConfigFastest

// ndjsonSink streams one JSON object per line to an underlying writer. Writes
// are buffered through a channel and a single background goroutine so that
// Emit never blocks the driver on I/O, while still producing a totally
// ordered stream (spec §5: "a totally ordered write stream (no reordering
// across calls)").
type ndjsonSink struct {
	wg sync.WaitGroup
	ch chan interface{}

	// mu guards buf and err, shared between the background encoding
	// goroutine and any call to Flush/End from the driver goroutine.
	mu  sync.Mutex
	buf *bufio.Writer
	err error
}

const channelBufferSize = 512
const writerBufferSize = 4096

// NewNDJSON returns a Sink that writes newline-delimited JSON to w.
func NewNDJSON(w io.Writer) protocol.Sink {
	return &ndjsonSink{
		ch:  make(chan interface{}, channelBufferSize),
		buf: bufio.NewWriterSize(w, writerBufferSize),
	}
}

func (s *ndjsonSink) Start() error {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.mu.Lock()
		encoder := marshaller.NewEncoder(s.buf)
		s.mu.Unlock()

		for v := range s.ch {
			s.mu.Lock()
			if s.err == nil {
				if err := encoder.Encode(v); err != nil {
					s.err = err
				}
			}
			s.mu.Unlock()
		}
	}()

	return nil
}

func (s *ndjsonSink) Emit(element interface{}) error {
	s.ch <- element
	return nil
}

// Flush is safe to call while elements are still draining through the
// background goroutine: it takes the same lock that goroutine holds while
// writing to buf (spec §5: the sink "offers a totally ordered write stream",
// never torn by a concurrent Flush). It writes out only what that goroutine
// has encoded so far; elements still queued in the channel are not waited
// for and reach the writer on a later Flush or at End.
func (s *ndjsonSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Flush()
}

func (s *ndjsonSink) End() error {
	close(s.ch)
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}

	return s.buf.Flush()
}
