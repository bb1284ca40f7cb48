package emit

import (
	"testing"

	"github.com/tscodeintel/lsif-ecma/internal/idgen"
	"github.com/tscodeintel/lsif-ecma/protocol"
)

type memorySink struct {
	elements []interface{}
	started  bool
	flushed  bool
	ended    bool
}

func (s *memorySink) Start() error {
	s.started = true
	return nil
}

func (s *memorySink) Emit(element interface{}) error {
	s.elements = append(s.elements, element)
	return nil
}

func (s *memorySink) Flush() error {
	s.flushed = true
	return nil
}

func (s *memorySink) End() error {
	s.ended = true
	return nil
}

func TestEmitterLifecycleDelegatesToSink(t *testing.T) {
	sink := &memorySink{}
	e := New(idgen.NewSequential(), sink)

	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !sink.started {
		t.Errorf("expected Start to reach the sink")
	}

	if err := e.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !sink.flushed {
		t.Errorf("expected Flush to reach the sink")
	}

	if err := e.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if !sink.ended {
		t.Errorf("expected End to reach the sink")
	}
}

func TestEmitterCountsEveryElement(t *testing.T) {
	sink := &memorySink{}
	e := New(idgen.NewSequential(), sink)

	if _, err := e.Project("a", nil); err != nil {
		t.Fatalf("Project: %v", err)
	}
	docID, err := e.Document("a/foo.ts", nil)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if _, err := e.BeginEvent(protocol.ScopeDocument, docID); err != nil {
		t.Fatalf("BeginEvent: %v", err)
	}

	if got, want := e.NumElements(), uint64(3); got != want {
		t.Errorf("NumElements() = %d, want %d", got, want)
	}
	if got, want := len(sink.elements), 3; got != want {
		t.Errorf("len(sink.elements) = %d, want %d", got, want)
	}
}

func TestEmitterItemErrorIsNotWrittenToSink(t *testing.T) {
	sink := &memorySink{}
	e := New(idgen.NewSequential(), sink)

	hoverID, err := e.HoverResult(nil)
	if err != nil {
		t.Fatalf("HoverResult: %v", err)
	}
	rangeID, err := e.Range(protocol.Pos{}, protocol.Pos{}, &protocol.RangeTag{Type: protocol.RangeTagReference})
	if err != nil {
		t.Fatalf("Range: %v", err)
	}

	before := e.NumElements()
	if _, err := e.Item(hoverID, protocol.VertexHoverResult, []protocol.ID{rangeID}, protocol.VertexRange, "doc1", protocol.ItemPropertyNone); err == nil {
		t.Fatalf("expected an error constructing a hoverResult -> range item edge")
	}
	if got := e.NumElements(); got != before {
		t.Errorf("a rejected item edge must not be counted or written: before=%d after=%d", before, got)
	}
	if got, want := len(sink.elements), int(before); got != want {
		t.Errorf("len(sink.elements) = %d, want %d", got, want)
	}
}

func TestEmitterReturnsBuilderAssignedID(t *testing.T) {
	sink := &memorySink{}
	e := New(idgen.NewSequential(), sink)

	id, err := e.ResultSet()
	if err != nil {
		t.Fatalf("ResultSet: %v", err)
	}
	rs, ok := sink.elements[0].(*protocol.ResultSet)
	if !ok {
		t.Fatalf("expected a *protocol.ResultSet, got %T", sink.elements[0])
	}
	if rs.ID != id {
		t.Errorf("emitter returned id %q but sink saw %q", id, rs.ID)
	}
}
