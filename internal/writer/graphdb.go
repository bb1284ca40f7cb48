package writer

import (
	"encoding/json"
	"io"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

// graphDBRecord is one vertex plus reciprocal in/out maps, the shape a
// property-graph database dialect bulk-loads directly: every edge is
// represented twice (once on each endpoint) so neither direction requires a
// join at query time.
type graphDBRecord struct {
	Vertex interface{}                          `json:"vertex"`
	Out    map[protocol.EdgeLabel][]protocol.ID `json:"outEdges,omitempty"`
	In     map[protocol.EdgeLabel][]protocol.ID `json:"inEdges,omitempty"`
}

type graphdbSink struct {
	w       io.Writer
	order   []protocol.ID
	records map[protocol.ID]*graphDBRecord
}

// NewGraphDB returns a Sink that writes the graph-database dialect to w.
func NewGraphDB(w io.Writer) protocol.Sink {
	return &graphdbSink{w: w, records: map[protocol.ID]*graphDBRecord{}}
}

func (s *graphdbSink) Start() error { return nil }

func (s *graphdbSink) Emit(element interface{}) error {
	if id, ok := vertexID(element); ok {
		s.order = append(s.order, id)
		s.records[id] = &graphDBRecord{Vertex: element}
		return nil
	}

	out, ins, label, ok := edgeEndpoints(element)
	if !ok {
		return nil
	}

	if r, ok := s.records[out]; ok {
		if r.Out == nil {
			r.Out = map[protocol.EdgeLabel][]protocol.ID{}
		}
		r.Out[label] = append(r.Out[label], ins...)
	}

	for _, in := range ins {
		if r, ok := s.records[in]; ok {
			if r.In == nil {
				r.In = map[protocol.EdgeLabel][]protocol.ID{}
			}
			r.In[label] = append(r.In[label], out)
		}
	}

	return nil
}

func (s *graphdbSink) Flush() error { return nil }

func (s *graphdbSink) End() error {
	ordered := make([]*graphDBRecord, 0, len(s.order))
	for _, id := range s.order {
		ordered = append(ordered, s.records[id])
	}

	enc := json.NewEncoder(s.w)
	for _, r := range ordered {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}

	return nil
}
