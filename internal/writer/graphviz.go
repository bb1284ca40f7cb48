package writer

import (
	"encoding/json"
	"io"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

// vizNode is one entry of the graph-visualization aggregate: a vertex with
// its edges collapsed into embedded lists of neighbor ids, grouped by edge
// label, rather than streamed as separate edge elements.
type vizNode struct {
	Element interface{}            `json:"element"`
	Out     map[protocol.EdgeLabel][]protocol.ID `json:"out,omitempty"`
	In      map[protocol.EdgeLabel][]protocol.ID `json:"in,omitempty"`
}

// graphvizSink buffers the whole graph and, on End, emits one aggregate
// document per vertex with in/out adjacency embedded — convenient for
// feeding a graph-layout tool that wants whole records, not an edge stream.
type graphvizSink struct {
	w       io.Writer
	order   []protocol.ID
	nodes   map[protocol.ID]*vizNode
}

// NewGraphViz returns a Sink that writes the graph-visualization aggregate to w.
func NewGraphViz(w io.Writer) protocol.Sink {
	return &graphvizSink{w: w, nodes: map[protocol.ID]*vizNode{}}
}

func (s *graphvizSink) Start() error { return nil }

func (s *graphvizSink) Emit(element interface{}) error {
	if id, ok := vertexID(element); ok {
		s.order = append(s.order, id)
		s.nodes[id] = &vizNode{Element: element}
		return nil
	}

	out, ins, label, ok := edgeEndpoints(element)
	if !ok {
		return nil
	}

	if n, ok := s.nodes[out]; ok {
		if n.Out == nil {
			n.Out = map[protocol.EdgeLabel][]protocol.ID{}
		}
		n.Out[label] = append(n.Out[label], ins...)
	}

	for _, in := range ins {
		if n, ok := s.nodes[in]; ok {
			if n.In == nil {
				n.In = map[protocol.EdgeLabel][]protocol.ID{}
			}
			n.In[label] = append(n.In[label], out)
		}
	}

	return nil
}

func (s *graphvizSink) Flush() error { return nil }

func (s *graphvizSink) End() error {
	ordered := make([]*vizNode, 0, len(s.order))
	for _, id := range s.order {
		ordered = append(ordered, s.nodes[id])
	}

	encoded, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return err
	}

	_, err = s.w.Write(encoded)
	return err
}
