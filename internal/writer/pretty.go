package writer

import (
	"encoding/json"
	"io"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

// prettySink accumulates every element and writes them as a single indented
// JSON array on End. Useful for small dumps inspected by a human.
type prettySink struct {
	w        io.Writer
	elements []interface{}
}

// NewPrettyJSON returns a Sink that writes a pretty-printed JSON array to w.
func NewPrettyJSON(w io.Writer) protocol.Sink {
	return &prettySink{w: w}
}

func (s *prettySink) Start() error { return nil }

func (s *prettySink) Emit(element interface{}) error {
	s.elements = append(s.elements, element)
	return nil
}

func (s *prettySink) Flush() error { return nil }

func (s *prettySink) End() error {
	encoded, err := json.MarshalIndent(s.elements, "", "  ")
	if err != nil {
		return err
	}

	_, err = s.w.Write(encoded)
	return err
}
