package protocol

import "encoding/json"

// MarkedString is a single entry of a hover's contents, either a raw string
// or a {language, value} pair.
type MarkedString markedString

type markedString struct {
	Language    string `json:"language"`
	Value       string `json:"value"`
	isRawString bool
}

// NewMarkedString returns a language-tagged MarkedString.
func NewMarkedString(value string) MarkedString {
	return MarkedString{Language: LanguageID, Value: value}
}

// RawMarkedString returns a MarkedString that marshals as a bare string.
func RawMarkedString(value string) MarkedString {
	return MarkedString{Value: value, isRawString: true}
}

func (m MarkedString) MarshalJSON() ([]byte, error) {
	if m.isRawString {
		return json.Marshal(m.Value)
	}
	return json.Marshal(markedString(m))
}

func (m *MarkedString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Value = s
		m.isRawString = true
		return nil
	}
	return json.Unmarshal(data, (*markedString)(m))
}

type hoverContents struct {
	Contents []MarkedString `json:"contents"`
}

// HoverResult holds the quick-info contents shared by every range linked to a symbol.
type HoverResult struct {
	Vertex
	Result hoverContents `json:"result"`
}

// NewHoverResult returns a new HoverResult vertex.
func NewHoverResult(id ID, contents []MarkedString) *HoverResult {
	return &HoverResult{
		Vertex: newVertex(id, VertexHoverResult),
		Result: hoverContents{Contents: contents},
	}
}
