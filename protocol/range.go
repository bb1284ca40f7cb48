package protocol

// Pos is a zero-based line/character position within a document.
type Pos struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// RangeTagType classifies what a range denotes.
type RangeTagType string

const (
	RangeTagDeclaration RangeTagType = "declaration"
	RangeTagDefinition  RangeTagType = "definition"
	RangeTagReference   RangeTagType = "reference"
	RangeTagUnknown     RangeTagType = "unknown"
)

// RangeTag carries the declaration/definition metadata LSIF attaches to a range.
// Only declaration and definition ranges populate Text, Kind and FullRange;
// reference and unknown ranges carry only Type.
type RangeTag struct {
	Type      RangeTagType `json:"type"`
	Text      string       `json:"text,omitempty"`
	Kind      string       `json:"kind,omitempty"`
	FullRange *[2]Pos      `json:"fullRange,omitempty"`
}

// Range is a half-open [Start,End) span over a document.
type Range struct {
	Vertex
	Start Pos       `json:"start"`
	End   Pos       `json:"end"`
	Tag   *RangeTag `json:"tag,omitempty"`
}

// NewRange returns a new Range vertex carrying tag exactly as given (nil for no tag).
func NewRange(id ID, start, end Pos, tag *RangeTag) *Range {
	return &Range{
		Vertex: newVertex(id, VertexRange),
		Start:  start,
		End:    end,
		Tag:    tag,
	}
}
