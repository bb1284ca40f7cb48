package protocol

// Document is a vertex emitted once per source file actually indexed.
type Document struct {
	Vertex
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Contents   string `json:"contents,omitempty"`
}

// NewDocument returns a new Document vertex.
func NewDocument(id ID, uri string, contents []byte) *Document {
	return &Document{
		Vertex:     newVertex(id, VertexDocument),
		URI:        uri,
		LanguageID: LanguageID,
		Contents:   encodeContents(contents),
	}
}
