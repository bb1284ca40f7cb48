package protocol

// Project is a vertex emitted once per compilation unit.
type Project struct {
	Vertex
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Contents string `json:"contents,omitempty"`
}

// NewProject returns a new Project vertex.
func NewProject(id ID, name string, contents []byte) *Project {
	return &Project{
		Vertex:   newVertex(id, VertexProject),
		Name:     name,
		Kind:     LanguageID,
		Contents: encodeContents(contents),
	}
}
