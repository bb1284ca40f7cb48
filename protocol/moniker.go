package protocol

// MonikerUniqueness scopes how widely a moniker's identifier is guaranteed unique.
type MonikerUniqueness string

const (
	UniquenessDocument MonikerUniqueness = "document"
	UniquenessProject  MonikerUniqueness = "project"
	UniquenessGroup    MonikerUniqueness = "group"
	UniquenessScheme   MonikerUniqueness = "scheme"
	UniquenessGlobal   MonikerUniqueness = "global"
)

// MonikerKind distinguishes why a moniker was attached.
type MonikerKind string

const (
	MonikerKindLocal  MonikerKind = "local"
	MonikerKindImport MonikerKind = "import"
	MonikerKindExport MonikerKind = "export"
)

// Moniker is a scheme-qualified identifier letting consumers match symbols
// across independently indexed projects.
type Moniker struct {
	Vertex
	Scheme     string            `json:"scheme"`
	Identifier string            `json:"identifier"`
	Unique     MonikerUniqueness `json:"unique"`
	Kind       MonikerKind       `json:"kind,omitempty"`
}

// NewMoniker returns a new Moniker vertex.
func NewMoniker(id ID, scheme, identifier string, unique MonikerUniqueness, kind MonikerKind) *Moniker {
	return &Moniker{
		Vertex:     newVertex(id, VertexMoniker),
		Scheme:     scheme,
		Identifier: identifier,
		Unique:     unique,
		Kind:       kind,
	}
}

// PackageInformation names a downstream package a moniker's symbol belongs to.
type PackageInformation struct {
	Vertex
	Name    string `json:"name"`
	Manager string `json:"manager"`
	Version string `json:"version,omitempty"`
	URI     string `json:"uri,omitempty"`
}

// NewPackageInformation returns a new PackageInformation vertex.
func NewPackageInformation(id ID, name, manager, version, uri string) *PackageInformation {
	return &PackageInformation{
		Vertex:  newVertex(id, VertexPackageInformation),
		Name:    name,
		Manager: manager,
		Version: version,
		URI:     uri,
	}
}
