package writer

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/tscodeintel/lsif-ecma/protocol"
)

// Format selects one of the four Sink variants spec §4.2 requires.
type Format string

const (
	FormatNDJSON   Format = "ndjson"
	FormatPretty   Format = "pretty"
	FormatGraphViz Format = "graphviz"
	FormatGraphDB  Format = "graphdb"
)

// New returns the Sink for the given format writing to w.
func New(format Format, w io.Writer) (protocol.Sink, error) {
	switch format {
	case "", FormatNDJSON:
		return NewNDJSON(w), nil
	case FormatPretty:
		return NewPrettyJSON(w), nil
	case FormatGraphViz:
		return NewGraphViz(w), nil
	case FormatGraphDB:
		return NewGraphDB(w), nil
	default:
		return nil, &UnknownFormatError{Format: string(format)}
	}
}

// UnknownFormatError is returned by New for an unrecognized Format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "writer: unknown format " + e.Format
}

// WrapGzip wraps a sink's underlying writer with gzip compression, letting a
// driver write a compressed dump directly (spec §4.2 leaves the sink's own
// I/O transport unspecified; this is an optional wrapper, not a fifth
// format). WrapGzip returns an io.Writer that gzip-compresses everything written to
// it before it reaches dst, and a closer that must run after the sink's End.
func WrapGzip(dst io.Writer) (io.Writer, func() error) {
	gz := gzip.NewWriter(dst)
	return gz, gz.Close
}
