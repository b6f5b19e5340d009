package golgr

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
)

// Source supplies one LGR document for merging.
type Source interface {
	// Name identifies the source in logs, errors, and merged metadata.
	// For file and HTTP sources this is the document's base name.
	Name() string

	// Open returns the raw document content. The caller closes the reader.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Compile-time interface compliance checks
var _ Source = (*bytesSource)(nil)
var _ Source = (*fileSource)(nil)
var _ Source = (*httpSource)(nil)
var _ Source = (*fallbackSource)(nil)

// SourceFromRef builds a Source from a reference string.
//
// Supported reference forms:
//   - https:// or http:// - Remote document
//   - file://             - Local document (e.g., "file:///path/to/lgr.xml")
//   - anything else       - Treated as a local file path
func SourceFromRef(ref string) (Source, error) {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return HTTPSource(ref), nil
	case isFileURL(ref):
		path, err := parseFileURL(ref)
		if err != nil {
			return nil, err
		}
		return FileSource(path), nil
	default:
		return FileSource(filepath.Clean(ref)), nil
	}
}

// bytesSource serves an in-memory LGR document.
type bytesSource struct {
	name string
	data []byte
}

// BytesSource wraps in-memory document content as a Source.
func BytesSource(name string, data []byte) Source {
	return &bytesSource{name: name, data: data}
}

// Name returns the name the source was created with.
func (s *bytesSource) Name() string { return s.name }

// Open returns a reader over the in-memory content.
func (s *bytesSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}
