package golgr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fileSource reads an LGR document from the local file system.
// This enables airgap/offline workflows where documents are pre-downloaded
// or vendored into a local directory.
//
// Create with file:// URLs via SourceFromRef:
//
//	// Unix
//	src, err := SourceFromRef("file:///path/to/lgr-fr.xml")
//
//	// Windows
//	src, err := SourceFromRef("file:///C:/path/to/lgr-fr.xml")
//
// Or use FileSource directly with a native path:
//
//	src := FileSource("/path/to/lgr-fr.xml")      // Unix
//	src := FileSource("C:\\path\\to\\lgr-fr.xml") // Windows
type fileSource struct {
	path string
}

// FileSource returns a Source reading the document at path.
// The path can use either forward slashes or the native OS separator.
func FileSource(path string) Source {
	return &fileSource{path: filepath.Clean(path)}
}

// Name returns the document's base name.
func (s *fileSource) Name() string {
	return filepath.Base(s.path)
}

// Open opens the document file.
func (s *fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRulesetNotFound, pathToFileURL(s.path))
		}
		return nil, fmt.Errorf("open ruleset file %s: %w", s.path, err)
	}
	return f, nil
}

// parseFileURL extracts the path from a file:// URL.
// Handles both Unix (file:///path) and Windows (file:///C:/path) formats.
//
// Examples:
//
//	Unix:    file:///tmp/lgr.xml      -> /tmp/lgr.xml
//	Windows: file:///C:/Users/lgr.xml -> C:/Users/lgr.xml
//	Windows: file:///c:/Users/lgr.xml -> c:/Users/lgr.xml
func parseFileURL(url string) (string, error) {
	if !strings.HasPrefix(url, "file://") {
		return "", fmt.Errorf("not a file:// URL: %s", url)
	}

	// Remove file:// prefix
	path := strings.TrimPrefix(url, "file://")

	// Handle Windows paths: file:///C:/path or file:///c:/path -> C:/path
	// Check for drive letter pattern: /X:/ where X is a letter
	if len(path) >= 3 && path[0] == '/' && isWindowsDriveLetter(path[1]) && path[2] == ':' {
		path = path[1:] // Remove leading /
	}

	// Use filepath.Clean to normalize to OS-native separators
	return filepath.Clean(path), nil
}

// isWindowsDriveLetter returns true if c is a valid Windows drive letter (A-Z, a-z).
func isWindowsDriveLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// pathToFileURL converts a native file path to a file:// URL.
// Uses forward slashes and handles Windows drive letters correctly.
func pathToFileURL(path string) string {
	// Convert to forward slashes for URL
	urlPath := filepath.ToSlash(path)

	// On Windows, add leading slash before drive letter
	if len(urlPath) >= 2 && isWindowsDriveLetter(urlPath[0]) && urlPath[1] == ':' {
		urlPath = "/" + urlPath
	}

	return "file://" + urlPath
}

// isFileURL checks if a URL is a file:// URL.
func isFileURL(url string) bool {
	return strings.HasPrefix(url, "file://")
}
