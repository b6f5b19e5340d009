package golgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// fallbackSource implements multi-source lookup with fallback behavior.
// It tries sources in order and remembers which one served the document.
//
// Key behaviors:
//  1. Sources are tried in order (primary first, then mirrors)
//  2. The first source that serves the document is reused on later opens
//  3. If no source serves the document, an aggregate error is returned
//
// The fallback moves on at ANY error, including:
//   - a missing document (ErrRulesetNotFound)
//   - HTTP 5xx (server errors)
//   - TLS/certificate errors
//   - Network timeouts and connection failures
//
// A missing document and an unreachable mirror look the same to the merge;
// always falling back keeps a set usable while one of its hosts is down.
type fallbackSource struct {
	sources []Source

	// good tracks which source served the document (index+1; 0 means
	// unknown). Once a source works, later opens go straight to it.
	mu   sync.RWMutex
	good int
}

// FallbackSource returns a Source that serves the document from the first
// of primary and mirrors that succeeds.
func FallbackSource(primary Source, mirrors ...Source) Source {
	return &fallbackSource{sources: append([]Source{primary}, mirrors...)}
}

// Name returns the primary source's name.
func (s *fallbackSource) Name() string {
	return s.sources[0].Name()
}

// Open tries each source in order and returns the first successful reader.
func (s *fallbackSource) Open(ctx context.Context) (io.ReadCloser, error) {
	// Check if a source already served this document
	s.mu.RLock()
	good := s.good
	s.mu.RUnlock()

	if good > 0 {
		// We know which source has the document, use it directly
		return s.sources[good-1].Open(ctx)
	}

	// Try each source in order to find the document
	var failures []string
	for i, src := range s.sources {
		rc, err := src.Open(ctx)
		if err == nil {
			// Success! Remember this source for future opens
			s.mu.Lock()
			if s.good == 0 {
				s.good = i + 1
			}
			s.mu.Unlock()
			return rc, nil
		}

		// Check if it's a missing document (not found at this source)
		if errors.Is(err, ErrRulesetNotFound) {
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}

		// For other errors (TLS, network, server errors, etc.), continue to
		// the next source so one unreachable host does not break the set.
		failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
		continue
	}

	// Document not found at any source
	if len(failures) == 1 {
		return nil, fmt.Errorf("%w: %s", ErrRulesetNotFound, failures[0])
	}
	return nil, fmt.Errorf("%w at any source:\n  %s",
		ErrRulesetNotFound, strings.Join(failures, "\n  "))
}
