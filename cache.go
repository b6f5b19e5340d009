package golgr

import "context"

// RulesetCache stores fetched LGR documents keyed by source name. It lets
// callers avoid repeated fetches of the same document across merges, for
// example when the same base ruleset appears in several sets.
//
// Implementations must be safe for concurrent use. A Get miss is reported
// with ok == false and a nil error; errors are reserved for storage
// failures, which callers treat as misses.
type RulesetCache interface {
	// Get retrieves a cached document by source name.
	Get(ctx context.Context, source string) (content []byte, ok bool, err error)

	// Put stores a fetched document under the source name.
	Put(ctx context.Context, source string, content []byte) error
}
