package golgr

import "errors"

// Sentinel errors for common pipeline failures.
var (
	// ErrNoSources indicates a merge was requested with no ruleset sources.
	ErrNoSources = errors.New("no ruleset sources")

	// ErrNilRuleset indicates label validation was requested without a merged ruleset.
	ErrNilRuleset = errors.New("nil merged ruleset")

	// ErrRulesetNotFound indicates the requested ruleset document does not exist
	// at the source.
	ErrRulesetNotFound = errors.New("ruleset not found")
)
