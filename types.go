package golgr

import (
	"fmt"
	"strings"

	"github.com/labelgen/go-lgr/label"
	"github.com/labelgen/go-lgr/ruleset"
)

// Mode controls how malformed label input is handled. In Lenient mode a bad
// line is reported inline and reading continues; in Strict mode the first
// bad line aborts with an error.
type Mode = label.Mode

const (
	// Lenient reports malformed labels without failing.
	Lenient = label.Lenient

	// Strict fails on the first malformed or ineligible label.
	Strict = label.Strict
)

// MergeResult is the outcome of merging a set of LGR documents.
type MergeResult struct {
	// Merged is the union ruleset built from all members.
	Merged *ruleset.LGR `json:"-"`

	// Members holds the parsed member rulesets in source order.
	Members []*ruleset.LGR `json:"-"`

	// SetName is the name assigned to the merged ruleset.
	SetName string `json:"set_name"`

	// Summary provides aggregate statistics about the merge.
	Summary MergeSummary `json:"summary"`
}

// MergeSummary provides statistics about a merged LGR set.
type MergeSummary struct {
	// Sources is the number of member documents merged.
	Sources int `json:"sources"`

	// Records is the number of repertoire records in the merged ruleset.
	Records int `json:"records"`

	// Sequences counts the records covering multi-code-point sequences.
	Sequences int `json:"sequences,omitempty"`

	// Ranges counts the records covering code point ranges.
	Ranges int `json:"ranges,omitempty"`

	// Variants is the total number of variant mappings in the merged
	// repertoire.
	Variants int `json:"variants,omitempty"`

	// Rules is the number of whole-label rules in the merged ruleset.
	Rules int `json:"rules"`

	// Actions is the number of actions in the merged ruleset.
	Actions int `json:"actions"`

	// Languages is the union of the members' declared languages, in
	// first-seen order.
	Languages []string `json:"languages,omitempty"`

	// MemberRecords maps each member document to its own repertoire size.
	// Only populated for merges of more than one member.
	MemberRecords map[string]int `json:"member_records,omitempty"`
}

// LabelSetResult is the outcome of reading a label file against a merged
// ruleset.
type LabelSetResult struct {
	// Labels is the list of accepted labels, sorted.
	Labels []string `json:"labels"`

	// Rejected lists labels that failed parsing or eligibility.
	// Empty when every label was accepted.
	Rejected []RejectedLabel `json:"rejected,omitempty"`

	// Collisions groups accepted labels whose variant index keys coincide.
	// Each group lists the colliding labels in input order.
	Collisions [][]string `json:"collisions,omitempty"`

	// Summary provides aggregate statistics about the label set.
	Summary SetSummary `json:"summary"`
}

// RejectedLabel pairs a rejected input label with the reason it was refused.
type RejectedLabel struct {
	// Label is the input as it appeared in the label file.
	Label string `json:"label"`

	// Reason explains why the label was rejected.
	Reason string `json:"reason"`
}

// SetSummary provides statistics about a validated label set.
type SetSummary struct {
	// Read is the number of label lines considered.
	Read int `json:"read"`

	// Accepted is the number of unique labels that passed every check.
	Accepted int `json:"accepted"`

	// Rejected is the number of labels refused for parse or eligibility
	// reasons.
	Rejected int `json:"rejected"`

	// Duplicates is the number of labels dropped because an equal label
	// was already accepted.
	Duplicates int `json:"duplicates,omitempty"`

	// CollisionGroups is the number of groups of mutually colliding labels.
	CollisionGroups int `json:"collision_groups,omitempty"`
}

// InvalidLabelError is returned in Strict mode when a label fails the
// eligibility check.
type InvalidLabelError struct {
	// Label is the offending input label.
	Label string

	// Reason explains why the label is not eligible.
	Reason string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("label %q is not eligible: %s", e.Label, e.Reason)
}

// CollisionError is returned in Strict mode when accepted labels collide
// under the merged ruleset's variant mappings.
type CollisionError struct {
	// Groups contains the colliding labels, one slice per collision group.
	Groups [][]string
}

func (e *CollisionError) Error() string {
	if len(e.Groups) == 1 {
		return "labels collide: " + strings.Join(e.Groups[0], ", ")
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d label collision groups:", len(e.Groups)))
	for _, group := range e.Groups {
		sb.WriteString("\n  - ")
		sb.WriteString(strings.Join(group, ", "))
	}
	return sb.String()
}

// MergeAbortedError is returned when a member document cannot be fetched or
// parsed, aborting the whole merge.
type MergeAbortedError struct {
	// Source names the member that failed.
	Source string

	// Err is the underlying failure.
	Err error
}

func (e *MergeAbortedError) Error() string {
	return fmt.Sprintf("merging %s: %v", e.Source, e.Err)
}

func (e *MergeAbortedError) Unwrap() error { return e.Err }
