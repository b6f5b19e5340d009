package golgr

import (
	"slices"
	"sort"

	"github.com/labelgen/go-lgr/internal/hexcp"
	"github.com/labelgen/go-lgr/ruleset"
)

// RecordChange represents an added or removed repertoire record in a
// ruleset diff.
type RecordChange struct {
	// Key is the record's code point key, with bounds when the record
	// covers a range (for example "0061", "006F 0065", or "0030-0039").
	Key string `json:"key"`

	// Tags carries the record's tags, which usually identify the script or
	// category the change affects.
	Tags []string `json:"tags,omitempty"`
}

// RecordModification represents a repertoire record present in both
// rulesets with differing content.
type RecordModification struct {
	// Key is the record's code point key.
	Key string `json:"key"`

	// Fields names what differs: "range", "tags", "variants", "when",
	// "not-when", or "comment".
	Fields []string `json:"fields"`
}

// RulesetDiff describes the repertoire differences between two rulesets.
//
// This is useful for:
//   - Reviewing a new ruleset revision before adopting it
//   - Generating changelogs for zone policy updates
//   - Auditing what a merge added relative to one member
//
// Example usage:
//
//	oldLGR, _ := golgr.ParseRulesetFile("lgr-fr-1.xml")
//	newLGR, _ := golgr.ParseRulesetFile("lgr-fr-2.xml")
//	diff := golgr.DiffRulesets(oldLGR, newLGR)
//
//	if !diff.IsEmpty() {
//	    fmt.Printf("Changes: %d added, %d removed, %d changed\n",
//	        len(diff.Added), len(diff.Removed), len(diff.Changed))
//	}
type RulesetDiff struct {
	// Added contains records present in new but not in old.
	Added []RecordChange `json:"added,omitempty"`

	// Removed contains records present in old but not in new.
	Removed []RecordChange `json:"removed,omitempty"`

	// Changed contains records present in both whose content differs.
	Changed []RecordModification `json:"changed,omitempty"`
}

// IsEmpty returns true if there are no differences between the rulesets.
func (d *RulesetDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// TotalChanges returns the total number of changes (added + removed + changed).
func (d *RulesetDiff) TotalChanges() int {
	return len(d.Added) + len(d.Removed) + len(d.Changed)
}

// DiffRulesets computes the repertoire difference between two rulesets.
//
// Records are matched by their code point key, so widening a range counts
// as a change to the existing record, not a removal plus an addition.
//
// Parameters:
//   - old: the baseline ruleset (nil is treated as empty)
//   - new: the updated ruleset (nil is treated as empty)
//
// Results are sorted by code point key for consistent output.
func DiffRulesets(old, new *ruleset.LGR) *RulesetDiff {
	diff := &RulesetDiff{}

	// Build lookup maps for O(1) comparison
	oldRecords := recordsByKey(old)
	newRecords := recordsByKey(new)

	// Find added and changed
	for key, newRec := range newRecords {
		oldRec, existedBefore := oldRecords[key]
		if !existedBefore {
			diff.Added = append(diff.Added, RecordChange{
				Key:  displayKey(newRec),
				Tags: newRec.Tags,
			})
			continue
		}
		if fields := recordDifferences(oldRec, newRec); len(fields) > 0 {
			diff.Changed = append(diff.Changed, RecordModification{
				Key:    displayKey(newRec),
				Fields: fields,
			})
		}
	}

	// Find removed
	for key, oldRec := range oldRecords {
		if _, existsNow := newRecords[key]; !existsNow {
			diff.Removed = append(diff.Removed, RecordChange{
				Key:  displayKey(oldRec),
				Tags: oldRec.Tags,
			})
		}
	}

	// Sort results for consistent output
	sortRecordChanges(diff.Added)
	sortRecordChanges(diff.Removed)
	sort.Slice(diff.Changed, func(i, j int) bool {
		return diff.Changed[i].Key < diff.Changed[j].Key
	})

	return diff
}

// recordsByKey indexes a ruleset's repertoire by code point key.
// A nil ruleset yields an empty map.
func recordsByKey(l *ruleset.LGR) map[string]*ruleset.CharRecord {
	records := make(map[string]*ruleset.CharRecord)
	if l == nil {
		return records
	}
	for _, rec := range l.Repertoire {
		records[rec.Key()] = rec
	}
	return records
}

// displayKey renders a record's key with range bounds when present.
func displayKey(rec *ruleset.CharRecord) string {
	if rec.IsRange() {
		return rec.Key() + "-" + hexcp.FormatOne(rec.RangeLast)
	}
	return rec.Key()
}

// recordDifferences lists the fields on which two same-key records differ.
func recordDifferences(old, new *ruleset.CharRecord) []string {
	var fields []string
	if old.RangeLast != new.RangeLast {
		fields = append(fields, "range")
	}
	if !slices.Equal(old.Tags, new.Tags) {
		fields = append(fields, "tags")
	}
	if !variantsEqual(old.Variants, new.Variants) {
		fields = append(fields, "variants")
	}
	if old.When != new.When {
		fields = append(fields, "when")
	}
	if old.NotWhen != new.NotWhen {
		fields = append(fields, "not-when")
	}
	if old.Comment != new.Comment {
		fields = append(fields, "comment")
	}
	return fields
}

// variantsEqual compares variant sets ignoring order, matching on target
// code points, type, and context rules.
func variantsEqual(a, b []*ruleset.Variant) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !containsVariant(b, v) {
			return false
		}
	}
	return true
}

func containsVariant(vs []*ruleset.Variant, v *ruleset.Variant) bool {
	for _, o := range vs {
		if hexcp.Compare(o.CodePoints, v.CodePoints) == 0 &&
			o.Type == v.Type && o.When == v.When && o.NotWhen == v.NotWhen {
			return true
		}
	}
	return false
}

// sortRecordChanges sorts a slice of RecordChange by key.
func sortRecordChanges(changes []RecordChange) {
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Key < changes[j].Key
	})
}
