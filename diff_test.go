package golgr

import (
	"reflect"
	"testing"

	"github.com/labelgen/go-lgr/ruleset"
)

func diffLGR(recs ...*ruleset.CharRecord) *ruleset.LGR {
	lgr := ruleset.New("diff-test")
	lgr.Repertoire = recs
	return lgr
}

func TestDiffRulesets_NilInputs(t *testing.T) {
	tests := []struct {
		name string
		old  *ruleset.LGR
		new  *ruleset.LGR
	}{
		{"both nil", nil, nil},
		{"old nil", nil, diffLGR()},
		{"new nil", diffLGR(), nil},
		{"both empty", diffLGR(), diffLGR()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffRulesets(tt.old, tt.new)
			if diff == nil {
				t.Fatal("DiffRulesets returned nil")
			}
			if !diff.IsEmpty() {
				t.Errorf("Expected empty diff, got %+v", diff)
			}
		})
	}
}

func TestDiffRulesets_Identical(t *testing.T) {
	build := func() *ruleset.LGR {
		return diffLGR(
			&ruleset.CharRecord{CodePoints: []rune{'a'}},
			&ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
				{CodePoints: []rune{'0'}, Type: "blocked"},
			}},
		)
	}

	diff := DiffRulesets(build(), build())

	if !diff.IsEmpty() {
		t.Errorf("Expected empty diff for identical rulesets, got %+v", diff)
	}
	if diff.TotalChanges() != 0 {
		t.Errorf("TotalChanges() = %d, want 0", diff.TotalChanges())
	}
}

func TestDiffRulesets_Added(t *testing.T) {
	old := diffLGR(
		&ruleset.CharRecord{CodePoints: []rune{'a'}},
	)
	new := diffLGR(
		&ruleset.CharRecord{CodePoints: []rune{'a'}},
		&ruleset.CharRecord{CodePoints: []rune("oe")},
		&ruleset.CharRecord{CodePoints: []rune{'b'}, Tags: []string{"sc:Latn"}},
	)

	diff := DiffRulesets(old, new)

	want := []RecordChange{
		{Key: "0062", Tags: []string{"sc:Latn"}},
		{Key: "006F 0065"},
	}
	if !reflect.DeepEqual(diff.Added, want) {
		t.Errorf("Added = %+v, want %+v", diff.Added, want)
	}
	if len(diff.Removed) != 0 || len(diff.Changed) != 0 {
		t.Errorf("diff = %+v, want additions only", diff)
	}
}

func TestDiffRulesets_Removed(t *testing.T) {
	old := diffLGR(
		&ruleset.CharRecord{CodePoints: []rune{'a'}},
		&ruleset.CharRecord{CodePoints: []rune{'b'}},
	)
	new := diffLGR(
		&ruleset.CharRecord{CodePoints: []rune{'a'}},
	)

	diff := DiffRulesets(old, new)

	want := []RecordChange{{Key: "0062"}}
	if !reflect.DeepEqual(diff.Removed, want) {
		t.Errorf("Removed = %+v, want %+v", diff.Removed, want)
	}
	if diff.TotalChanges() != 1 {
		t.Errorf("TotalChanges() = %d, want 1", diff.TotalChanges())
	}
}

func TestDiffRulesets_ChangedFields(t *testing.T) {
	tests := []struct {
		name       string
		old        *ruleset.CharRecord
		new        *ruleset.CharRecord
		wantFields []string
	}{
		{
			name: "variant gained",
			old:  &ruleset.CharRecord{CodePoints: []rune{'o'}},
			new: &ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
				{CodePoints: []rune{'0'}, Type: "blocked"},
			}},
			wantFields: []string{"variants"},
		},
		{
			name:       "tags changed",
			old:        &ruleset.CharRecord{CodePoints: []rune{'a'}, Tags: []string{"sc:Latn"}},
			new:        &ruleset.CharRecord{CodePoints: []rune{'a'}, Tags: []string{"sc:Latn", "cat:letter"}},
			wantFields: []string{"tags"},
		},
		{
			name:       "context rule changed",
			old:        &ruleset.CharRecord{CodePoints: []rune{'-'}},
			new:        &ruleset.CharRecord{CodePoints: []rune{'-'}, When: "hyphen-middle"},
			wantFields: []string{"when"},
		},
		{
			name: "variant type changed",
			old: &ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
				{CodePoints: []rune{'0'}, Type: "blocked"},
			}},
			new: &ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
				{CodePoints: []rune{'0'}, Type: "allocatable"},
			}},
			wantFields: []string{"variants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff := DiffRulesets(diffLGR(tt.old), diffLGR(tt.new))

			if len(diff.Changed) != 1 {
				t.Fatalf("Changed = %+v, want exactly one modification", diff.Changed)
			}
			if !reflect.DeepEqual(diff.Changed[0].Fields, tt.wantFields) {
				t.Errorf("Fields = %v, want %v", diff.Changed[0].Fields, tt.wantFields)
			}
		})
	}
}

func TestDiffRulesets_VariantOrderIgnored(t *testing.T) {
	old := diffLGR(&ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
		{CodePoints: []rune{'0'}, Type: "blocked"},
		{CodePoints: []rune{0x03BF}, Type: "blocked"},
	}})
	new := diffLGR(&ruleset.CharRecord{CodePoints: []rune{'o'}, Variants: []*ruleset.Variant{
		{CodePoints: []rune{0x03BF}, Type: "blocked"},
		{CodePoints: []rune{'0'}, Type: "blocked"},
	}})

	if diff := DiffRulesets(old, new); !diff.IsEmpty() {
		t.Errorf("Expected empty diff for reordered variants, got %+v", diff)
	}
}

func TestDiffRulesets_RangeWidening(t *testing.T) {
	old := diffLGR(&ruleset.CharRecord{CodePoints: []rune{'0'}, RangeLast: '5'})
	new := diffLGR(&ruleset.CharRecord{CodePoints: []rune{'0'}, RangeLast: '9'})

	diff := DiffRulesets(old, new)

	// Same first code point, so this is one modified record rather than a
	// removal plus an addition.
	if len(diff.Added) != 0 || len(diff.Removed) != 0 {
		t.Fatalf("diff = %+v, want no additions or removals", diff)
	}
	if len(diff.Changed) != 1 {
		t.Fatalf("Changed = %+v, want one modification", diff.Changed)
	}
	if diff.Changed[0].Key != "0030-0039" {
		t.Errorf("Key = %q, want %q", diff.Changed[0].Key, "0030-0039")
	}
	if want := []string{"range"}; !reflect.DeepEqual(diff.Changed[0].Fields, want) {
		t.Errorf("Fields = %v, want %v", diff.Changed[0].Fields, want)
	}
}

func TestDiffRulesets_SortedOutput(t *testing.T) {
	new := diffLGR(
		&ruleset.CharRecord{CodePoints: []rune{0x03B2}},
		&ruleset.CharRecord{CodePoints: []rune{'a'}},
		&ruleset.CharRecord{CodePoints: []rune{'m'}},
	)

	diff := DiffRulesets(nil, new)

	want := []string{"0061", "006D", "03B2"}
	if len(diff.Added) != len(want) {
		t.Fatalf("Added = %+v, want %d records", diff.Added, len(want))
	}
	for i, key := range want {
		if diff.Added[i].Key != key {
			t.Errorf("Added[%d].Key = %q, want %q", i, diff.Added[i].Key, key)
		}
	}
}

func TestDiffRulesets_AgainstMergedSet(t *testing.T) {
	result := mustMergeTestSet(t)

	diff := DiffRulesets(result.Members[0], result.Merged)

	// The merge added the Greek member's records to the Latin baseline.
	want := []string{"03B1", "03B2"}
	if len(diff.Added) != len(want) {
		t.Fatalf("Added = %+v, want %v", diff.Added, want)
	}
	for i, key := range want {
		if diff.Added[i].Key != key {
			t.Errorf("Added[%d].Key = %q, want %q", i, diff.Added[i].Key, key)
		}
	}
	if len(diff.Removed) != 0 || len(diff.Changed) != 0 {
		t.Errorf("diff = %+v, want additions only", diff)
	}
}
