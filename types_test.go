package golgr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestInvalidLabelError_Message tests the error message format for an
// ineligible label.
func TestInvalidLabelError_Message(t *testing.T) {
	err := &InvalidLabelError{
		Label:  "abq",
		Reason: "code point U+0071 is not in the repertoire",
	}

	expected := `label "abq" is not eligible: code point U+0071 is not in the repertoire`
	got := err.Error()

	if got != expected {
		t.Errorf("Error message mismatch:\ngot:  %s\nwant: %s", got, expected)
	}
}

// TestCollisionError_SingleGroup tests the error message format for one
// collision group.
func TestCollisionError_SingleGroup(t *testing.T) {
	err := &CollisionError{
		Groups: [][]string{{"bo", "b0"}},
	}

	expected := "labels collide: bo, b0"
	got := err.Error()

	if got != expected {
		t.Errorf("Error message mismatch:\ngot:  %s\nwant: %s", got, expected)
	}
}

// TestCollisionError_MultipleGroups tests the error message format for
// several collision groups.
func TestCollisionError_MultipleGroups(t *testing.T) {
	err := &CollisionError{
		Groups: [][]string{
			{"bo", "b0"},
			{"aa", "cc", "bb"},
		},
	}

	expected := `2 label collision groups:
  - bo, b0
  - aa, cc, bb`
	got := err.Error()

	if got != expected {
		t.Errorf("Error message mismatch:\ngot:\n%s\nwant:\n%s", got, expected)
	}
}

func TestMergeAbortedError_Message(t *testing.T) {
	err := &MergeAbortedError{
		Source: "latn.xml",
		Err:    errors.New("connection refused"),
	}

	expected := "merging latn.xml: connection refused"
	if got := err.Error(); got != expected {
		t.Errorf("Error message mismatch:\ngot:  %s\nwant: %s", got, expected)
	}
}

func TestMergeAbortedError_Unwrap(t *testing.T) {
	err := &MergeAbortedError{
		Source: "latn.xml",
		Err:    fmt.Errorf("fetching: %w", ErrRulesetNotFound),
	}

	if !errors.Is(err, ErrRulesetNotFound) {
		t.Error("errors.Is(err, ErrRulesetNotFound) = false, want the cause visible through Unwrap")
	}

	var aborted *MergeAbortedError
	if !errors.As(error(err), &aborted) {
		t.Fatal("errors.As failed to recover *MergeAbortedError")
	}
	if aborted.Source != "latn.xml" {
		t.Errorf("Source = %q, want %q", aborted.Source, "latn.xml")
	}
}

// TestLabelSetResult_JSONOmitsEmptySections verifies a clean result
// serializes without rejected/collision noise.
func TestLabelSetResult_JSONOmitsEmptySections(t *testing.T) {
	result := &LabelSetResult{
		Labels:  []string{"abc"},
		Summary: SetSummary{Read: 1, Accepted: 1},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal LabelSetResult: %v", err)
	}

	for _, absent := range []string{"rejected", "collisions", "duplicates", "collision_groups"} {
		if strings.Contains(string(data), absent) {
			t.Errorf("JSON = %s, should omit empty %q", data, absent)
		}
	}

	var restored LabelSetResult
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Failed to unmarshal LabelSetResult: %v", err)
	}
	if len(restored.Labels) != 1 || restored.Summary.Accepted != 1 {
		t.Errorf("restored = %+v, want labels and summary preserved", restored)
	}
}

// TestMergeResult_JSONIsSummaryOnly verifies the parsed rulesets stay out
// of the serialized form.
func TestMergeResult_JSONIsSummaryOnly(t *testing.T) {
	merged := mustMergeTestSet(t)

	data, err := json.Marshal(merged)
	if err != nil {
		t.Fatalf("Failed to marshal MergeResult: %v", err)
	}

	if !strings.Contains(string(data), `"set_name"`) {
		t.Errorf("JSON = %s, want set_name present", data)
	}
	if strings.Contains(string(data), "repertoire") || strings.Contains(string(data), "Repertoire") {
		t.Errorf("JSON = %s, rulesets must not serialize", data)
	}
}

// BenchmarkCollisionError_Small benchmarks error rendering for a couple of
// collision groups.
func BenchmarkCollisionError_Small(b *testing.B) {
	err := &CollisionError{
		Groups: [][]string{
			{"bo", "b0"},
			{"oom", "o0m"},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}

// BenchmarkCollisionError_Large benchmarks error rendering for many
// collision groups.
func BenchmarkCollisionError_Large(b *testing.B) {
	groups := make([][]string, 100)
	for i := 0; i < 100; i++ {
		prefix := string(rune('a' + i%26))
		groups[i] = []string{prefix + "o", prefix + "0"}
	}

	err := &CollisionError{Groups: groups}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
