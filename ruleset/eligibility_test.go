package ruleset

import (
	"strings"
	"testing"

	"github.com/labelgen/go-lgr/unidb"
)

func TestEligibility(t *testing.T) {
	lgr := mustParse(t, testDoc)

	tests := []struct {
		name       string
		label      string
		eligible   bool
		disp       string
		wantReason string
	}{
		{
			name:     "plain letters",
			label:    "ab",
			eligible: true,
			disp:     DispositionValid,
		},
		{
			name:     "reflexive variant assigns blocked",
			label:    "abc",
			eligible: true,
			disp:     DispositionBlocked,
		},
		{
			name:     "digits from range",
			label:    "19",
			eligible: true,
			disp:     DispositionValid,
		},
		{
			name:     "sequence covers both code points",
			label:    "oe",
			eligible: true,
			disp:     DispositionValid,
		},
		{
			name:       "sequence member alone is not in the repertoire",
			label:      "e",
			eligible:   false,
			wantReason: "not in the repertoire",
		},
		{
			name:     "hyphen inside",
			label:    "a-b",
			eligible: true,
			disp:     DispositionValid,
		},
		{
			name:       "hyphen leading fails its when rule",
			label:      "-ab",
			eligible:   false,
			wantReason: `when rule "hyphen-middle"`,
		},
		{
			name:       "hyphen trailing fails its when rule",
			label:      "ab-",
			eligible:   false,
			wantReason: `when rule "hyphen-middle"`,
		},
		{
			name:       "action match makes label invalid",
			label:      "00",
			eligible:   false,
			disp:       DispositionInvalid,
			wantReason: "action #1",
		},
		{
			name:     "single zero misses the whole label rule",
			label:    "0",
			eligible: true,
			disp:     DispositionValid,
		},
		{
			name:       "empty label",
			label:      "",
			eligible:   false,
			wantReason: "label is empty",
		},
		{
			name:       "decomposed input is not NFC",
			label:      "üm",
			eligible:   false,
			wantReason: "NFC",
		},
		{
			name:       "unknown code point",
			label:      "z",
			eligible:   false,
			wantReason: "U+007A",
		},
		{
			name:     "variant target on its own",
			label:    "àb",
			eligible: true,
			disp:     DispositionValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lgr.TestLabelEligible([]rune(tt.label))
			if got.Eligible != tt.eligible {
				t.Fatalf("Eligible = %v, want %v (log: %v)", got.Eligible, tt.eligible, got.Log)
			}
			if tt.disp != "" && got.Disposition != tt.disp {
				t.Errorf("Disposition = %q, want %q", got.Disposition, tt.disp)
			}
			if tt.wantReason != "" && !strings.Contains(got.Reason(), tt.wantReason) {
				t.Errorf("Reason() = %q, want it to contain %q", got.Reason(), tt.wantReason)
			}
			if len(got.Log) == 0 {
				t.Error("Log is empty, want at least one line")
			}
		})
	}
}

func TestEligibilityUsesCharacterNames(t *testing.T) {
	lgr := mustParse(t, testDoc)
	lgr.AttachDatabase(unidb.New())

	got := lgr.TestLabelEligible([]rune("z"))
	if got.Eligible {
		t.Fatal("label with unknown code point reported eligible")
	}
	if !strings.Contains(got.Reason(), "LATIN SMALL LETTER Z") {
		t.Errorf("Reason() = %q, want the character name from the database", got.Reason())
	}
}

func TestEligibilityGreedyPartition(t *testing.T) {
	lgr := mustParse(t, testDoc)

	// "oea" must split as the two-element sequence followed by "a", not
	// as "o" plus an uncovered "e".
	got := lgr.TestLabelEligible([]rune("oea"))
	if !got.Eligible {
		t.Fatalf("label not eligible: %s", got.Reason())
	}
	var found bool
	for _, line := range got.Log {
		if strings.Contains(line, "2 repertoire record") {
			found = true
		}
	}
	if !found {
		t.Errorf("log %v does not mention the two-record partition", got.Log)
	}
}

func TestDefaultActions(t *testing.T) {
	acts := DefaultActions()
	if len(acts) != 5 {
		t.Fatalf("len(DefaultActions()) = %d, want 5", len(acts))
	}
	last := acts[len(acts)-1]
	if last.Disposition != DispositionValid {
		t.Errorf("final default disposition = %q, want %q", last.Disposition, DispositionValid)
	}
	if last.Match != "" || len(last.AnyVariant) != 0 || len(last.AllVariants) != 0 {
		t.Errorf("final default action %+v is not a catch-all", last)
	}
	for _, a := range acts[:len(acts)-1] {
		if len(a.AnyVariant) == 0 && len(a.AllVariants) == 0 {
			t.Errorf("default action %+v has no variant condition", a)
		}
	}
}

func TestEligibilityWithoutActions(t *testing.T) {
	lgr := New("minimal")
	if err := lgr.AddRecord(&CharRecord{CodePoints: []rune{'x'}}); err != nil {
		t.Fatal(err)
	}
	lgr.Reindex()

	got := lgr.TestLabelEligible([]rune("x"))
	if !got.Eligible || got.Disposition != DispositionValid {
		t.Errorf("eligibility = %+v, want valid via the default actions", got)
	}
}
