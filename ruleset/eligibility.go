package ruleset

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/labelgen/go-lgr/internal/hexcp"
)

// Eligibility is the outcome of testing a label against a ruleset.
type Eligibility struct {
	Eligible    bool     `json:"eligible"`
	Disposition string   `json:"disposition,omitempty"`
	Log         []string `json:"log,omitempty"`
}

// Reason returns the last log line, which summarizes why the label was
// accepted or rejected.
func (e Eligibility) Reason() string {
	if len(e.Log) == 0 {
		return ""
	}
	return e.Log[len(e.Log)-1]
}

// matchedRecord is one segment of a partitioned label.
type matchedRecord struct {
	rec *CharRecord
	at  int
	n   int
}

// TestLabelEligible tests whether the label given by cps may exist under
// the ruleset. The label must be non-empty and NFC-normalized, every code
// point must be covered by the repertoire (sequences matched greedily,
// longest first), each matched record's context rules must hold, and the
// actions must not assign the "invalid" disposition.
//
// The returned log records each step; its last line states the decisive
// reason.
func (l *LGR) TestLabelEligible(cps []rune) Eligibility {
	l.ensureIndex()
	var e Eligibility
	logf := func(format string, args ...any) {
		e.Log = append(e.Log, fmt.Sprintf(format, args...))
	}

	if len(cps) == 0 {
		logf("label is empty")
		return e
	}
	if s := string(cps); !norm.NFC.IsNormalString(s) {
		logf("label is not in Unicode NFC form")
		return e
	}

	parts, bad := l.partition(cps)
	if bad >= 0 {
		logf("code point %s is not in the repertoire", l.describeCP(cps[bad]))
		return e
	}
	logf("label partitioned into %d repertoire record(s)", len(parts))

	for _, p := range parts {
		span := hexcp.Format(cps[p.at : p.at+p.n])
		if p.rec.When != "" {
			rule := l.rules[p.rec.When]
			if rule == nil || !l.ruleApplies(rule, cps, p.at, p.n) {
				logf("code point %s does not satisfy its when rule %q", span, p.rec.When)
				return e
			}
		}
		if p.rec.NotWhen != "" {
			rule := l.rules[p.rec.NotWhen]
			if rule != nil && l.ruleApplies(rule, cps, p.at, p.n) {
				logf("code point %s matches its not-when rule %q", span, p.rec.NotWhen)
				return e
			}
		}
	}

	disp, origin := l.disposition(cps, l.reflexiveVariantTypes(parts))
	e.Disposition = disp
	if disp == DispositionInvalid {
		logf("label is not eligible: disposition %q assigned by %s", disp, origin)
		return e
	}
	e.Eligible = true
	logf("label is eligible: disposition %q assigned by %s", disp, origin)
	return e
}

// partition greedily segments the label into repertoire records, trying
// the longest sequence first at each position and falling back to single
// code points and ranges. It returns the offending position when a code
// point is uncovered, -1 otherwise.
func (l *LGR) partition(cps []rune) ([]matchedRecord, int) {
	var parts []matchedRecord
	for at := 0; at < len(cps); {
		n := l.maxSeq
		if rem := len(cps) - at; n > rem {
			n = rem
		}
		var rec *CharRecord
		for ; n >= 1; n-- {
			if r, ok := l.exact[hexcp.Format(cps[at:at+n])]; ok {
				rec = r
				break
			}
		}
		if rec == nil {
			if r := l.rangeFor(cps[at]); r != nil {
				rec, n = r, 1
			}
		}
		if rec == nil {
			return nil, at
		}
		parts = append(parts, matchedRecord{rec: rec, at: at, n: n})
		at += n
	}
	return parts, -1
}

// disposition runs the document actions and then the defaults, returning
// the first triggered disposition and a description of its origin.
func (l *LGR) disposition(label []rune, variantTypes map[string]bool) (string, string) {
	for i, a := range l.Actions {
		if l.actionTriggers(a, label, variantTypes) {
			return a.Disposition, fmt.Sprintf("action #%d", i+1)
		}
	}
	for _, a := range DefaultActions() {
		if l.actionTriggers(a, label, variantTypes) {
			return a.Disposition, "default action"
		}
	}
	return DispositionValid, "default action"
}

// reflexiveVariantTypes collects the types of variants that map a matched
// record to itself. These carry the label's variant state for action
// conditions.
func (l *LGR) reflexiveVariantTypes(parts []matchedRecord) map[string]bool {
	types := make(map[string]bool)
	for _, p := range parts {
		for _, v := range p.rec.Variants {
			if v.Type != "" && v.IsReflexive(p.rec) {
				types[v.Type] = true
			}
		}
	}
	return types
}

func (l *LGR) describeCP(cp rune) string {
	if l.db != nil {
		if name := l.db.Name(cp); name != "" {
			return fmt.Sprintf("U+%s (%s)", hexcp.FormatOne(cp), name)
		}
	}
	return "U+" + hexcp.FormatOne(cp)
}
