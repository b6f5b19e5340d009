package ruleset

import (
	"fmt"
	"regexp"
	"time"

	"golang.org/x/text/language"

	"github.com/labelgen/go-lgr/internal/hexcp"
)

// Diagnostic is one advisory finding from document validation.
type Diagnostic struct {
	Element string `json:"element"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Element == "" {
		return d.Message
	}
	return d.Element + ": " + d.Message
}

// DocumentValidator checks a raw LGR document before it is parsed for use.
// Findings are advisory: callers log them and proceed with the merge.
type DocumentValidator interface {
	ValidateDocument(name string, data []byte) []Diagnostic
}

// Validator is the built-in structural validator. It checks that the
// document parses, that metadata fields are well formed, and that every
// cross-reference (variant targets, context rules, class tags, action
// rules) resolves.
//
// The authoritative schema for LGR documents is the RELAX NG grammar of
// RFC 7940, which has no Go implementation; this validator covers the
// structural ground the merge pipeline depends on. Callers with an
// external schema checker can substitute any DocumentValidator.
type Validator struct{}

// NewValidator returns the built-in structural validator.
func NewValidator() *Validator {
	return &Validator{}
}

var _ DocumentValidator = (*Validator)(nil)

// Unicode versions are dotted triples, e.g. "6.3.0".
var unicodeVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidateDocument implements DocumentValidator.
func (v *Validator) ValidateDocument(name string, data []byte) []Diagnostic {
	var diags []Diagnostic
	add := func(element, format string, args ...any) {
		diags = append(diags, Diagnostic{Element: element, Message: fmt.Sprintf(format, args...)})
	}

	lgr, err := Parse(data)
	if err != nil {
		add(name, "document does not parse: %v", err)
		return diags
	}

	validateMeta(lgr.Meta, add)
	validateRepertoire(lgr, add)
	validateRuleBodies(lgr, add)
	validateActions(lgr, add)
	return diags
}

type addFunc func(element, format string, args ...any)

func validateMeta(m Metadata, add addFunc) {
	if m.Date != "" {
		if _, err := time.Parse("2006-01-02", m.Date); err != nil {
			add("meta/date", "%q is not an ISO 8601 date", m.Date)
		}
	}
	for _, lang := range m.Languages {
		if _, err := language.Parse(lang); err != nil {
			add("meta/language", "%q is not a well-formed BCP 47 tag", lang)
		}
	}
	if m.UnicodeVersion != "" && !unicodeVersionPattern.MatchString(m.UnicodeVersion) {
		add("meta/unicode-version", "%q is not a dotted version triple", m.UnicodeVersion)
	}
}

func validateRepertoire(l *LGR, add addFunc) {
	for _, rec := range l.Repertoire {
		el := "char " + rec.Key()
		if rec.When != "" && l.rules[rec.When] == nil {
			add(el, "when rule %q is not defined", rec.When)
		}
		if rec.NotWhen != "" && l.rules[rec.NotWhen] == nil {
			add(el, "not-when rule %q is not defined", rec.NotWhen)
		}
		for _, vr := range rec.Variants {
			if vr.IsReflexive(rec) {
				continue
			}
			target := l.FindRecord(vr.CodePoints)
			if target == nil {
				add(el, "variant %s is not in the repertoire", hexcp.Format(vr.CodePoints))
				continue
			}
			if !hasVariantBack(target, rec) {
				add(el, "variant %s has no mapping back to %s", hexcp.Format(vr.CodePoints), rec.Key())
			}
		}
	}
	for i := 1; i < len(l.ranges); i++ {
		prev, cur := l.ranges[i-1], l.ranges[i]
		if cur.CodePoints[0] <= prev.RangeLast {
			add("range "+cur.Key(), "overlaps range %s-%s",
				prev.Key(), hexcp.FormatOne(prev.RangeLast))
		}
	}
	for _, rec := range l.Repertoire {
		if rec.IsRange() || rec.IsSequence() {
			continue
		}
		if r := l.rangeFor(rec.CodePoints[0]); r != nil {
			add("char "+rec.Key(), "duplicated by range %s-%s", r.Key(), hexcp.FormatOne(r.RangeLast))
		}
	}
}

func validateRuleBodies(l *LGR, add addFunc) {
	for _, c := range l.Classes {
		el := "class " + c.Name
		if c.FromTag != "" && !tagInUse(l, c.FromTag) {
			add(el, "from-tag %q matches no repertoire entry", c.FromTag)
		}
		for _, cp := range c.Members {
			if !l.HasCodePoint(cp) {
				add(el, "member U+%s is not in the repertoire", hexcp.FormatOne(cp))
			}
		}
	}
	for _, r := range l.Rules {
		el := "rule " + r.Name
		anchors := 0
		for i, it := range r.Items {
			switch it.Kind {
			case ItemAnchor:
				anchors++
			case ItemStart:
				if i != 0 {
					add(el, "start operator must come first")
				}
			case ItemEnd:
				if i != len(r.Items)-1 {
					add(el, "end operator must come last")
				}
			case ItemClass:
				if l.classes[it.Class] == nil {
					add(el, "class %q is not defined", it.Class)
				}
			}
		}
		if anchors > 1 {
			add(el, "more than one anchor")
		}
	}
}

func validateActions(l *LGR, add addFunc) {
	for i, a := range l.Actions {
		el := fmt.Sprintf("action #%d", i+1)
		if a.Match != "" && l.rules[a.Match] == nil {
			add(el, "match rule %q is not defined", a.Match)
		}
		if a.NotMatch != "" && l.rules[a.NotMatch] == nil {
			add(el, "not-match rule %q is not defined", a.NotMatch)
		}
	}
}

func hasVariantBack(from, to *CharRecord) bool {
	for _, v := range from.Variants {
		if hexcp.Compare(v.CodePoints, to.CodePoints) == 0 {
			return true
		}
	}
	return false
}

func tagInUse(l *LGR, tag string) bool {
	for _, rec := range l.Repertoire {
		if rec.HasTag(tag) {
			return true
		}
	}
	return false
}
