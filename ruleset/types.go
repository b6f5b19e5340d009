// Package ruleset models Label Generation Ruleset (LGR) documents as
// defined by RFC 7940: a repertoire of permitted code points with their
// variant mappings, named classes and context rules, and actions that
// assign dispositions to labels.
//
// Documents are read with [Parse] or [ReadFile] and written back with
// [LGR.Marshal] or [LGR.WriteFile]. [LGR.TestLabelEligible] answers whether
// a label may exist under the ruleset and why.
//
// The rule engine covers the linear subset of the whole-label evaluation
// operators: start, end, anchor, any, literal code points, and class
// references. The look-behind and look-ahead wrappers are accepted and
// flattened, since their placement around the anchor already carries their
// meaning. Documents using operators outside that subset fail to parse.
package ruleset

import (
	"fmt"
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/labelgen/go-lgr/internal/hexcp"
	"github.com/labelgen/go-lgr/unidb"
)

// LGR is a parsed Label Generation Ruleset document.
//
// Repertoire, Classes, Rules, and Actions are exported for inspection.
// Callers that mutate them directly must call Reindex before using any
// lookup or evaluation method; AddRecord maintains the index itself.
type LGR struct {
	// Name identifies the document: the file it was read from or the name
	// given to a merged set. It is not part of the serialized form.
	Name string

	Meta       Metadata
	Repertoire []*CharRecord
	Classes    []*Class
	Rules      []*Rule
	Actions    []*Action

	db      *unidb.Database
	exact   map[string]*CharRecord
	ranges  []*CharRecord
	classes map[string]*Class
	rules   map[string]*Rule
	table   *unicode.RangeTable
	maxSeq  int
	indexed bool
}

// New returns an empty ruleset with the given document name.
func New(name string) *LGR {
	return &LGR{Name: name}
}

// AttachDatabase supplies the Unicode database used for code point
// diagnostics and A-label handling. Attach before reading labels against
// the ruleset so every component shares one database.
func (l *LGR) AttachDatabase(db *unidb.Database) {
	l.db = db
}

// Database returns the attached Unicode database, nil when none is set.
func (l *LGR) Database() *unidb.Database {
	return l.db
}

// Metadata carries the meta element of an LGR document.
type Metadata struct {
	Version         string
	VersionComment  string
	Date            string
	Languages       []string
	Scopes          []Scope
	UnicodeVersion  string
	Description     string
	DescriptionType string
}

// Scope narrows where a ruleset applies, usually to a domain.
type Scope struct {
	Value string
	Type  string
}

// CharRecord is one repertoire entry: a single code point, a code point
// sequence, or an inclusive range.
type CharRecord struct {
	// CodePoints holds the code point or sequence; for a range, its first
	// code point.
	CodePoints []rune
	// RangeLast is the last code point of a range, 0 otherwise.
	RangeLast rune

	Comment    string
	When       string
	NotWhen    string
	Tags       []string
	References []string
	Variants   []*Variant
}

// IsRange reports whether the record covers an inclusive range.
func (r *CharRecord) IsRange() bool {
	return r.RangeLast != 0
}

// IsSequence reports whether the record is a multi-code-point sequence.
func (r *CharRecord) IsSequence() bool {
	return len(r.CodePoints) > 1
}

// Key returns the record's repertoire key in cp-attribute form.
func (r *CharRecord) Key() string {
	return hexcp.Format(r.CodePoints)
}

// Contains reports whether cp is covered by this record. Sequences contain
// no individual code points.
func (r *CharRecord) Contains(cp rune) bool {
	if r.IsRange() {
		return cp >= r.CodePoints[0] && cp <= r.RangeLast
	}
	return !r.IsSequence() && r.CodePoints[0] == cp
}

// HasTag reports whether the record carries the given tag.
func (r *CharRecord) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Variant maps a repertoire entry to one of its variant forms.
type Variant struct {
	CodePoints []rune
	// Type is the disposition hint carried by the mapping, such as
	// "blocked" or "allocatable".
	Type       string
	When       string
	NotWhen    string
	Comment    string
	References []string
}

// IsReflexive reports whether the variant maps the record to itself.
func (v *Variant) IsReflexive(r *CharRecord) bool {
	return hexcp.Compare(v.CodePoints, r.CodePoints) == 0
}

// Class names a set of code points for use in rules: either an explicit
// member list or every code point carrying a tag.
type Class struct {
	Name    string
	Comment string
	// FromTag selects members by repertoire tag when set.
	FromTag string
	// Members are the explicit member code points.
	Members []rune

	table *unicode.RangeTable
}

// Rule is a label match pattern: a linear sequence of items, optionally
// anchored to the start or end of the label, with an optional char anchor
// for contextual (when / not-when) evaluation.
type Rule struct {
	Name    string
	Comment string
	Items   []RuleItem
}

// RuleItemKind enumerates the match operators understood by the engine.
type RuleItemKind int

const (
	// ItemStart matches the start of the label.
	ItemStart RuleItemKind = iota
	// ItemEnd matches the end of the label.
	ItemEnd
	// ItemAnchor stands for the code points whose context is being tested.
	ItemAnchor
	// ItemAny matches any single code point.
	ItemAny
	// ItemLiteral matches an exact code point sequence.
	ItemLiteral
	// ItemClass matches a single code point belonging to a named class.
	ItemClass
)

// String returns the operator's element name.
func (k RuleItemKind) String() string {
	switch k {
	case ItemStart:
		return "start"
	case ItemEnd:
		return "end"
	case ItemAnchor:
		return "anchor"
	case ItemAny:
		return "any"
	case ItemLiteral:
		return "char"
	case ItemClass:
		return "class"
	}
	return fmt.Sprintf("item(%d)", int(k))
}

// RuleItem is one operator in a rule pattern.
type RuleItem struct {
	Kind RuleItemKind
	// Literal holds the code points of an ItemLiteral.
	Literal []rune
	// Class names the class of an ItemClass.
	Class string
}

// Action assigns a disposition to labels matching its conditions. Actions
// are evaluated in document order and the first match wins; every
// condition present on an action must hold for it to trigger.
type Action struct {
	Disposition string
	// Match names a rule the whole label must match.
	Match string
	// NotMatch names a rule the whole label must not match.
	NotMatch string
	// AnyVariant triggers when the label carries a reflexive variant of
	// any listed type.
	AnyVariant []string
	// AllVariants triggers when the label carries reflexive variants of
	// every listed type.
	AllVariants []string
	Comment     string
}

// Dispositions with defined meaning. A ruleset may introduce others; only
// "invalid" makes a label ineligible.
const (
	DispositionValid       = "valid"
	DispositionInvalid     = "invalid"
	DispositionBlocked     = "blocked"
	DispositionAllocatable = "allocatable"
	DispositionActivated   = "activated"
)

// DefaultActions returns the actions appended after the document's own, in
// evaluation order, ending in the catch-all that makes unmatched labels
// valid.
func DefaultActions() []*Action {
	return []*Action{
		{Disposition: DispositionInvalid, AnyVariant: []string{DispositionInvalid}, Comment: "Default action for invalid"},
		{Disposition: DispositionBlocked, AnyVariant: []string{DispositionBlocked}, Comment: "Default action for blocked"},
		{Disposition: DispositionAllocatable, AnyVariant: []string{DispositionAllocatable}, Comment: "Default action for allocatable"},
		{Disposition: DispositionActivated, AllVariants: []string{DispositionActivated}, Comment: "Default action for activated"},
		{Disposition: DispositionValid, Comment: "Default catch-all"},
	}
}

// AddRecord inserts a repertoire record, rejecting duplicates of an
// existing record's key.
func (l *LGR) AddRecord(rec *CharRecord) error {
	if len(rec.CodePoints) == 0 {
		return fmt.Errorf("record has no code points")
	}
	if rec.IsRange() && (rec.IsSequence() || rec.RangeLast < rec.CodePoints[0]) {
		return fmt.Errorf("invalid range %s-%s", hexcp.Format(rec.CodePoints), hexcp.FormatOne(rec.RangeLast))
	}
	l.ensureIndex()
	if _, ok := l.exact[rec.Key()]; ok {
		return fmt.Errorf("repertoire already contains %s", rec.Key())
	}
	l.Repertoire = append(l.Repertoire, rec)
	l.Reindex()
	return nil
}

// FindRecord returns the record exactly matching cps, or the range record
// covering a single code point. It returns nil when the repertoire has no
// match.
func (l *LGR) FindRecord(cps []rune) *CharRecord {
	l.ensureIndex()
	if rec, ok := l.exact[hexcp.Format(cps)]; ok {
		return rec
	}
	if len(cps) == 1 {
		return l.rangeFor(cps[0])
	}
	return nil
}

// HasCodePoint reports whether a single code point is in the repertoire,
// either as its own record or inside a range.
func (l *LGR) HasCodePoint(cp rune) bool {
	l.ensureIndex()
	return unicode.Is(l.runeTable(), cp)
}

// RuleNamed returns the named rule, nil when absent.
func (l *LGR) RuleNamed(name string) *Rule {
	l.ensureIndex()
	return l.rules[name]
}

// ClassNamed returns the named class, nil when absent.
func (l *LGR) ClassNamed(name string) *Class {
	l.ensureIndex()
	return l.classes[name]
}

// Reindex rebuilds the lookup state after direct mutation of the exported
// fields. The repertoire is kept sorted by code point.
func (l *LGR) Reindex() {
	sort.SliceStable(l.Repertoire, func(i, j int) bool {
		return hexcp.Compare(l.Repertoire[i].CodePoints, l.Repertoire[j].CodePoints) < 0
	})
	l.exact = make(map[string]*CharRecord, len(l.Repertoire))
	l.ranges = l.ranges[:0]
	l.maxSeq = 1
	for _, rec := range l.Repertoire {
		if rec.IsRange() {
			l.ranges = append(l.ranges, rec)
			continue
		}
		l.exact[rec.Key()] = rec
		if n := len(rec.CodePoints); n > l.maxSeq {
			l.maxSeq = n
		}
	}
	l.classes = make(map[string]*Class, len(l.Classes))
	for _, c := range l.Classes {
		c.table = nil
		l.classes[c.Name] = c
	}
	l.rules = make(map[string]*Rule, len(l.Rules))
	for _, r := range l.Rules {
		l.rules[r.Name] = r
	}
	l.table = nil
	l.indexed = true
}

func (l *LGR) ensureIndex() {
	if !l.indexed {
		l.Reindex()
	}
}

// rangeFor returns the range record covering cp, nil when none does.
func (l *LGR) rangeFor(cp rune) *CharRecord {
	i := sort.Search(len(l.ranges), func(i int) bool {
		return l.ranges[i].RangeLast >= cp
	})
	if i < len(l.ranges) && l.ranges[i].Contains(cp) {
		return l.ranges[i]
	}
	return nil
}

// runeTable lazily builds the membership table over single code points and
// ranges.
func (l *LGR) runeTable() *unicode.RangeTable {
	if l.table != nil {
		return l.table
	}
	var singles []rune
	for _, rec := range l.Repertoire {
		if !rec.IsRange() && !rec.IsSequence() {
			singles = append(singles, rec.CodePoints[0])
		}
	}
	tables := []*unicode.RangeTable{rangetable.New(singles...)}
	for _, rec := range l.ranges {
		tables = append(tables, spanTable(rec.CodePoints[0], rec.RangeLast))
	}
	l.table = rangetable.Merge(tables...)
	return l.table
}

// classTable resolves a class to its membership table, expanding from-tag
// classes against the repertoire.
func (l *LGR) classTable(name string) *unicode.RangeTable {
	c := l.classes[name]
	if c == nil {
		return nil
	}
	if c.table != nil {
		return c.table
	}
	if c.FromTag == "" {
		c.table = rangetable.New(c.Members...)
		return c.table
	}
	var singles []rune
	tables := []*unicode.RangeTable{}
	for _, rec := range l.Repertoire {
		if !rec.HasTag(c.FromTag) || rec.IsSequence() {
			continue
		}
		if rec.IsRange() {
			tables = append(tables, spanTable(rec.CodePoints[0], rec.RangeLast))
			continue
		}
		singles = append(singles, rec.CodePoints[0])
	}
	tables = append(tables, rangetable.New(singles...))
	c.table = rangetable.Merge(tables...)
	return c.table
}

// spanTable covers the inclusive span [first, last].
func spanTable(first, last rune) *unicode.RangeTable {
	if last <= 0xFFFF {
		return &unicode.RangeTable{R16: []unicode.Range16{{Lo: uint16(first), Hi: uint16(last), Stride: 1}}}
	}
	if first > 0xFFFF {
		return &unicode.RangeTable{R32: []unicode.Range32{{Lo: uint32(first), Hi: uint32(last), Stride: 1}}}
	}
	return &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: uint16(first), Hi: 0xFFFF, Stride: 1}},
		R32: []unicode.Range32{{Lo: 0x10000, Hi: uint32(last), Stride: 1}},
	}
}
