package ruleset

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labelgen/go-lgr/internal/hexcp"
)

// Namespace is the XML namespace of LGR version 1 documents.
const Namespace = "urn:ietf:params:xml:ns:lgr-1.0"

// ReadFile reads and parses an LGR document from the given path. The
// document name is the file's base name.
func ReadFile(path string) (*LGR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read LGR document: %w", err)
	}
	lgr, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lgr.Name = filepath.Base(path)
	return lgr, nil
}

// Parse parses LGR XML data. Parsing is strict: malformed XML, malformed
// code point attributes, duplicate repertoire entries, and rule operators
// outside the supported subset are all errors.
func Parse(data []byte) (*LGR, error) {
	var doc xmlLGR
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse LGR XML: %w", err)
	}

	lgr := New("")
	if doc.Meta != nil {
		lgr.Meta = convertMeta(doc.Meta)
	}
	if doc.Data != nil {
		if err := convertData(lgr, doc.Data); err != nil {
			return nil, err
		}
	}
	if doc.Rules != nil {
		if err := convertRules(lgr, doc.Rules); err != nil {
			return nil, err
		}
	}
	lgr.Reindex()
	return lgr, nil
}

func convertMeta(m *xmlMeta) Metadata {
	meta := Metadata{
		Date:           strings.TrimSpace(m.Date),
		Languages:      m.Languages,
		UnicodeVersion: strings.TrimSpace(m.UnicodeVersion),
	}
	if m.Version != nil {
		meta.Version = strings.TrimSpace(m.Version.Value)
		meta.VersionComment = m.Version.Comment
	}
	if m.Description != nil {
		meta.Description = strings.TrimSpace(m.Description.Value)
		meta.DescriptionType = m.Description.Type
	}
	for i, lang := range meta.Languages {
		meta.Languages[i] = strings.TrimSpace(lang)
	}
	for _, s := range m.Scopes {
		meta.Scopes = append(meta.Scopes, Scope{Value: strings.TrimSpace(s.Value), Type: s.Type})
	}
	return meta
}

func convertData(lgr *LGR, d *xmlData) error {
	seen := make(map[string]bool)
	for _, c := range d.Chars {
		cps, err := hexcp.Parse(c.Cp)
		if err != nil {
			return fmt.Errorf("char: %w", err)
		}
		rec := &CharRecord{
			CodePoints: cps,
			Comment:    c.Comment,
			When:       c.When,
			NotWhen:    c.NotWhen,
			Tags:       strings.Fields(c.Tag),
			References: strings.Fields(c.Ref),
		}
		for _, v := range c.Vars {
			vcps, err := hexcp.Parse(v.Cp)
			if err != nil {
				return fmt.Errorf("var of char %s: %w", rec.Key(), err)
			}
			rec.Variants = append(rec.Variants, &Variant{
				CodePoints: vcps,
				Type:       v.Type,
				When:       v.When,
				NotWhen:    v.NotWhen,
				Comment:    v.Comment,
				References: strings.Fields(v.Ref),
			})
		}
		if seen[rec.Key()] {
			return fmt.Errorf("duplicate repertoire entry %s", rec.Key())
		}
		seen[rec.Key()] = true
		lgr.Repertoire = append(lgr.Repertoire, rec)
	}
	for _, r := range d.Ranges {
		first, err := hexcp.ParseOne(strings.TrimSpace(r.FirstCp))
		if err != nil {
			return fmt.Errorf("range first-cp: %w", err)
		}
		last, err := hexcp.ParseOne(strings.TrimSpace(r.LastCp))
		if err != nil {
			return fmt.Errorf("range last-cp: %w", err)
		}
		if last < first {
			return fmt.Errorf("range %s-%s runs backwards", hexcp.FormatOne(first), hexcp.FormatOne(last))
		}
		rec := &CharRecord{
			CodePoints: []rune{first},
			RangeLast:  last,
			Comment:    r.Comment,
			When:       r.When,
			NotWhen:    r.NotWhen,
			Tags:       strings.Fields(r.Tag),
			References: strings.Fields(r.Ref),
		}
		key := rec.Key()
		if seen[key] {
			return fmt.Errorf("duplicate repertoire entry %s", key)
		}
		seen[key] = true
		lgr.Repertoire = append(lgr.Repertoire, rec)
	}
	return nil
}

func convertRules(lgr *LGR, r *xmlRules) error {
	for _, c := range r.Classes {
		if c.Name == "" {
			return fmt.Errorf("class without a name")
		}
		cl := &Class{Name: c.Name, Comment: c.Comment, FromTag: c.FromTag}
		body := strings.TrimSpace(c.Value)
		if c.FromTag != "" && body != "" {
			return fmt.Errorf("class %q has both from-tag and explicit members", c.Name)
		}
		if body != "" {
			members, err := hexcp.Parse(body)
			if err != nil {
				return fmt.Errorf("class %q: %w", c.Name, err)
			}
			cl.Members = members
		}
		lgr.Classes = append(lgr.Classes, cl)
	}
	for _, rl := range r.RuleEls {
		if rl.Name == "" {
			return fmt.Errorf("rule without a name")
		}
		items, err := convertRuleItems(rl.Items)
		if err != nil {
			return fmt.Errorf("rule %q: %w", rl.Name, err)
		}
		lgr.Rules = append(lgr.Rules, &Rule{Name: rl.Name, Comment: rl.Comment, Items: items})
	}
	for _, a := range r.Actions {
		if a.Disp == "" {
			return fmt.Errorf("action without a disposition")
		}
		lgr.Actions = append(lgr.Actions, &Action{
			Disposition: a.Disp,
			Match:       a.Match,
			NotMatch:    a.NotMatch,
			AnyVariant:  strings.Fields(a.AnyVariant),
			AllVariants: strings.Fields(a.AllVariants),
			Comment:     a.Comment,
		})
	}
	return nil
}

// convertRuleItems flattens a rule body into the linear item form. The
// look-behind and look-ahead wrappers of RFC 7940 are transparent here:
// their position around the anchor already encodes their meaning.
func convertRuleItems(els []xmlRuleItem) ([]RuleItem, error) {
	var items []RuleItem
	for _, it := range els {
		switch it.XMLName.Local {
		case "start":
			items = append(items, RuleItem{Kind: ItemStart})
		case "end":
			items = append(items, RuleItem{Kind: ItemEnd})
		case "anchor":
			items = append(items, RuleItem{Kind: ItemAnchor})
		case "any":
			items = append(items, RuleItem{Kind: ItemAny})
		case "char":
			cps, err := hexcp.Parse(it.Cp)
			if err != nil {
				return nil, err
			}
			items = append(items, RuleItem{Kind: ItemLiteral, Literal: cps})
		case "class":
			if it.ByRef == "" {
				return nil, fmt.Errorf("class item without by-ref")
			}
			items = append(items, RuleItem{Kind: ItemClass, Class: it.ByRef})
		case "look-behind", "look-ahead":
			inner, err := convertRuleItems(it.Items)
			if err != nil {
				return nil, err
			}
			items = append(items, inner...)
		default:
			return nil, fmt.Errorf("unsupported rule element <%s>", it.XMLName.Local)
		}
	}
	return items, nil
}

// The xml* types mirror the document structure for encoding/xml. Slices
// keep document order, which is significant for rule items and actions.
type xmlLGR struct {
	XMLName xml.Name  `xml:"lgr"`
	XMLNS   string    `xml:"xmlns,attr,omitempty"`
	Meta    *xmlMeta  `xml:"meta"`
	Data    *xmlData  `xml:"data"`
	Rules   *xmlRules `xml:"rules"`
}

type xmlMeta struct {
	Version        *xmlVersion     `xml:"version"`
	Date           string          `xml:"date,omitempty"`
	Languages      []string        `xml:"language"`
	Scopes         []xmlScope      `xml:"scope"`
	UnicodeVersion string          `xml:"unicode-version,omitempty"`
	Description    *xmlDescription `xml:"description"`
}

type xmlVersion struct {
	Comment string `xml:"comment,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type xmlScope struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlDescription struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlData struct {
	Chars  []xmlChar  `xml:"char"`
	Ranges []xmlRange `xml:"range"`
}

type xmlChar struct {
	Cp      string       `xml:"cp,attr"`
	Comment string       `xml:"comment,attr,omitempty"`
	When    string       `xml:"when,attr,omitempty"`
	NotWhen string       `xml:"not-when,attr,omitempty"`
	Tag     string       `xml:"tag,attr,omitempty"`
	Ref     string       `xml:"ref,attr,omitempty"`
	Vars    []xmlVariant `xml:"var"`
}

type xmlRange struct {
	FirstCp string `xml:"first-cp,attr"`
	LastCp  string `xml:"last-cp,attr"`
	Comment string `xml:"comment,attr,omitempty"`
	When    string `xml:"when,attr,omitempty"`
	NotWhen string `xml:"not-when,attr,omitempty"`
	Tag     string `xml:"tag,attr,omitempty"`
	Ref     string `xml:"ref,attr,omitempty"`
}

type xmlVariant struct {
	Cp      string `xml:"cp,attr"`
	Type    string `xml:"type,attr,omitempty"`
	When    string `xml:"when,attr,omitempty"`
	NotWhen string `xml:"not-when,attr,omitempty"`
	Comment string `xml:"comment,attr,omitempty"`
	Ref     string `xml:"ref,attr,omitempty"`
}

type xmlRules struct {
	Classes []xmlClass  `xml:"class"`
	RuleEls []xmlRule   `xml:"rule"`
	Actions []xmlAction `xml:"action"`
}

type xmlClass struct {
	Name    string `xml:"name,attr,omitempty"`
	FromTag string `xml:"from-tag,attr,omitempty"`
	Comment string `xml:"comment,attr,omitempty"`
	Value   string `xml:",chardata"`
}

type xmlRule struct {
	Name    string        `xml:"name,attr,omitempty"`
	Comment string        `xml:"comment,attr,omitempty"`
	Items   []xmlRuleItem `xml:",any"`
}

type xmlRuleItem struct {
	XMLName xml.Name
	Cp      string        `xml:"cp,attr,omitempty"`
	ByRef   string        `xml:"by-ref,attr,omitempty"`
	Items   []xmlRuleItem `xml:",any"`
}

type xmlAction struct {
	Disp        string `xml:"disp,attr"`
	Match       string `xml:"match,attr,omitempty"`
	NotMatch    string `xml:"not-match,attr,omitempty"`
	AnyVariant  string `xml:"any-variant,attr,omitempty"`
	AllVariants string `xml:"all-variants,attr,omitempty"`
	Comment     string `xml:"comment,attr,omitempty"`
}
