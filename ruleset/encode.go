package ruleset

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labelgen/go-lgr/internal/hexcp"
)

// documentPermissions is the file mode for written LGR documents. Rulesets
// are published artifacts, so world-readable.
const documentPermissions = 0o644

// Marshal serializes the ruleset as LGR XML with deterministic ordering:
// the repertoire sorted by code point, single entries before ranges, and
// classes, rules, and actions in stored order.
func (l *LGR) Marshal() ([]byte, error) {
	l.ensureIndex()

	doc := xmlLGR{XMLNS: Namespace}
	if !metaIsEmpty(l.Meta) {
		doc.Meta = encodeMeta(l.Meta)
	}
	if len(l.Repertoire) > 0 {
		doc.Data = encodeData(l.Repertoire)
	}
	if len(l.Classes)+len(l.Rules)+len(l.Actions) > 0 {
		rules, err := encodeRules(l)
		if err != nil {
			return nil, err
		}
		doc.Rules = rules
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode LGR XML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// WriteFile writes the serialized ruleset to the given path.
func (l *LGR) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, documentPermissions)
}

// WriteTo writes the serialized ruleset to w.
func (l *LGR) WriteTo(w io.Writer) (int64, error) {
	data, err := l.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

func metaIsEmpty(m Metadata) bool {
	return m.Version == "" && m.VersionComment == "" && m.Date == "" &&
		len(m.Languages) == 0 && len(m.Scopes) == 0 &&
		m.UnicodeVersion == "" && m.Description == ""
}

func encodeMeta(m Metadata) *xmlMeta {
	out := &xmlMeta{
		Date:           m.Date,
		Languages:      m.Languages,
		UnicodeVersion: m.UnicodeVersion,
	}
	if m.Version != "" || m.VersionComment != "" {
		out.Version = &xmlVersion{Value: m.Version, Comment: m.VersionComment}
	}
	for _, s := range m.Scopes {
		out.Scopes = append(out.Scopes, xmlScope{Value: s.Value, Type: s.Type})
	}
	if m.Description != "" {
		out.Description = &xmlDescription{Value: m.Description, Type: m.DescriptionType}
	}
	return out
}

func encodeData(repertoire []*CharRecord) *xmlData {
	data := &xmlData{}
	for _, rec := range repertoire {
		if rec.IsRange() {
			data.Ranges = append(data.Ranges, xmlRange{
				FirstCp: hexcp.FormatOne(rec.CodePoints[0]),
				LastCp:  hexcp.FormatOne(rec.RangeLast),
				Comment: rec.Comment,
				When:    rec.When,
				NotWhen: rec.NotWhen,
				Tag:     joinFields(rec.Tags),
				Ref:     joinFields(rec.References),
			})
			continue
		}
		c := xmlChar{
			Cp:      rec.Key(),
			Comment: rec.Comment,
			When:    rec.When,
			NotWhen: rec.NotWhen,
			Tag:     joinFields(rec.Tags),
			Ref:     joinFields(rec.References),
		}
		for _, v := range rec.Variants {
			c.Vars = append(c.Vars, xmlVariant{
				Cp:      hexcp.Format(v.CodePoints),
				Type:    v.Type,
				When:    v.When,
				NotWhen: v.NotWhen,
				Comment: v.Comment,
				Ref:     joinFields(v.References),
			})
		}
		data.Chars = append(data.Chars, c)
	}
	return data
}

func encodeRules(l *LGR) (*xmlRules, error) {
	out := &xmlRules{}
	for _, c := range l.Classes {
		out.Classes = append(out.Classes, xmlClass{
			Name:    c.Name,
			FromTag: c.FromTag,
			Comment: c.Comment,
			Value:   hexcp.Format(c.Members),
		})
	}
	for _, r := range l.Rules {
		el := xmlRule{Name: r.Name, Comment: r.Comment}
		for _, it := range r.Items {
			xi := xmlRuleItem{XMLName: xml.Name{Local: it.Kind.String()}}
			switch it.Kind {
			case ItemLiteral:
				xi.Cp = hexcp.Format(it.Literal)
			case ItemClass:
				xi.ByRef = it.Class
			case ItemStart, ItemEnd, ItemAnchor, ItemAny:
			default:
				return nil, fmt.Errorf("rule %q: cannot encode %v item", r.Name, it.Kind)
			}
			el.Items = append(el.Items, xi)
		}
		out.RuleEls = append(out.RuleEls, el)
	}
	for _, a := range l.Actions {
		out.Actions = append(out.Actions, xmlAction{
			Disp:        a.Disposition,
			Match:       a.Match,
			NotMatch:    a.NotMatch,
			AnyVariant:  joinFields(a.AnyVariant),
			AllVariants: joinFields(a.AllVariants),
			Comment:     a.Comment,
		})
	}
	return out, nil
}

func joinFields(fields []string) string {
	return strings.Join(fields, " ")
}
