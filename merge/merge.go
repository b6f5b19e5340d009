package merge

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/labelgen/go-lgr/internal/hexcp"
	"github.com/labelgen/go-lgr/ruleset"
)

// ErrNoMembers is returned by Union when called with no member rulesets.
var ErrNoMembers = errors.New("no member rulesets to merge")

// Union combines the member rulesets into one superset ruleset carrying
// the given set name. Members are processed in order; see the package
// documentation for the merge semantics.
func Union(members []*ruleset.LGR, name string) (*ruleset.LGR, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	displayNames := memberDisplayNames(members)
	renames := computeRenames(members, displayNames)

	out := ruleset.New(name)
	out.Meta = mergeMetadata(members, displayNames)

	if err := mergeRepertoire(out, members, renames); err != nil {
		return nil, err
	}
	mergeRules(out, members, renames)
	mergeActions(out, members, renames)

	out.Reindex()
	return out, nil
}

// memberRenames maps a single member's original rule and class names to
// their names in the merged ruleset.
type memberRenames struct {
	rules   map[string]string
	classes map[string]string
}

func (r memberRenames) rule(name string) string {
	if renamed, ok := r.rules[name]; ok {
		return renamed
	}
	return name
}

func (r memberRenames) class(name string) string {
	if renamed, ok := r.classes[name]; ok {
		return renamed
	}
	return name
}

// memberDisplayNames derives a unique display name per member from its
// document name, numbering unnamed and repeated members.
func memberDisplayNames(members []*ruleset.LGR) []string {
	names := make([]string, len(members))
	used := make(map[string]int, len(members))
	for i, m := range members {
		base := strings.TrimSuffix(m.Name, filepath.Ext(m.Name))
		if base == "" {
			base = fmt.Sprintf("lgr-%d", i+1)
		}
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		names[i] = base
	}
	return names
}

// computeRenames prefixes rule and class names that occur in more than
// one member with the defining member's display name.
func computeRenames(members []*ruleset.LGR, displayNames []string) []memberRenames {
	ruleCount := make(map[string]int)
	classCount := make(map[string]int)
	for _, m := range members {
		for _, r := range m.Rules {
			ruleCount[r.Name]++
		}
		for _, c := range m.Classes {
			classCount[c.Name]++
		}
	}

	renames := make([]memberRenames, len(members))
	for i, m := range members {
		renames[i] = memberRenames{
			rules:   make(map[string]string),
			classes: make(map[string]string),
		}
		for _, r := range m.Rules {
			if ruleCount[r.Name] > 1 {
				renames[i].rules[r.Name] = displayNames[i] + "-" + r.Name
			}
		}
		for _, c := range m.Classes {
			if classCount[c.Name] > 1 {
				renames[i].classes[c.Name] = displayNames[i] + "-" + c.Name
			}
		}
	}
	return renames
}

func mergeMetadata(members []*ruleset.LGR, displayNames []string) ruleset.Metadata {
	var meta ruleset.Metadata

	seenLang := make(map[string]bool)
	seenScope := make(map[ruleset.Scope]bool)
	var versions []string
	for _, m := range members {
		for _, lang := range m.Meta.Languages {
			if !seenLang[lang] {
				seenLang[lang] = true
				meta.Languages = append(meta.Languages, lang)
			}
		}
		for _, s := range m.Meta.Scopes {
			if !seenScope[s] {
				seenScope[s] = true
				meta.Scopes = append(meta.Scopes, s)
			}
		}
		versions = append(versions, m.Meta.UnicodeVersion)
		// ISO dates compare correctly as strings.
		if m.Meta.Date > meta.Date {
			meta.Date = m.Meta.Date
		}
	}
	meta.UnicodeVersion = maxDotted(versions)
	meta.Description = "Merged LGR set of: " + strings.Join(displayNames, ", ")
	meta.DescriptionType = "text/plain"
	return meta
}

func mergeRepertoire(out *ruleset.LGR, members []*ruleset.LGR, renames []memberRenames) error {
	merged := make(map[string]*ruleset.CharRecord)
	for i, m := range members {
		rn := renames[i]
		for _, rec := range m.Repertoire {
			clone := cloneRecord(rec, rn)
			key := clone.Key()
			existing, ok := merged[key]
			if !ok {
				merged[key] = clone
				out.Repertoire = append(out.Repertoire, clone)
				continue
			}
			if err := mergeInto(existing, clone); err != nil {
				return fmt.Errorf("record %s: %w", key, err)
			}
		}
	}
	return nil
}

// mergeInto folds src into dst, which share a repertoire key. Tags,
// references, and variants are unioned; scalar fields keep the first
// member's value, with comments joined and ranges widened to the larger
// extent.
func mergeInto(dst, src *ruleset.CharRecord) error {
	if dst.IsRange() != src.IsRange() {
		return fmt.Errorf("merging a range with a non-range record")
	}
	if src.RangeLast > dst.RangeLast {
		dst.RangeLast = src.RangeLast
	}
	dst.Tags = appendUnique(dst.Tags, src.Tags)
	dst.References = appendUnique(dst.References, src.References)
	dst.Comment = joinComments(dst.Comment, src.Comment)
	for _, v := range src.Variants {
		if findVariant(dst.Variants, v) == nil {
			dst.Variants = append(dst.Variants, v)
		}
	}
	return nil
}

// findVariant locates an existing variant with the same identity: target
// sequence plus when and not-when context.
func findVariant(variants []*ruleset.Variant, v *ruleset.Variant) *ruleset.Variant {
	for _, have := range variants {
		if hexcp.Compare(have.CodePoints, v.CodePoints) == 0 &&
			have.When == v.When && have.NotWhen == v.NotWhen {
			return have
		}
	}
	return nil
}

func cloneRecord(rec *ruleset.CharRecord, rn memberRenames) *ruleset.CharRecord {
	clone := &ruleset.CharRecord{
		CodePoints: slices.Clone(rec.CodePoints),
		RangeLast:  rec.RangeLast,
		Comment:    rec.Comment,
		When:       rn.rule(rec.When),
		NotWhen:    rn.rule(rec.NotWhen),
		Tags:       slices.Clone(rec.Tags),
		References: slices.Clone(rec.References),
	}
	for _, v := range rec.Variants {
		clone.Variants = append(clone.Variants, &ruleset.Variant{
			CodePoints: slices.Clone(v.CodePoints),
			Type:       v.Type,
			When:       rn.rule(v.When),
			NotWhen:    rn.rule(v.NotWhen),
			Comment:    v.Comment,
			References: slices.Clone(v.References),
		})
	}
	return clone
}

func mergeRules(out *ruleset.LGR, members []*ruleset.LGR, renames []memberRenames) {
	for i, m := range members {
		rn := renames[i]
		for _, c := range m.Classes {
			out.Classes = append(out.Classes, &ruleset.Class{
				Name:    rn.class(c.Name),
				Comment: c.Comment,
				FromTag: c.FromTag,
				Members: slices.Clone(c.Members),
			})
		}
		for _, r := range m.Rules {
			clone := &ruleset.Rule{
				Name:    rn.rule(r.Name),
				Comment: r.Comment,
				Items:   make([]ruleset.RuleItem, len(r.Items)),
			}
			for j, it := range r.Items {
				clone.Items[j] = ruleset.RuleItem{
					Kind:    it.Kind,
					Literal: slices.Clone(it.Literal),
					Class:   rn.class(it.Class),
				}
			}
			out.Rules = append(out.Rules, clone)
		}
	}
}

func mergeActions(out *ruleset.LGR, members []*ruleset.LGR, renames []memberRenames) {
	seen := make(map[string]bool)
	for i, m := range members {
		rn := renames[i]
		for _, a := range m.Actions {
			clone := &ruleset.Action{
				Disposition: a.Disposition,
				Match:       rn.rule(a.Match),
				NotMatch:    rn.rule(a.NotMatch),
				AnyVariant:  slices.Clone(a.AnyVariant),
				AllVariants: slices.Clone(a.AllVariants),
				Comment:     a.Comment,
			}
			sig := actionSignature(clone)
			if seen[sig] {
				continue
			}
			seen[sig] = true
			out.Actions = append(out.Actions, clone)
		}
	}
}

// actionSignature identifies an action for deduplication. Comments are
// not part of the identity.
func actionSignature(a *ruleset.Action) string {
	return strings.Join([]string{
		a.Disposition,
		a.Match,
		a.NotMatch,
		strings.Join(a.AnyVariant, " "),
		strings.Join(a.AllVariants, " "),
	}, "|")
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

func joinComments(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "" || a == b:
		return a
	}
	return a + "; " + b
}
