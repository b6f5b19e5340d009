package golgr

import (
	"github.com/labelgen/go-lgr/ruleset"
)

// summarizeMerge computes the aggregate statistics reported with a merge
// result. Enrichment is fail-open: whatever metadata the members carry is
// reported, and members without languages or records simply contribute
// nothing.
func summarizeMerge(members []*ruleset.LGR, merged *ruleset.LGR) MergeSummary {
	s := MergeSummary{
		Sources: len(members),
		Records: len(merged.Repertoire),
		Rules:   len(merged.Rules),
		Actions: len(merged.Actions),
	}

	for _, rec := range merged.Repertoire {
		switch {
		case rec.IsRange():
			s.Ranges++
		case rec.IsSequence():
			s.Sequences++
		}
		s.Variants += len(rec.Variants)
	}

	s.Languages = languageUnion(members)
	if len(members) > 1 {
		s.MemberRecords = make(map[string]int, len(members))
		for _, m := range members {
			s.MemberRecords[m.Name] += len(m.Repertoire)
		}
	}
	return s
}

// languageUnion collects the members' declared languages in first-seen
// order.
func languageUnion(members []*ruleset.LGR) []string {
	var langs []string
	seen := make(map[string]bool)
	for _, m := range members {
		for _, lang := range m.Meta.Languages {
			if lang == "" || seen[lang] {
				continue
			}
			seen[lang] = true
			langs = append(langs, lang)
		}
	}
	return langs
}
