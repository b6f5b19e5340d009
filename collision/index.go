package collision

import (
	"strings"

	"github.com/labelgen/go-lgr/internal/hexcp"
	"github.com/labelgen/go-lgr/ruleset"
)

// NewIndex builds a collision index for the ruleset's variant mappings.
//
// Construction has two passes. The first collects every repertoire
// element that participates in a variant mapping, recording undirected
// edges between a record and each of its variant targets. The second
// walks the resulting components and assigns every member the
// component's lowest element as representative, so equivalent elements
// share one canonical key.
func NewIndex(lgr *ruleset.LGR) *Index {
	idx := &Index{
		reps:     make(map[string]string),
		elements: make(map[string][]rune),
		labels:   make(map[string][]string),
		seen:     make(map[string]bool),
	}

	adjacency := make(map[string][]string)
	addElement := func(cps []rune) string {
		key := hexcp.Format(cps)
		if _, ok := idx.elements[key]; !ok {
			idx.elements[key] = cps
			if len(cps) > idx.maxSeq {
				idx.maxSeq = len(cps)
			}
		}
		return key
	}

	for _, rec := range lgr.Repertoire {
		if rec.IsRange() {
			// Ranges carry no variants; their members map to themselves.
			continue
		}
		recKey := addElement(rec.CodePoints)
		for _, v := range rec.Variants {
			varKey := addElement(v.CodePoints)
			if varKey == recKey {
				continue
			}
			adjacency[recKey] = append(adjacency[recKey], varKey)
			adjacency[varKey] = append(adjacency[varKey], recKey)
		}
	}

	visited := make(map[string]bool)
	for key := range adjacency {
		if visited[key] {
			continue
		}

		// BFS over the variant component.
		component := []string{key}
		visited[key] = true
		for at := 0; at < len(component); at++ {
			for _, next := range adjacency[component[at]] {
				if !visited[next] {
					visited[next] = true
					component = append(component, next)
				}
			}
		}

		rep := component[0]
		for _, member := range component[1:] {
			if hexcp.Compare(idx.elements[member], idx.elements[rep]) < 0 {
				rep = member
			}
		}
		for _, member := range component {
			idx.reps[member] = rep
		}
	}

	return idx
}

// IndexLabel returns the label's canonical index form: the label is
// segmented greedily against the known elements, longest first, and each
// segment is replaced by its equivalence set representative. Code points
// outside any variant set represent themselves.
func (x *Index) IndexLabel(cps []rune) string {
	var parts []string
	for i := 0; i < len(cps); {
		matched := false
		for n := min(x.maxSeq, len(cps)-i); n > 1; n-- {
			key := hexcp.Format(cps[i : i+n])
			if rep, ok := x.reps[key]; ok {
				parts = append(parts, rep)
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		key := hexcp.FormatOne(cps[i])
		if rep, ok := x.reps[key]; ok {
			key = rep
		}
		parts = append(parts, key)
		i++
	}
	return strings.Join(parts, " ")
}

// AddLabel records a label under its index form. Adding the same label
// twice has no effect.
func (x *Index) AddLabel(label string) {
	if x.seen[label] {
		return
	}
	x.seen[label] = true

	key := x.IndexLabel([]rune(label))
	if _, ok := x.labels[key]; !ok {
		x.order = append(x.order, key)
	}
	x.labels[key] = append(x.labels[key], label)
}
