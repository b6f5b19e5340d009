package collision

// Index maps labels to canonical index forms derived from a ruleset's
// variant mappings. Labels sharing an index form are collisions.
type Index struct {
	// reps maps a repertoire element's key to the representative key of
	// its variant equivalence set. Elements without variants map to
	// themselves and are not stored.
	reps map[string]string

	// elements maps an element key to its code points, for ordering and
	// greedy matching.
	elements map[string][]rune

	// maxSeq is the longest element length in code points, bounding the
	// greedy matcher's lookahead.
	maxSeq int

	// labels collects added labels per index form, in insertion order.
	labels map[string][]string

	// order records index forms in first-seen order so collision groups
	// come out deterministically.
	order []string

	// seen tracks added labels so duplicates are recorded once.
	seen map[string]bool
}
