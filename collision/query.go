package collision

import "slices"

// Collisions returns every group of two or more distinct labels sharing
// an index form. Groups appear in the order their first label was added,
// labels within a group in insertion order.
func (x *Index) Collisions() [][]string {
	var groups [][]string
	for _, key := range x.order {
		if len(x.labels[key]) >= 2 {
			groups = append(groups, slices.Clone(x.labels[key]))
		}
	}
	return groups
}

// CollidesWith returns the added labels equivalent to the given label,
// excluding the label itself. The label does not need to have been added.
func (x *Index) CollidesWith(label string) []string {
	key := x.IndexLabel([]rune(label))
	var peers []string
	for _, have := range x.labels[key] {
		if have != label {
			peers = append(peers, have)
		}
	}
	return peers
}

// Contains reports whether the label was added to the index.
func (x *Index) Contains(label string) bool {
	return x.seen[label]
}

// Len returns the number of distinct labels added.
func (x *Index) Len() int {
	return len(x.seen)
}
