package golgr

import (
	"github.com/labelgen/go-lgr/collision"
	"github.com/labelgen/go-lgr/ruleset"
)

// FindCollisions groups labels whose variant index keys coincide under the
// ruleset. Each returned group lists its colliding labels in input order;
// labels colliding with nothing are omitted.
func FindCollisions(lgr *ruleset.LGR, labels []string) [][]string {
	idx := collision.NewIndex(lgr)
	for _, l := range labels {
		idx.AddLabel(l)
	}
	return idx.Collisions()
}

// HasCollision reports whether any two of the labels collide under the
// ruleset.
func HasCollision(lgr *ruleset.LGR, labels []string) bool {
	return len(FindCollisions(lgr, labels)) > 0
}
