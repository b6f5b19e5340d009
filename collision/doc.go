// Package collision detects labels that a Label Generation Ruleset
// considers equivalent through its variant mappings.
//
// Two labels collide when substituting repertoire elements for their
// variants can turn one into the other. The package reduces that check
// to an index computation: variant mappings partition the repertoire
// into equivalence sets, and a label's index is the sequence of set
// representatives for its elements. Labels with equal indexes collide.
//
// # Building an Index
//
// An Index is built once per ruleset and then fed labels:
//
//	idx := collision.NewIndex(lgr)
//	idx.AddLabel("paypal")
//	idx.AddLabel("paypa1")
//
// # Querying
//
//	groups := idx.Collisions()        // all colliding groups
//	peers := idx.CollidesWith("paypal")
//
// Variant mappings are treated as undirected: if the ruleset maps a to b,
// labels using a collide with labels using b regardless of direction or
// variant type.
package collision
