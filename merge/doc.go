// Package merge combines independently authored Label Generation Rulesets
// into one superset ruleset for joint validation.
//
// # Algorithm Overview
//
// Union builds the merged ruleset in member order:
//
//  1. Compute rename maps. A rule or class name defined by more than one
//     member is prefixed with the member's display name in every member
//     that defines it, so cross-references stay unambiguous after the
//     merge. Names defined by a single member are kept as-is.
//
//  2. Merge metadata. Languages and scopes are unioned in first-seen
//     order, the date is the latest across members, the Unicode version
//     is the highest across members, and the description records the
//     member names.
//
//  3. Union the repertoire. Records are keyed by their code point
//     sequence. When several members define the same key, the merged
//     record carries the union of their tags, references, and variants;
//     a variant is identified by its target sequence and context rules,
//     so the same mapping contributed twice collapses to one entry.
//
//  4. Copy classes and rules with the rename maps applied to class
//     names, rule names, and class references inside rule bodies.
//
//  5. Concatenate actions in member order, rewriting renamed rule
//     references and collapsing actions that become identical.
//
// Union never mutates its inputs: every record, class, rule, and action
// in the merged ruleset is a copy.
//
// # Conflicting Repertoire Semantics
//
// The union is deliberately permissive. Two members may assign the same
// code point different contextual rules; the merged record keeps the
// first member's when and not-when references (renamed if needed), which
// mirrors the first-wins policy applied to variant types. Overlapping
// ranges from different members are kept as authored and surface as
// validator diagnostics rather than merge failures.
package merge
