// Package resolver produces one fully-resolved configuration tree from a
// base document, a chain of named override groups, and ad-hoc dotted-path
// overrides.
//
// The pipeline is load -> merge -> interpolate. Merge order follows the base
// document's `defaults` list: each "group/choice" entry overlays the named
// group document, and the special "_self_" entry marks where the base
// document's own keys are inserted (first, when the list omits it). Ad-hoc
// overrides always apply last. Interpolation is a fixed-point substitution
// pass bounded by a maximum pass count, which guards against cycles without
// requiring full graph analysis.
//
// The resolver is a pure function of its inputs plus the discovered group
// registry: it reads the input documents and touches no other state.
package resolver
