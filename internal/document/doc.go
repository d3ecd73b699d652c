// Package document defines the format-agnostic configuration tree shared by
// every loader dialect and by the resolver. Interior nodes are string-keyed
// maps; leaves hold unevaluated hcl.Expression values until interpolation
// resolution assigns them a concrete cty.Value.
//
// The tree is the single source of truth for the merge and interpolation
// phases. Concrete loaders for HCL, YAML, and JSON documents live in
// separate packages and all produce this model.
package document
