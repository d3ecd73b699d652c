// Package schema declares the experiment configuration schema: the required
// sections, the type and range invariants of every field, and the fixed
// vocabularies for termination keys, reward components, observation channels
// and their feature names, and network encoder types.
//
// Validation runs on the fully resolved tree and reports the first violation
// found, always naming the offending dotted path.
package schema
