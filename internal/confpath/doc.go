// Package confpath defines the dotted-path addressing scheme used to refer
// to values inside a configuration tree, e.g. `reward_config.progression.weight`
// or `observation_config.objects.features[0]`. Paths are the common currency
// between ad-hoc overrides, interpolation references, and error reporting.
package confpath
