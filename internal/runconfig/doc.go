// Package runconfig is the typed, read-only view of a resolved and validated
// experiment configuration. It carries the run settings, feature flags,
// environment settings, reward and observation sections, and the dynamic
// algorithm/network subtrees, and derives the per-run artifacts: the output
// directory path, the environment/run configuration split handed to the
// external consumers, and the serialized snapshot written alongside run
// outputs for reproducibility.
//
// Ownership of the configuration transfers to the training driver at
// construction; nothing here mutates it afterwards.
package runconfig
