// Package registry discovers and indexes the named override groups available
// under a configuration root. Each first-level subdirectory is a group
// (algorithm, network, logging) and each document inside it is a selectable
// choice, e.g. `algorithm/ppo.hcl` registers choice "ppo" for group
// "algorithm". The registry is the authority consulted when a selector names
// a group or choice, turning typos into UnknownGroup errors before any merge
// happens.
package registry
