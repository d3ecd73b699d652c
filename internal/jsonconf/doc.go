// Package jsonconf is the JSON implementation of the document loader.
// Comments and trailing commas are tolerated, so hand-annotated documents
// and previously written resolved snapshots both load unchanged. Feeding a
// run's resolved.json back in as the base document reproduces the run's
// configuration exactly.
package jsonconf
