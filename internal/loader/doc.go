// Package loader defines the dialect-agnostic interface for reading a
// configuration document from disk into the document tree, and dispatches to
// the concrete dialect implementation based on file extension. Supported
// dialects are HCL (.hcl), YAML (.yaml/.yml), and JSON with comments
// (.json); all three produce the same document.Node model, so the merge and
// interpolation phases never know which dialect a document came from.
package loader
