// Package hclconf is the HCL implementation of the document loader. Blocks
// become interior map nodes (and merge recursively when repeated), attributes
// become leaf expressions. Native `${...}` templates in attribute values are
// the interpolation syntax; they stay unevaluated until the resolver runs
// its fixed-point pass.
package hclconf
