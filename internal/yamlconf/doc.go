// Package yamlconf is the YAML implementation of the document loader.
// Mappings become interior map nodes and scalars become leaves. String
// scalars are parsed as HCL templates so `${a.b}` references interpolate
// exactly as they do in .hcl documents; all other scalars become literal
// values. Sequences are translated to literal tuples wholesale, since merge
// semantics replace lists rather than concatenating them.
package yamlconf
