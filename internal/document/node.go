package document

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/confpath"
)

// Node is one vertex of a configuration tree: either a map of named children
// or a leaf expression. A leaf additionally carries its resolved cty.Value
// once interpolation has been performed.
type Node struct {
	children map[string]*Node
	expr     hcl.Expression
	value    cty.Value
}

// NewMap creates an empty interior node.
func NewMap() *Node {
	return &Node{children: make(map[string]*Node)}
}

// NewLeaf creates a leaf node holding an unevaluated expression.
func NewLeaf(expr hcl.Expression) *Node {
	return &Node{expr: expr, value: cty.NilVal}
}

// NewLiteral creates a leaf node backed by a literal value expression. Used
// by loaders whose dialects carry plain scalars (YAML, JSON) and by ad-hoc
// overrides.
func NewLiteral(v cty.Value) *Node {
	return &Node{expr: &hclsyntax.LiteralValueExpr{Val: v}, value: cty.NilVal}
}

// IsMap reports whether the node is an interior map node.
func (n *Node) IsMap() bool {
	return n.children != nil
}

// Expr returns the leaf's unevaluated expression, or nil for map nodes.
func (n *Node) Expr() hcl.Expression {
	return n.expr
}

// Resolved reports whether a leaf has been assigned its final value.
func (n *Node) Resolved() bool {
	return n.value != cty.NilVal
}

// Value returns the leaf's resolved value, or cty.NilVal if pending.
func (n *Node) Value() cty.Value {
	return n.value
}

// SetValue assigns the leaf's resolved value.
func (n *Node) SetValue(v cty.Value) {
	if n.IsMap() {
		panic("document: SetValue called on a map node")
	}
	n.value = v
}

// Keys returns the names of the node's children in sorted order, so callers
// never depend on map iteration order.
func (n *Node) Keys() []string {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Child returns the named child of a map node.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsMap() {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// SetChild attaches a child to a map node, replacing any previous entry.
func (n *Node) SetChild(name string, child *Node) {
	if !n.IsMap() {
		panic("document: SetChild called on a leaf node")
	}
	n.children[name] = child
}

// Remove deletes the named child from a map node, if present.
func (n *Node) Remove(name string) {
	if n.IsMap() {
		delete(n.children, name)
	}
}

// Get descends the tree along the named segments of the given path. Indexed
// segments address positions inside leaf values and are not traversable at
// the tree level, so a path carrying an index reports absence.
func (n *Node) Get(path confpath.Path) (*Node, bool) {
	current := n
	for _, segment := range path {
		if segment.HasIndex() {
			return nil, false
		}
		child, ok := current.Child(segment.Name)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

// Has reports whether a value or section exists at the given path.
func (n *Node) Has(path confpath.Path) bool {
	_, ok := n.Get(path)
	return ok
}

// Set places a node at the given path, creating intermediate map nodes as
// needed. It fails when the path traverses through an existing leaf, since
// a scalar cannot be silently turned into a section.
func (n *Node) Set(path confpath.Path, node *Node) error {
	if len(path) == 0 {
		return fmt.Errorf("cannot set the document root")
	}
	current := n
	for _, segment := range path[:len(path)-1] {
		if segment.HasIndex() {
			return fmt.Errorf("cannot address list element %q at the tree level", segment.Name)
		}
		child, ok := current.Child(segment.Name)
		if !ok {
			child = NewMap()
			current.SetChild(segment.Name, child)
		}
		if !child.IsMap() {
			return fmt.Errorf("path traverses through scalar value %q", segment.Name)
		}
		current = child
	}
	last := path[len(path)-1]
	if last.HasIndex() {
		return fmt.Errorf("cannot address list element %q at the tree level", last.Name)
	}
	current.SetChild(last.Name, node)
	return nil
}

// Clone returns a deep copy of the tree. Leaf expressions are shared (they
// are immutable); resolution state is copied.
func (n *Node) Clone() *Node {
	if !n.IsMap() {
		return &Node{expr: n.expr, value: n.value}
	}
	clone := NewMap()
	for name, child := range n.children {
		clone.children[name] = child.Clone()
	}
	return clone
}
