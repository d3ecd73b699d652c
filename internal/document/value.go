package document

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/confpath"
)

// Leaf pairs a leaf node with its dotted path in the tree.
type Leaf struct {
	Path confpath.Path
	Node *Node
}

// Leaves returns every leaf of the tree in sorted path order.
func (n *Node) Leaves() []Leaf {
	var leaves []Leaf
	n.appendLeaves(nil, &leaves)
	return leaves
}

func (n *Node) appendLeaves(prefix confpath.Path, out *[]Leaf) {
	if !n.IsMap() {
		path := make(confpath.Path, len(prefix))
		copy(path, prefix)
		*out = append(*out, Leaf{Path: path, Node: n})
		return
	}
	for _, name := range n.Keys() {
		child, _ := n.Child(name)
		child.appendLeaves(append(prefix, confpath.NewSegment(name)), out)
	}
}

// PartialValue assembles a cty object from the portion of the tree that has
// been resolved so far, silently omitting pending leaves. It is the variable
// source for interpolation passes: a reference into an omitted attribute
// simply fails that pass and is retried once the target resolves.
func (n *Node) PartialValue() cty.Value {
	if !n.IsMap() {
		return n.value
	}
	attrs := make(map[string]cty.Value)
	for _, name := range n.Keys() {
		child, _ := n.Child(name)
		if child.IsMap() {
			attrs[name] = child.PartialValue()
			continue
		}
		if child.Resolved() {
			attrs[name] = child.Value()
		}
	}
	return cty.ObjectVal(attrs)
}

// FinalValue assembles the fully resolved cty object for the tree. It fails
// if any leaf is still pending, which would indicate a resolver bug rather
// than a user error.
func (n *Node) FinalValue() (cty.Value, error) {
	if !n.IsMap() {
		if !n.Resolved() {
			return cty.NilVal, fmt.Errorf("unresolved leaf in final tree")
		}
		return n.value, nil
	}
	attrs := make(map[string]cty.Value)
	for _, name := range n.Keys() {
		child, _ := n.Child(name)
		value, err := child.FinalValue()
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s: %w", name, err)
		}
		attrs[name] = value
	}
	return cty.ObjectVal(attrs), nil
}
