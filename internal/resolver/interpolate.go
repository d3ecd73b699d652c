package resolver

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/document"
)

// interpolate evaluates every leaf expression to a fixed point. Each pass
// builds an evaluation context from the already-resolved portion of the tree
// and retries the leaves that still reference pending values. A pass that
// makes no progress while leaves remain pending means the remaining chain is
// unresolvable: either a reference to a path that does not exist, or a cycle.
func (r *Resolver) interpolate(ctx context.Context, tree *document.Node) error {
	logger := ctxlog.FromContext(ctx)

	maxPasses := r.MaxPasses
	if maxPasses <= 0 {
		maxPasses = defaultMaxPasses
	}

	pending := tree.Leaves()
	for pass := 1; len(pending) > 0 && pass <= maxPasses; pass++ {
		evalCtx := &hcl.EvalContext{Variables: topLevelVariables(tree)}

		var next []document.Leaf
		for _, leaf := range pending {
			value, diags := leaf.Node.Expr().Value(evalCtx)
			if diags.HasErrors() || !value.IsWhollyKnown() {
				next = append(next, leaf)
				continue
			}
			leaf.Node.SetValue(value)
		}

		logger.Debug("Interpolation pass complete.", "pass", pass, "resolved", len(pending)-len(next), "pending", len(next))
		if len(next) == len(pending) {
			// No progress; further passes cannot help.
			pending = next
			break
		}
		pending = next
	}

	if len(pending) == 0 {
		return nil
	}

	// Classify the stall. Leaves are in sorted path order, so the reported
	// error is deterministic.
	for _, leaf := range pending {
		for _, traversal := range leaf.Node.Expr().Variables() {
			refPath, ok := traversalPath(traversal)
			if !ok {
				continue
			}
			if !refExists(tree, refPath) {
				return conferr.New(conferr.MissingReference, leaf.Path,
					"interpolation references %s, which does not exist in the merged document", refPath)
			}
		}
	}

	// A leaf whose references all resolved is not waiting on anything; its
	// evaluation failed outright, so surface the underlying diagnostic
	// instead of blaming a cycle.
	evalCtx := &hcl.EvalContext{Variables: topLevelVariables(tree)}
	for _, leaf := range pending {
		if referencesPending(tree, leaf.Node.Expr()) {
			continue
		}
		if _, diags := leaf.Node.Expr().Value(evalCtx); diags.HasErrors() {
			return conferr.New(conferr.TypeMismatch, leaf.Path,
				"expression cannot be evaluated: %s", diags.Error())
		}
	}

	return conferr.New(conferr.CyclicInterpolation, pending[0].Path,
		"interpolation did not reach a fixed point after %d passes; the reference chain is self-referential", maxPasses)
}

// referencesPending reports whether any reference of the expression points at
// a value that has not resolved yet.
func referencesPending(tree *document.Node, expr hcl.Expression) bool {
	for _, traversal := range expr.Variables() {
		refPath, ok := traversalPath(traversal)
		if !ok {
			return true
		}
		if refPending(tree, refPath) {
			return true
		}
	}
	return false
}

// refPending reports whether a reference path lands on, or descends through,
// a leaf still awaiting its value. A reference to a whole section is pending
// while any leaf beneath it is.
func refPending(tree *document.Node, path confpath.Path) bool {
	current := tree
	for _, segment := range path {
		if !current.IsMap() {
			return !current.Resolved()
		}
		child, ok := current.Child(segment.Name)
		if !ok {
			return false
		}
		if segment.HasIndex() && !child.IsMap() {
			return !child.Resolved()
		}
		current = child
	}
	if !current.IsMap() {
		return !current.Resolved()
	}
	for _, leaf := range current.Leaves() {
		if !leaf.Node.Resolved() {
			return true
		}
	}
	return false
}

// topLevelVariables assembles the interpolation scope: one variable per
// top-level key, carrying the partially resolved value of that section.
// References into a still-pending attribute fail the pass and are retried.
func topLevelVariables(tree *document.Node) map[string]cty.Value {
	vars := make(map[string]cty.Value)
	for _, name := range tree.Keys() {
		child, _ := tree.Child(name)
		if child.IsMap() {
			vars[name] = child.PartialValue()
			continue
		}
		if child.Resolved() {
			vars[name] = child.Value()
		}
	}
	return vars
}

// traversalPath converts an HCL variable traversal into a dotted path.
func traversalPath(traversal hcl.Traversal) (confpath.Path, bool) {
	var path confpath.Path
	for _, step := range traversal {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			path = append(path, confpath.NewSegment(s.Name))
		case hcl.TraverseAttr:
			path = append(path, confpath.NewSegment(s.Name))
		case hcl.TraverseIndex:
			if len(path) == 0 {
				return nil, false
			}
			switch {
			case s.Key.Type() == cty.String:
				path = append(path, confpath.NewSegment(s.Key.AsString()))
			case s.Key.Type() == cty.Number:
				index, _ := s.Key.AsBigFloat().Int64()
				path[len(path)-1].Index = int(index)
			default:
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return path, true
}

// refExists reports whether an interpolation reference points at something
// present in the merged tree. A reference may descend into a resolved leaf
// value (e.g. an attribute of an object-valued leaf), in which case the
// check continues inside the cty value. A reference into a still-pending
// leaf is treated as existing: it is a cycle participant, not a missing key.
func refExists(tree *document.Node, path confpath.Path) bool {
	current := tree
	for i, segment := range path {
		if !current.IsMap() {
			if !current.Resolved() {
				return true
			}
			return valueHasPath(current.Value(), path[i:])
		}
		child, ok := current.Child(segment.Name)
		if !ok {
			return false
		}
		if segment.HasIndex() {
			if child.IsMap() {
				return false
			}
			if !child.Resolved() {
				return true
			}
			rest := append(confpath.Path{confpath.Segment{Name: segment.Name, Index: segment.Index}}, path[i+1:]...)
			// Re-check the index step against the leaf value itself.
			return valueHasIndexedPath(child.Value(), rest)
		}
		current = child
	}
	return true
}

// valueHasPath walks named segments inside a cty value.
func valueHasPath(value cty.Value, path confpath.Path) bool {
	for _, segment := range path {
		if value.IsNull() {
			return false
		}
		ty := value.Type()
		switch {
		case ty.IsObjectType():
			if !ty.HasAttribute(segment.Name) {
				return false
			}
			value = value.GetAttr(segment.Name)
		case ty.IsMapType():
			index := cty.StringVal(segment.Name)
			if has := value.HasIndex(index); has.False() {
				return false
			}
			value = value.Index(index)
		default:
			return false
		}
		if segment.HasIndex() {
			if !value.CanIterateElements() {
				return false
			}
			index := cty.NumberIntVal(int64(segment.Index))
			if has := value.HasIndex(index); has.False() {
				return false
			}
			value = value.Index(index)
		}
	}
	return true
}

// valueHasIndexedPath handles the case where the first segment indexes the
// leaf value directly.
func valueHasIndexedPath(value cty.Value, path confpath.Path) bool {
	first := path[0]
	if !value.CanIterateElements() {
		return false
	}
	index := cty.NumberIntVal(int64(first.Index))
	if has := value.HasIndex(index); has.False() {
		return false
	}
	return valueHasPath(value.Index(index), path[1:])
}
