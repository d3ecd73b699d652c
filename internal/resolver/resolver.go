package resolver

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/document"
	"github.com/vmaxlab/expconf/internal/loader"
	"github.com/vmaxlab/expconf/internal/registry"
)

// SelfEntry is the defaults-list marker for the base document's own keys.
const SelfEntry = "_self_"

// defaultMaxPasses bounds the interpolation fixed point.
const defaultMaxPasses = 16

// Resolver merges and resolves configuration documents against a discovered
// group registry.
type Resolver struct {
	Registry *registry.Registry

	// OpenRoots are top-level sections that accept ad-hoc override keys not
	// present in the merged document, so new experiment knobs never require
	// a schema change.
	OpenRoots []string

	// MaxPasses overrides the interpolation pass bound. Zero means the
	// default.
	MaxPasses int
}

// Resolved is the immutable output of a successful resolution: the document
// tree with every leaf evaluated, plus its assembled cty value.
type Resolved struct {
	Tree  *document.Node
	Value cty.Value
}

// Load runs the full load -> merge -> interpolate pipeline.
func (r *Resolver) Load(ctx context.Context, basePath string, selectors []GroupSelector, overrides []Override) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolver started.", "base", basePath, "selectors", len(selectors), "overrides", len(overrides))

	base, err := loader.Open(ctx, basePath)
	if err != nil {
		return nil, err
	}

	entries, err := r.composeOrder(base, selectors)
	if err != nil {
		return nil, err
	}

	// The defaults list is composition metadata, not configuration.
	self := base.Clone()
	self.Remove("defaults")

	merged := document.NewMap()
	for _, entry := range entries {
		if entry.self {
			document.Merge(merged, self)
			continue
		}
		docPath, err := r.Registry.Document(entry.group, entry.choice)
		if err != nil {
			return nil, err
		}
		doc, err := loader.Open(ctx, docPath)
		if err != nil {
			return nil, err
		}
		// A group document's tree mounts under its group name.
		wrapper := document.NewMap()
		wrapper.SetChild(entry.group, doc)
		document.Merge(merged, wrapper)
		logger.Debug("Merged override group.", "group", entry.group, "choice", entry.choice)
	}

	if err := r.applyOverrides(merged, overrides); err != nil {
		return nil, err
	}

	if err := r.interpolate(ctx, merged); err != nil {
		return nil, err
	}

	value, err := merged.FinalValue()
	if err != nil {
		// Unreachable after a successful interpolation pass.
		return nil, fmt.Errorf("internal error assembling resolved tree: %w", err)
	}

	logger.Debug("Resolver finished.", "top_level_keys", len(merged.Keys()))
	return &Resolved{Tree: merged, Value: value}, nil
}

// mergeEntry is one slot in the composition order.
type mergeEntry struct {
	self   bool
	group  string
	choice string
}

// composeOrder evaluates the base document's defaults list and applies the
// CLI group selectors on top: a selector replaces the defaults-list choice
// for its group in place, or appends when the group is not listed.
func (r *Resolver) composeOrder(base *document.Node, selectors []GroupSelector) ([]mergeEntry, error) {
	entries, err := defaultsEntries(base)
	if err != nil {
		return nil, err
	}

	hasSelf := false
	for _, entry := range entries {
		if entry.self {
			hasSelf = true
			break
		}
	}
	if !hasSelf {
		entries = append([]mergeEntry{{self: true}}, entries...)
	}

	for _, selector := range selectors {
		if !r.Registry.Has(selector.Group) {
			return nil, conferr.New(conferr.UnknownGroup, confpath.Root(selector.Group),
				"no override group named %q is registered", selector.Group)
		}
		replaced := false
		for i := range entries {
			if !entries[i].self && entries[i].group == selector.Group {
				entries[i].choice = selector.Choice
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, mergeEntry{group: selector.Group, choice: selector.Choice})
		}
	}

	return entries, nil
}

// defaultsEntries reads the base document's `defaults` attribute: an ordered
// list of "group/choice" strings plus the optional "_self_" marker. The
// attribute must be statically evaluable; it cannot interpolate.
func defaultsEntries(base *document.Node) ([]mergeEntry, error) {
	node, ok := base.Get(confpath.Root("defaults"))
	if !ok {
		return nil, nil
	}
	if node.IsMap() {
		return nil, fmt.Errorf("defaults must be a list of strings, not a section")
	}

	value, diags := node.Expr().Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("defaults list must be a static value: %s", diags.Error())
	}
	if !value.CanIterateElements() {
		return nil, fmt.Errorf("defaults must be a list of strings")
	}

	var entries []mergeEntry
	for it := value.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() != cty.String {
			return nil, fmt.Errorf("defaults entries must be strings")
		}
		raw := elem.AsString()
		if raw == SelfEntry {
			entries = append(entries, mergeEntry{self: true})
			continue
		}
		group, choice, err := splitGroupChoice(raw)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mergeEntry{group: group, choice: choice})
	}
	return entries, nil
}
