package hclconf

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/document"
)

// Loader reads .hcl configuration documents into the tree model.
type Loader struct{}

// New creates a new HCL document loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the HCL file at path and translates its body into a document
// tree.
func (l *Loader) Load(ctx context.Context, path string) (*document.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding HCL config document.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		// Unreachable for files parsed by ParseHCLFile with native syntax.
		return nil, fmt.Errorf("unexpected body implementation for %s", path)
	}

	return translateBody(body)
}

// translateBody converts an HCL body into a document tree. Attributes become
// leaves; blocks become nested map nodes, descending through any labels, and
// repeated blocks of the same type merge recursively.
func translateBody(body *hclsyntax.Body) (*document.Node, error) {
	node := document.NewMap()

	// Sorted for deterministic duplicate detection.
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		node.SetChild(name, document.NewLeaf(body.Attributes[name].Expr))
	}

	for _, block := range body.Blocks {
		mount, err := ensureMap(node, block.Type)
		if err != nil {
			return nil, err
		}
		for _, label := range block.Labels {
			mount, err = ensureMap(mount, label)
			if err != nil {
				return nil, err
			}
		}
		sub, err := translateBody(block.Body)
		if err != nil {
			return nil, err
		}
		document.Merge(mount, sub)
	}

	return node, nil
}

// ensureMap returns the named child as a map node, creating it if absent.
func ensureMap(parent *document.Node, name string) (*document.Node, error) {
	child, ok := parent.Child(name)
	if !ok {
		child = document.NewMap()
		parent.SetChild(name, child)
		return child, nil
	}
	if !child.IsMap() {
		return nil, fmt.Errorf("block %q conflicts with an attribute of the same name", name)
	}
	return child, nil
}
