package yamlconf

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/document"
)

// Loader reads .yaml/.yml configuration documents into the tree model.
type Loader struct{}

// New creates a new YAML document loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the YAML file at path and translates it into a document tree.
// The top-level node must be a mapping.
func (l *Loader) Load(ctx context.Context, path string) (*document.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding YAML config document.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	// An empty document is a valid, empty tree.
	if root.Kind == 0 || len(root.Content) == 0 {
		return document.NewMap(), nil
	}

	mapping := root.Content[0]
	if mapping.Kind == yaml.AliasNode {
		mapping = mapping.Alias
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("YAML document %s must be a mapping at the top level", path)
	}

	return translateMapping(path, mapping)
}

func translateMapping(path string, node *yaml.Node) (*document.Node, error) {
	tree := document.NewMap()
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s:%d: mapping keys must be scalars", path, keyNode.Line)
		}
		child, err := translateValue(path, valueNode)
		if err != nil {
			return nil, err
		}
		tree.SetChild(keyNode.Value, child)
	}
	return tree, nil
}

func translateValue(path string, node *yaml.Node) (*document.Node, error) {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		return translateMapping(path, node)
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			return templateLeaf(path, node)
		}
		value, err := scalarValue(path, node)
		if err != nil {
			return nil, err
		}
		return document.NewLiteral(value), nil
	case yaml.SequenceNode:
		value, err := sequenceValue(path, node)
		if err != nil {
			return nil, err
		}
		return document.NewLiteral(value), nil
	default:
		return nil, fmt.Errorf("%s:%d: unsupported YAML node kind", path, node.Line)
	}
}

// templateLeaf parses a string scalar as an HCL template, keeping `${...}`
// references unevaluated for the resolver's fixed-point pass. Plain strings
// parse to a literal template and behave as ordinary values.
func templateLeaf(path string, node *yaml.Node) (*document.Node, error) {
	expr, diags := hclsyntax.ParseTemplate(
		[]byte(node.Value),
		path,
		hcl.Pos{Line: node.Line, Column: node.Column, Byte: 0},
	)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s:%d: invalid interpolation template %q: %s", path, node.Line, node.Value, diags.Error())
	}
	return document.NewLeaf(expr), nil
}

func scalarValue(path string, node *yaml.Node) (cty.Value, error) {
	switch node.Tag {
	case "!!str":
		return cty.StringVal(node.Value), nil
	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s:%d: invalid integer %q: %w", path, node.Line, node.Value, err)
		}
		return cty.NumberIntVal(n), nil
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s:%d: invalid float %q: %w", path, node.Line, node.Value, err)
		}
		return cty.NumberFloatVal(f), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s:%d: invalid boolean %q: %w", path, node.Line, node.Value, err)
		}
		return cty.BoolVal(b), nil
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	default:
		return cty.NilVal, fmt.Errorf("%s:%d: unsupported YAML scalar tag %s", path, node.Line, node.Tag)
	}
}

// sequenceValue converts a YAML sequence into a literal cty tuple. Strings
// inside sequences are taken literally; interpolation is an attribute-level
// feature.
func sequenceValue(path string, node *yaml.Node) (cty.Value, error) {
	if len(node.Content) == 0 {
		return cty.EmptyTupleVal, nil
	}
	elems := make([]cty.Value, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		switch item.Kind {
		case yaml.ScalarNode:
			value, err := scalarValue(path, item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, value)
		case yaml.SequenceNode:
			value, err := sequenceValue(path, item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, value)
		case yaml.MappingNode:
			value, err := mappingValue(path, item)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, value)
		default:
			return cty.NilVal, fmt.Errorf("%s:%d: unsupported YAML node kind in sequence", path, item.Line)
		}
	}
	return cty.TupleVal(elems), nil
}

func mappingValue(path string, node *yaml.Node) (cty.Value, error) {
	attrs := make(map[string]cty.Value)
	for i := 0; i < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return cty.NilVal, fmt.Errorf("%s:%d: mapping keys must be scalars", path, keyNode.Line)
		}
		if valueNode.Kind == yaml.AliasNode {
			valueNode = valueNode.Alias
		}
		switch valueNode.Kind {
		case yaml.ScalarNode:
			value, err := scalarValue(path, valueNode)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[keyNode.Value] = value
		case yaml.SequenceNode:
			value, err := sequenceValue(path, valueNode)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[keyNode.Value] = value
		case yaml.MappingNode:
			value, err := mappingValue(path, valueNode)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[keyNode.Value] = value
		default:
			return cty.NilVal, fmt.Errorf("%s:%d: unsupported YAML node kind in mapping", path, valueNode.Line)
		}
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(attrs), nil
}
