package jsonconf

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/tidwall/jsonc"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/document"
)

// Loader reads .json configuration documents (JSONC dialect) into the tree
// model.
type Loader struct{}

// New creates a new JSON document loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the JSON file at path and translates it into a document tree.
// The top-level value must be an object.
func (l *Loader) Load(ctx context.Context, path string) (*document.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding JSON config document.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file %s: %w", path, err)
	}

	// Strip comments and trailing commas before handing to the strict parser.
	plain := jsonc.ToJSON(raw)

	ty, err := ctyjson.ImpliedType(plain)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON file %s: %w", path, err)
	}
	value, err := ctyjson.Unmarshal(plain, ty)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON file %s: %w", path, err)
	}

	if !value.Type().IsObjectType() {
		return nil, fmt.Errorf("JSON document %s must be an object at the top level", path)
	}

	return translateObject(path, value), nil
}

// translateObject converts a cty object into a document tree. Nested objects
// become interior nodes; strings carrying an interpolation marker are parsed
// as HCL templates, everything else becomes a literal leaf.
func translateObject(path string, value cty.Value) *document.Node {
	tree := document.NewMap()
	for name, attr := range value.AsValueMap() {
		switch {
		case attr.Type().IsObjectType() && !attr.IsNull():
			tree.SetChild(name, translateObject(path, attr))
		case attr.Type() == cty.String && !attr.IsNull() && strings.Contains(attr.AsString(), "${"):
			expr, diags := hclsyntax.ParseTemplate([]byte(attr.AsString()), path, hcl.InitialPos)
			if diags.HasErrors() {
				// An unparsable marker stays a literal string; validation
				// will reject it if the schema expects something else.
				tree.SetChild(name, document.NewLiteral(attr))
				continue
			}
			tree.SetChild(name, document.NewLeaf(expr))
		default:
			tree.SetChild(name, document.NewLiteral(attr))
		}
	}
	return tree
}
