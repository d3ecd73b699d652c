package loader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vmaxlab/expconf/internal/document"
	"github.com/vmaxlab/expconf/internal/hclconf"
	"github.com/vmaxlab/expconf/internal/jsonconf"
	"github.com/vmaxlab/expconf/internal/yamlconf"
)

// Loader is the interface for a dialect-specific configuration document reader.
type Loader interface {
	// Load reads the document at path and translates it into the
	// format-agnostic tree model.
	Load(ctx context.Context, path string) (*document.Node, error)
}

// Extensions lists the file extensions recognized as configuration
// documents, in dispatch order.
func Extensions() []string {
	return []string{".hcl", ".yaml", ".yml", ".json"}
}

// For returns the loader responsible for the given file path, selected by
// extension.
func For(path string) (Loader, error) {
	switch filepath.Ext(path) {
	case ".hcl":
		return hclconf.New(), nil
	case ".yaml", ".yml":
		return yamlconf.New(), nil
	case ".json":
		return jsonconf.New(), nil
	default:
		return nil, fmt.Errorf("unsupported config document extension: %s", path)
	}
}

// Open is a convenience wrapper combining For and Load.
func Open(ctx context.Context, path string) (*document.Node, error) {
	l, err := For(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path)
}
