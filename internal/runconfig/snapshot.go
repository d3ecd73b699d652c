package runconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// SnapshotFileName is the resolved-configuration file written into every run
// directory.
const SnapshotFileName = "resolved.json"

// Snapshot serializes the resolved configuration tree. The serialization is
// deterministic (object attributes in sorted order), so identical inputs
// produce byte-for-byte identical snapshots, and a snapshot loads back as a
// base document to reproduce the run.
func (c *Config) Snapshot() ([]byte, error) {
	escaped := escapeTemplateMarkers(c.resolved)
	raw, err := ctyjson.Marshal(escaped, escaped.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resolved configuration: %w", err)
	}
	return append(raw, '\n'), nil
}

// escapeTemplateMarkers escapes interpolation markers inside string values,
// so a resolved string that legitimately contains "${" loads back from the
// snapshot as the same literal instead of being re-parsed as a template.
func escapeTemplateMarkers(value cty.Value) cty.Value {
	out, err := cty.Transform(value, func(_ cty.Path, v cty.Value) (cty.Value, error) {
		if v.IsNull() || v.Type() != cty.String || !strings.Contains(v.AsString(), "${") {
			return v, nil
		}
		s := strings.ReplaceAll(v.AsString(), "${", "$${")
		s = strings.ReplaceAll(s, "%{", "%%{")
		return cty.StringVal(s), nil
	})
	if err != nil {
		// Unreachable: the transformer never returns an error.
		return value
	}
	return out
}

// WriteSnapshot writes the serialized snapshot into dir, creating the
// directory if needed.
func (c *Config) WriteSnapshot(dir string) (string, error) {
	raw, err := c.Snapshot()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}
	target := filepath.Join(dir, SnapshotFileName)
	if err := os.WriteFile(target, raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write resolved snapshot: %w", err)
	}
	return target, nil
}
