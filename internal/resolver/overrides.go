package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
	"github.com/vmaxlab/expconf/internal/document"
)

// GroupSelector picks a choice for a named override group, e.g. algorithm=sac.
type GroupSelector struct {
	Group  string
	Choice string
}

// ParseSelector parses a `group=choice` selector string.
func ParseSelector(raw string) (GroupSelector, error) {
	group, choice, ok := strings.Cut(raw, "=")
	if !ok || group == "" || choice == "" {
		return GroupSelector{}, fmt.Errorf("invalid group selector %q: expected group=choice", raw)
	}
	return GroupSelector{Group: group, Choice: choice}, nil
}

// splitGroupChoice parses a defaults-list entry of the form "group/choice".
func splitGroupChoice(raw string) (string, string, error) {
	group, choice, ok := strings.Cut(raw, "/")
	if !ok || group == "" || choice == "" {
		return "", "", fmt.Errorf("invalid defaults entry %q: expected group/choice or %q", raw, SelfEntry)
	}
	return group, choice, nil
}

// Override is a parsed ad-hoc `dotted.path=value` override.
type Override struct {
	Path  confpath.Path
	Value cty.Value
}

// ParseOverride parses an ad-hoc override string. The value is typed by
// best-effort parse: int, then float, then bool, falling back to string.
func ParseOverride(raw string) (Override, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return Override{}, fmt.Errorf("invalid override %q: expected dotted.path=value", raw)
	}
	path, err := confpath.Parse(key)
	if err != nil {
		return Override{}, fmt.Errorf("invalid override path %q: %w", key, err)
	}
	return Override{Path: path, Value: parseScalar(value)}, nil
}

// parseScalar types an override value by best-effort parse.
func parseScalar(raw string) cty.Value {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return cty.NumberIntVal(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return cty.NumberFloatVal(f)
	}
	switch strings.ToLower(raw) {
	case "true":
		return cty.True
	case "false":
		return cty.False
	}
	return cty.StringVal(raw)
}

// applyOverrides places every ad-hoc override into the merged tree, highest
// priority. A path absent from the merged document is rejected with
// UnknownKey unless it sits under an open-ended section root.
func (r *Resolver) applyOverrides(merged *document.Node, overrides []Override) error {
	for _, override := range overrides {
		if !merged.Has(override.Path) && !r.openPath(override.Path) {
			return conferr.New(conferr.UnknownKey, override.Path,
				"no such key in the merged configuration (open sections: %s)",
				strings.Join(r.OpenRoots, ", "))
		}
		if err := merged.Set(override.Path, document.NewLiteral(override.Value)); err != nil {
			return conferr.New(conferr.UnknownKey, override.Path, "%s", err)
		}
	}
	return nil
}

// openPath reports whether the path's root section accepts open-ended keys.
func (r *Resolver) openPath(path confpath.Path) bool {
	if len(path) == 0 {
		return false
	}
	for _, root := range r.OpenRoots {
		if path[0].Name == root {
			return true
		}
	}
	return false
}
