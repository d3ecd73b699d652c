package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/fsutil"
	"github.com/vmaxlab/expconf/internal/loader"
)

// Registry indexes the override groups discovered under a configuration root.
type Registry struct {
	root   string
	groups map[string]map[string]string // group -> choice -> document path
}

// Discover walks the first-level subdirectories of root and registers every
// configuration document found inside them as a group choice.
func Discover(ctx context.Context, root string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering override groups.", "root", root)

	r := &Registry{root: root, groups: make(map[string]map[string]string)}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("error reading config root %s: %w", root, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		group := entry.Name()
		files, err := fsutil.FindFilesByExtension(filepath.Join(root, group), loader.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("error scanning group %s: %w", group, err)
		}
		if len(files) == 0 {
			continue
		}
		choices := make(map[string]string, len(files))
		for _, file := range files {
			name := filepath.Base(file)
			choice := strings.TrimSuffix(name, filepath.Ext(name))
			// The scan is recursive and choices are keyed by base name, so
			// two documents must not claim the same choice.
			if existing, ok := choices[choice]; ok {
				return nil, fmt.Errorf("override group %q has ambiguous choice %q: %s and %s",
					group, choice, existing, file)
			}
			choices[choice] = file
		}
		r.groups[group] = choices
	}

	logger.Debug("Override group discovery complete.", "groups", len(r.groups))
	return r, nil
}

// Groups returns the registered group names in sorted order.
func (r *Registry) Groups() []string {
	groups := make([]string, 0, len(r.groups))
	for group := range r.groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// Choices returns the registered choice names for a group in sorted order.
func (r *Registry) Choices(group string) []string {
	choices := make([]string, 0, len(r.groups[group]))
	for choice := range r.groups[group] {
		choices = append(choices, choice)
	}
	sort.Strings(choices)
	return choices
}

// Has reports whether the named group is registered.
func (r *Registry) Has(group string) bool {
	_, ok := r.groups[group]
	return ok
}

// Document returns the document path registered for a group choice. A
// selector naming an unregistered group or choice fails with UnknownGroup.
func (r *Registry) Document(group, choice string) (string, error) {
	choices, ok := r.groups[group]
	if !ok {
		return "", conferr.New(conferr.UnknownGroup, confpath.Root(group),
			"no override group named %q is registered (known groups: %s)",
			group, strings.Join(r.Groups(), ", "))
	}
	path, ok := choices[choice]
	if !ok {
		return "", conferr.New(conferr.UnknownGroup, confpath.Root(group),
			"group %q has no choice named %q (known choices: %s)",
			group, choice, strings.Join(r.Choices(group), ", "))
	}
	return path, nil
}
