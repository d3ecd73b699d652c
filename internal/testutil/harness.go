package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/app"
	"github.com/vmaxlab/expconf/internal/resolver"
	"github.com/vmaxlab/expconf/internal/runconfig"
)

// FixedTime is the clock reading injected into every harness run, so derived
// run names are reproducible across test executions.
var FixedTime = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

// Options tune a harness run.
type Options struct {
	// Base is the base document path relative to the temporary root.
	// Defaults to "conf/config.hcl".
	Base string
	// Selectors are raw group=choice selector strings.
	Selectors []string
	// Overrides are raw dotted.path=value override strings.
	Overrides []string
	// WriteSnapshot switches off print-only mode so the run directory and
	// resolved.json are actually written under the temporary root.
	WriteSnapshot bool
}

// Result holds the outcomes of a harness run.
type Result struct {
	LogOutput string
	Printed   string
	Err       error
	App       *app.App
	// OutRoot is the temporary run-output root, for snapshot assertions.
	OutRoot string
}

// Config returns the typed resolved configuration, or nil on failure.
func (r *Result) Config() *runconfig.Config {
	if r.App == nil {
		return nil
	}
	return r.App.Config()
}

// Value returns the resolved configuration tree, or cty.NilVal on failure.
func (r *Result) Value() cty.Value {
	cfg := r.Config()
	if cfg == nil {
		return cty.NilVal
	}
	return cfg.Resolved()
}

// Run writes the given document fixtures into a temporary conf tree and
// executes the full resolve pipeline against them.
func Run(t *testing.T, files map[string]string, opts Options) *Result {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	base := opts.Base
	if base == "" {
		base = "conf/config.hcl"
	}

	var selectors []resolver.GroupSelector
	for _, raw := range opts.Selectors {
		selector, err := resolver.ParseSelector(raw)
		require.NoError(t, err)
		selectors = append(selectors, selector)
	}
	var overrides []resolver.Override
	for _, raw := range opts.Overrides {
		override, err := resolver.ParseOverride(raw)
		require.NoError(t, err)
		overrides = append(overrides, override)
	}

	outRoot := filepath.Join(tmpDir, "out")
	appConfig, err := app.NewConfig(app.Config{
		BasePath:  filepath.Join(tmpDir, base),
		ConfDir:   filepath.Join(tmpDir, "conf"),
		Selectors: selectors,
		Overrides: overrides,
		OutRoot:   outRoot,
		PrintOnly: !opts.WriteSnapshot,
		LogFormat: "text",
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}
	testApp := app.NewApp(outBuffer, appConfig,
		app.WithLogWriter(logBuffer),
		app.WithClock(func() time.Time { return FixedTime }),
	)

	runErr := testApp.Run(context.Background())

	return &Result{
		LogOutput: logBuffer.String(),
		Printed:   outBuffer.String(),
		Err:       runErr,
		App:       testApp,
		OutRoot:   outRoot,
	}
}
