package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/vmaxlab/expconf/internal/ctxlog"
	"github.com/vmaxlab/expconf/internal/registry"
	"github.com/vmaxlab/expconf/internal/resolver"
	"github.com/vmaxlab/expconf/internal/runconfig"
	"github.com/vmaxlab/expconf/internal/schema"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logW   io.Writer
	logger *slog.Logger
	config *Config
	clock  func() time.Time

	// Populated by Run.
	resolved *runconfig.Config
	runDir   string
}

// Option customizes an App instance. Used by tests to inject a fixed clock
// or a dedicated log sink.
type Option func(*App)

// WithClock replaces the wall clock used for run-name derivation.
func WithClock(clock func() time.Time) Option {
	return func(a *App) { a.clock = clock }
}

// WithLogWriter routes log output away from the primary output writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, config *Config, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logW:   outW,
		config: config,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(config.LogLevel, config.LogFormat, a.logW)
	a.logger.Debug("Logger configured successfully.")
	return a
}

// Config returns the typed resolved configuration. It is nil until Run has
// completed successfully.
func (a *App) Config() *runconfig.Config {
	return a.resolved
}

// RunDir returns the derived run output directory. Empty until Run has
// completed successfully.
func (a *App) RunDir() string {
	return a.runDir
}

// Run executes the full resolve pipeline: discover the override groups, load
// and merge the documents, resolve interpolations, validate against the
// experiment schema, decode the typed view, derive the run directory, write
// the reproducibility snapshot, and print the resolved hyperparameters.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	groups, err := registry.Discover(ctx, a.config.ConfDir)
	if err != nil {
		return err
	}
	a.logger.Debug("Override groups registered.", "count", len(groups.Groups()), "groups", groups.Groups())

	res := &resolver.Resolver{
		Registry:  groups,
		OpenRoots: schema.OpenRoots,
	}
	resolved, err := res.Load(ctx, a.config.BasePath, a.config.Selectors, a.config.Overrides)
	if err != nil {
		return err
	}

	if err := schema.Validate(resolved.Value); err != nil {
		return err
	}
	a.logger.Debug("Schema validation passed.")

	cfg, err := runconfig.Decode(resolved.Value)
	if err != nil {
		return err
	}
	a.resolved = cfg
	a.runDir = cfg.OutputDir(a.clock())

	a.logger.Info("Configuration resolved.",
		"algorithm", cfg.AlgorithmName,
		"observation_type", cfg.ObservationType,
		"reward_type", cfg.RewardType,
		"encoder", cfg.EncoderType,
		"run_dir", a.runDir,
	)

	printConfig(a.outW, resolved.Value)

	if a.config.PrintOnly {
		a.logger.Debug("Print-only mode, skipping snapshot.")
		return nil
	}

	target := filepath.Join(a.config.OutRoot, a.runDir)
	snapshot, err := cfg.WriteSnapshot(target)
	if err != nil {
		return err
	}
	a.logger.Info("Resolved snapshot written.", "path", snapshot)

	a.logger.Debug("App.Run method finished.")
	return nil
}
