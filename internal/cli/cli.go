package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vmaxlab/expconf/internal/app"
	"github.com/vmaxlab/expconf/internal/resolver"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("expconf", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
expconf - layered experiment-configuration resolver.

Usage:
  expconf [options] [GROUP=CHOICE ...]

Arguments:
  GROUP=CHOICE
    Override-group selectors, e.g. algorithm=sac network=wayformer.
    Each replaces the choice listed in the base document's defaults.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "conf/config.hcl", "Path to the base configuration document.")
	cFlag := flagSet.String("c", "", "Path to the base configuration document (shorthand).")
	confDirFlag := flagSet.String("conf-dir", "conf", "Root directory holding the override groups.")
	outRootFlag := flagSet.String("out-root", ".", "Root directory for run outputs.")
	printFlag := flagSet.Bool("print-config", false, "Resolve and print the configuration without writing a snapshot.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var setFlags stringList
	flagSet.Var(&setFlags, "set", "Ad-hoc override as dotted.path=value. Repeatable.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	basePath := *configFlag
	if *cFlag != "" {
		basePath = *cFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var selectors []resolver.GroupSelector
	for _, arg := range flagSet.Args() {
		selector, err := resolver.ParseSelector(arg)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		selectors = append(selectors, selector)
	}

	var overrides []resolver.Override
	for _, raw := range setFlags {
		override, err := resolver.ParseOverride(raw)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		overrides = append(overrides, override)
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		BasePath:  basePath,
		ConfDir:   *confDirFlag,
		Selectors: selectors,
		Overrides: overrides,
		OutRoot:   *outRootFlag,
		PrintOnly: *printFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
