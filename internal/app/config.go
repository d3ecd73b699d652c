package app

import (
	"errors"

	"github.com/vmaxlab/expconf/internal/resolver"
)

// Config holds everything an App instance needs to run one resolution.
type Config struct {
	BasePath string // base configuration document
	ConfDir  string // root directory holding the override groups

	Selectors []resolver.GroupSelector
	Overrides []resolver.Override

	OutRoot   string // root directory for run outputs
	PrintOnly bool   // resolve and print without writing the snapshot

	LogFormat string
	LogLevel  string
}

// NewConfig validates the required fields of an app configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("BasePath is a required configuration field and cannot be empty")
	}
	if cfg.ConfDir == "" {
		return nil, errors.New("ConfDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
