package app

import (
	"errors"
	"fmt"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// ConfigPath points at the corpus configuration file. The file may
	// be absent, in which case only model-builder tasks are created.
	ConfigPath string

	// Language overrides the corpus language from the config file.
	Language string

	// List selects what to print: "targets", "annotations" or "" for a
	// summary only.
	List string

	// StrictOrder fails the build on unresolved output collisions
	// instead of warning.
	StrictOrder bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	switch cfg.List {
	case "", "targets", "annotations":
	default:
		return nil, fmt.Errorf("invalid list selection %q: must be 'targets' or 'annotations'", cfg.List)
	}
	return &cfg, nil
}
