package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	TreePath string // hcl files

	LogFormat   string
	LogLevel    string
	WorkerCount int

	// ReportFormat is "json" or "yaml".
	ReportFormat string
	// Batch names the batch to evaluate. Empty means compile only.
	Batch       string
	ProgramBody bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.TreePath == "" {
		return nil, errors.New("TreePath is a required configuration field and cannot be empty")
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "json"
	}
	if cfg.ReportFormat != "json" && cfg.ReportFormat != "yaml" {
		return nil, fmt.Errorf("invalid report format %q: must be 'json' or 'yaml'", cfg.ReportFormat)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("invalid worker count %d: must be at least 1", cfg.WorkerCount)
	}
	return &cfg, nil
}
