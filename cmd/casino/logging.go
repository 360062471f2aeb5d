package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/casino/internal/config"
)

// newLogger builds the CLI logger from config. Logs go to the configured
// file, or to fallback when none is set. The returned close func is never nil.
func newLogger(cfg *config.Config, fallback io.Writer) (*log.Logger, func() error, error) {
	out, closeFn := fallback, func() error { return nil }
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closeFn = f, f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           cfg.LogLevel(),
	})
	return logger, closeFn, nil
}

// loadConfig reads the config file and validates it after overrides.
func loadConfig(path string, override func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if override != nil {
		if err := override(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
