package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/split-horizon/internal/runner"
)

// newLogger builds a logger writing to w at --log-level, or at fallback when
// the flag is unset.
func newLogger(w io.Writer, prefix string, fallback log.Level) (*log.Logger, error) {
	level := fallback
	if flagLogLevel != "" {
		parsed, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid --log-level: %w", err)
		}
		level = parsed
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	runner.SetLogger(logger)
	return logger, nil
}

// fileLogger logs to ~/.horizon/horizon.log, since the TUI owns the terminal.
// The returned closer is never nil.
func fileLogger() (*log.Logger, io.Closer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".horizon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "horizon.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "horizon", log.WarnLevel)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}
