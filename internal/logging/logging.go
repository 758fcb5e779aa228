// Package logging builds the charmbracelet/log logger shared by the
// server and the CLI.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the logger.
type Options struct {
	Level      string
	Format     string // text | json | logfmt
	Timestamps bool
	Prefix     string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Format:     "text",
		Timestamps: true,
		Prefix:     "tada",
	}
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	formatter, err := parseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      time.RFC3339,
		Prefix:          opts.Prefix,
	}), nil
}

// Discard returns a logger that drops everything. Tests use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

func parseFormatter(s string) (log.Formatter, error) {
	switch s {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("log format: unknown %q", s)
	}
}
