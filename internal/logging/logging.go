// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/kompaksatyabuana/kompak/internal/config"
)

// Options controls logger construction.
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer // Default: os.Stderr
}

// New returns an hclog.Logger for opts.
func New(opts Options) (hclog.Logger, error) {
	lvl, err := config.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      lvl,
		JSONFormat: opts.JSON,
		Output:     out,
	}), nil
}

// FromConfig builds a logger from cfg. If cfg.File is set, output is
// appended to that file and the returned closer releases it; otherwise
// output goes to fallback and the closer is a no-op.
func FromConfig(name string, cfg config.LogConfig, fallback io.Writer) (hclog.Logger, io.Closer, error) {
	var (
		out    = fallback
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = io.Discard
	}

	logger, err := New(Options{Name: name, Level: cfg.Level, JSON: cfg.JSON, Output: out})
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
