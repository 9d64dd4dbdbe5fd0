package questions

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"
)

// LoggingSource is a decorator that logs every fetch with its latency.
type LoggingSource struct {
	inner  Source
	name   string
	logger hclog.Logger
}

// WithLogging wraps a Source with fetch logging. name identifies the
// source in log lines, e.g. a URL or file path.
func WithLogging(src Source, name string, logger hclog.Logger) Source {
	return &LoggingSource{inner: src, name: name, logger: logger}
}

func (l *LoggingSource) Fetch(ctx context.Context) ([]Question, error) {
	start := time.Now()
	qs, err := l.inner.Fetch(ctx)
	latency := time.Since(start)

	if err != nil {
		l.logger.Warn("fetch questions failed", "source", l.name, "latency", latency, "error", err)
		return nil, err
	}
	l.logger.Debug("fetched questions", "source", l.name, "count", len(qs), "latency", latency)
	return qs, nil
}
