// Package logging builds the stderr logger and carries it on a context.
// Stdout is reserved for the JSON result.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// DefaultLevel keeps a plain CLI run quiet.
const DefaultLevel = "warn"

type contextKey struct{}

// New returns a logger writing to w at the named level.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "spendcsv",
	}), nil
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger on ctx, or a stderr logger at DefaultLevel.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*log.Logger); ok {
		return logger
	}
	logger, _ := New(os.Stderr, DefaultLevel)
	return logger
}
