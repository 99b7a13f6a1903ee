package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// ForCommand returns the logger a subcommand runs with. At debug level
// records are prefixed with the command name so interleaved output from
// watch re-runs stays attributable.
func ForCommand(name string) *log.Logger {
	logger := Default()
	if logger.GetLevel() > log.DebugLevel || name == "" {
		return logger
	}
	return logger.WithPrefix(name)
}
