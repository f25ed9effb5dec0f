package logicaltypes

import (
	"errors"
	"log/slog"
)

// Config contains configuration for a Registry.
type Config struct {
	// Logger for registry events.
	// OPTIONAL: If nil, a text logger on stderr is created.
	// Note: If LogLevel is specified and Logger is nil, the created logger uses that level.
	Logger *slog.Logger

	// LogLevel sets the logging level of the created logger.
	// OPTIONAL: If nil, uses Info level.
	// If Logger is also provided, LogLevel is ignored (use pre-configured logger).
	LogLevel *slog.Level

	// StrictTags rejects Avro logical type names ("decimal",
	// "local-timestamp-millis", ...) and accepts only canonical tags.
	// OPTIONAL: Defaults to false.
	StrictTags bool

	// MaxEntries bounds the number of cached bound descriptors.
	// OPTIONAL: If 0, the cache is unbounded. Lookups beyond the bound
	// still succeed but are not cached.
	MaxEntries int
}

// Standard errors returned by the logicaltypes package.
var (
	// ErrInvalidConfig indicates Config validation failed.
	ErrInvalidConfig = errors.New("invalid registry config")
)

func validateConfig(config Config) error {
	if config.MaxEntries < 0 {
		return errors.New("MaxEntries must not be negative")
	}
	return nil
}
