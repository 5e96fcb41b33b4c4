package monitor

import "errors"

// Common errors returned by the monitor package.
var (
	// ErrNoExports is returned when no export paths are configured.
	ErrNoExports = errors.New("no exports to monitor")

	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid monitor configuration")
)
