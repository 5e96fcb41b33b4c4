package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoBillDirs is returned when no bill directories are specified.
	ErrNoBillDirs = errors.New("no bill directories specified")

	// ErrInvalidReportFormat is returned when the report format is not recognized.
	ErrInvalidReportFormat = errors.New("invalid report format: must be text or json")

	// ErrInvalidDebounceInterval is returned when the debounce interval is <= 0.
	ErrInvalidDebounceInterval = errors.New("invalid debounce interval: must be > 0")

	// ErrInvalidRefreshInterval is returned when the refresh interval is <= 0.
	ErrInvalidRefreshInterval = errors.New("invalid refresh interval: must be > 0")

	// ErrInvalidLogLevel is returned when the log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when the log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when the config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when the config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
