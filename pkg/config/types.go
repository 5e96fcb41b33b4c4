// Package config provides configuration management for billscan.
//
// Configuration is loaded with the following precedence:
// 1. Environment variables
// 2. Configuration file
// 3. Default values
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Bill dirs: %v\n", cfg.BillDirs)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - BillDirs must have at least one directory
// - Report.Format must be a known format
// - Monitoring durations must be > 0
// - Logging.Level and Logging.Format must be recognized.
type Config struct {
	// Directories scanned for bill CSV exports by the list command
	BillDirs []string `yaml:"bill_dirs"`

	// Default number-to-name lookup file (overridable per invocation)
	DirectoryFile string `yaml:"directory_file"`

	// Report settings
	Report ReportConfig `yaml:"report"`

	// Watch-mode settings
	Monitoring MonitoringConfig `yaml:"monitoring"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig contains report rendering settings.
type ReportConfig struct {
	// Default output format (text, json)
	Format string `yaml:"format"`

	// Compact disables JSON indentation
	Compact bool `yaml:"compact"`
}

// MonitoringConfig contains watch-mode settings.
type MonitoringConfig struct {
	// Coalescing window for file-change events
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Minimum time between re-renders
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: this method is read-only and thread-safe.
func (c *Config) Validate() error {
	if len(c.BillDirs) == 0 {
		return ErrNoBillDirs
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Report.Format] {
		return ErrInvalidReportFormat
	}

	if c.Monitoring.DebounceInterval <= 0 {
		return ErrInvalidDebounceInterval
	}
	if c.Monitoring.RefreshInterval <= 0 {
		return ErrInvalidRefreshInterval
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		BillDirs: defaultBillDirs(),
		Report: ReportConfig{
			Format: "text",
		},
		Monitoring: MonitoringConfig{
			DebounceInterval: 100 * time.Millisecond,
			RefreshInterval:  time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
