package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader provides methods for loading configuration from various sources.
type Loader interface {
	// Load loads configuration with the following precedence:
	// 1. Environment variables
	// 2. Configuration file
	// 3. Default values
	//
	// Returns the merged configuration or an error if validation fails.
	Load() (*Config, error)

	// LoadFromFile loads configuration from a specific file.
	LoadFromFile(path string) (*Config, error)
}

// loader implements the Loader interface.
type loader struct {
	configPath string
}

// NewLoader creates a new configuration loader.
//
// If configPath is empty, searches for a config file in:
// 1. ./billscan.yaml (current directory)
// 2. ~/.config/billscan/config.yaml.
func NewLoader(configPath string) Loader {
	return &loader{
		configPath: configPath,
	}
}

// Load is shorthand for NewLoader("").Load().
func Load() (*Config, error) {
	return NewLoader("").Load()
}

// Load implements Loader.Load.
func (l *loader) Load() (*Config, error) {
	cfg := Default()

	configPath := l.configPath
	if configPath == "" {
		configPath = l.findConfigFile()
	}

	if configPath != "" {
		fileCfg, err := l.LoadFromFile(configPath)
		if err != nil {
			// An explicitly named file must load; a discovered one may
			// fall back to defaults.
			if l.configPath != "" {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		} else {
			cfg = l.mergeConfigs(cfg, fileCfg)
		}
	}

	cfg = l.applyEnvVars(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadFromFile implements Loader.LoadFromFile.
func (l *loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	return &cfg, nil
}

// findConfigFile searches for a config file in standard locations.
//
// Returns empty string if no config file is found.
func (l *loader) findConfigFile() string {
	candidates := []string{
		"./billscan.yaml",
		defaultConfigPath(),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// mergeConfigs merges file configuration into default configuration.
//
// File values override defaults, but only if they are non-zero.
func (l *loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if len(override.BillDirs) > 0 {
		result.BillDirs = override.BillDirs
	}
	if override.DirectoryFile != "" {
		result.DirectoryFile = override.DirectoryFile
	}

	if override.Report.Format != "" {
		result.Report.Format = override.Report.Format
	}
	// Compact is a bool, so the override value always wins.
	result.Report.Compact = override.Report.Compact

	if override.Monitoring.DebounceInterval > 0 {
		result.Monitoring.DebounceInterval = override.Monitoring.DebounceInterval
	}
	if override.Monitoring.RefreshInterval > 0 {
		result.Monitoring.RefreshInterval = override.Monitoring.RefreshInterval
	}

	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Output != "" {
		result.Logging.Output = override.Logging.Output
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}

	return &result
}

// applyEnvVars applies environment variable overrides.
//
// Supported environment variables:
//   - BILLSCAN_BILL_DIRS: Comma-separated list of bill directories
//   - BILLSCAN_DIRECTORY_FILE: Path to the number-to-name lookup file
//   - BILLSCAN_LOG_LEVEL: Log level
func (l *loader) applyEnvVars(cfg *Config) *Config {
	result := *cfg

	if envDirs := os.Getenv("BILLSCAN_BILL_DIRS"); envDirs != "" {
		dirs := strings.Split(envDirs, ",")
		for i := range dirs {
			dirs[i] = strings.TrimSpace(dirs[i])
		}
		result.BillDirs = dirs
	}

	if envFile := os.Getenv("BILLSCAN_DIRECTORY_FILE"); envFile != "" {
		result.DirectoryFile = envFile
	}

	if envLevel := os.Getenv("BILLSCAN_LOG_LEVEL"); envLevel != "" {
		result.Logging.Level = envLevel
	}

	return &result
}
