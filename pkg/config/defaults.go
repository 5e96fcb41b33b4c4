package config

import (
	"os"
	"path/filepath"
)

// defaultBillDirs returns the default directories scanned for bill
// exports.
//
// Searches in order:
// 1. ~/bills
// 2. ~/Documents/bills
//
// Returns all directories that exist, falling back to the current
// directory when none do.
func defaultBillDirs() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return []string{"."}
	}

	candidates := []string{
		filepath.Join(homeDir, "bills"),
		filepath.Join(homeDir, "Documents", "bills"),
	}

	var dirs []string
	for _, dir := range candidates {
		if _, err := os.Stat(dir); err == nil {
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) == 0 {
		return []string{"."}
	}

	return dirs
}

// defaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/billscan/config.yaml.
func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./billscan.yaml"
	}

	return filepath.Join(homeDir, ".config", "billscan", "config.yaml")
}
