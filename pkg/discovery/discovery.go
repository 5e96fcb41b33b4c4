// Package discovery locates carrier bill exports (CSV files) under the
// configured bill directories.
//
// Example usage:
//
//	d := discovery.New([]string{"~/bills"}, logger.Default())
//	exports, err := d.Discover()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, exp := range exports {
//	    fmt.Printf("%s (%d bytes)\n", exp.Path, exp.Size)
//	}
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Logger defines the logging interface used by the discovery package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// BillFile represents a discovered bill export.
type BillFile struct {
	// Path is the absolute path to the CSV file.
	Path string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the last modification time.
	ModTime time.Time
}

// Discoverer finds bill exports under configured directories.
type Discoverer interface {
	// Discover scans all configured directories and returns every
	// .csv file found, sorted by path. Directories that do not exist
	// are skipped with a warning.
	Discover() ([]BillFile, error)

	// DiscoverDir returns the bill exports under a single directory.
	DiscoverDir(dir string) ([]BillFile, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	baseDirs []string
	logger   Logger
}

// New creates a new Discoverer instance.
func New(baseDirs []string, log Logger) Discoverer {
	return &discoverer{
		baseDirs: baseDirs,
		logger:   log,
	}
}

// Discover implements Discoverer.Discover.
func (d *discoverer) Discover() ([]BillFile, error) {
	var all []BillFile

	for _, baseDir := range d.baseDirs {
		expanded := expandHome(baseDir)

		if _, err := os.Stat(expanded); err != nil {
			if os.IsNotExist(err) {
				d.logger.Warn("directory not found, skipping", "path", expanded)
				continue
			}
			return nil, fmt.Errorf("failed to stat directory %s: %w", expanded, err)
		}

		files, err := d.DiscoverDir(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", expanded, err)
		}

		all = append(all, files...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Path < all[j].Path
	})

	d.logger.Info("discovery complete", "total_exports", len(all))
	return all, nil
}

// DiscoverDir implements Discoverer.DiscoverDir.
func (d *discoverer) DiscoverDir(dir string) ([]BillFile, error) {
	expanded := expandHome(dir)
	if _, err := os.Stat(expanded); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrDirNotFound, expanded)
	}

	files := make([]BillFile, 0, 10)

	err := filepath.WalkDir(expanded, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			d.logger.Warn("error walking path", "path", path, "error", err)
			return nil // skip but continue walking
		}

		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			d.logger.Warn("failed to stat export", "path", path, "error", infoErr)
			return nil
		}

		files = append(files, BillFile{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return files, nil
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
