// Package watcher provides file system monitoring for bill exports.
//
// It uses fsnotify to watch the export files passed to watch mode and
// debounces rapid successive writes (editors and downloads often touch
// a file several times in a burst) into a single event.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 100 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	if err := w.Start(ctx, []string{"march.csv"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range w.Events() {
//	    fmt.Printf("%s: %s\n", event.Path, event.Op)
//	}
package watcher

import (
	"context"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File created
	OpWrite                 // File modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved
)

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Event represents a file system event on a watched export.
type Event struct {
	// Path is the path to the file that triggered the event.
	Path string

	// Op is the operation that triggered the event.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher provides file system monitoring.
type Watcher interface {
	// Start begins watching the specified files and their parent
	// directories (so that replace-by-rename writes are seen).
	//
	// Events are delivered asynchronously until the context is
	// cancelled or the watcher is closed.
	Start(ctx context.Context, paths []string) error

	// Events returns the channel for receiving debounced events.
	// The channel is closed when the watcher closes.
	Events() <-chan Event

	// Errors returns the channel for receiving non-fatal watch errors.
	Errors() <-chan error

	// Close shuts down the watcher and releases resources.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval is the time to wait before emitting an event.
	// Multiple events for the same file within this interval are
	// coalesced. Default: 100ms.
	DebounceInterval time.Duration
}
