package discovery

import "errors"

// Common errors returned by the discovery package.
var (
	// ErrDirNotFound is returned when an explicitly requested
	// directory does not exist.
	ErrDirNotFound = errors.New("bill directory not found")
)
