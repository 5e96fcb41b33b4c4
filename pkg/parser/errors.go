package parser

import (
	"errors"
	"strconv"
)

// Common errors returned by the parser package.
var (
	// ErrBadTimestamp is returned when a detail row's date/time fields
	// do not match the MM/DD/YYYY H:MMAM/PM pattern.
	ErrBadTimestamp = errors.New("malformed date/time fields")
)

// ParseError wraps a parse failure with its source location.
type ParseError struct {
	Path string // Source file path (empty for in-memory sources)
	Line int    // Row number where the failure occurred (1-indexed)
	Err  error  // Underlying error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return "parse error in " + e.Path + " at row " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
	}
	return "parse error at row " + strconv.Itoa(e.Line) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
