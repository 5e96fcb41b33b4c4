// Package report renders aggregated usage into the fixed-layout text
// report, or alternatively into JSON.
//
// The text layout is column-for-column compatible with the established
// report format: a directory section, a summary header with the
// report-wide timespan, and one block per subscriber with a row per
// counterpart number. Zero counters render blank, not "0".
package report

import (
	"errors"
	"io"

	"github.com/0xmhha/billscan/pkg/aggregator"
	"github.com/0xmhha/billscan/pkg/directory"
)

// Format represents an output format.
type Format string

const (
	// FormatText renders the fixed-layout text report.
	FormatText Format = "text"

	// FormatJSON renders the same content as JSON.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned when the configured format is not
// recognized.
var ErrUnknownFormat = errors.New("unknown report format")

// Formatter renders a computed usage report.
//
// Rendering is a pure function of its inputs; a Formatter may be reused
// across reports.
type Formatter interface {
	// FormatReport writes the full report for usage, resolving
	// counterpart names through dir.
	FormatReport(w io.Writer, usage *aggregator.Usage, dir directory.Directory) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format. Default: FormatText.
	Format Format

	// Compact disables JSON indentation. Ignored by the text format.
	Compact bool
}

// New creates a Formatter for the configured format.
func New(cfg Config) (Formatter, error) {
	switch cfg.Format {
	case FormatText, "":
		return &textFormatter{config: cfg}, nil
	case FormatJSON:
		return &jsonFormatter{config: cfg}, nil
	default:
		return nil, ErrUnknownFormat
	}
}
