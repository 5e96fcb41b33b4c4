// Package monitor provides watch mode: it re-parses the given bill
// exports whenever one of them changes and re-renders the report.
//
// Each refresh is a full batch run of the same pipeline the report
// command uses; files are parsed sequentially into a fresh bill.
package monitor

import (
	"context"
	"io"
	"time"

	"github.com/0xmhha/billscan/pkg/directory"
	"github.com/0xmhha/billscan/pkg/report"
)

// Config holds the configuration for the live monitor.
type Config struct {
	// Paths are the bill exports to watch and re-render.
	Paths []string

	// Directory resolves counterpart numbers to names in the rendered
	// report. May be empty.
	Directory directory.Directory

	// Format selects the report format for each refresh.
	Format report.Format

	// RefreshInterval is the minimum time between re-renders; changes
	// arriving faster are folded into the next refresh. Default: 1s.
	RefreshInterval time.Duration

	// ClearScreen clears the terminal before each refresh. Only
	// honored when the output is a terminal.
	ClearScreen bool

	// Out receives the rendered report. Default: os.Stdout.
	Out io.Writer
}

// LiveMonitor re-renders the usage report as exports change.
type LiveMonitor interface {
	// Run renders once immediately, then blocks re-rendering on every
	// change until the context is cancelled.
	Run(ctx context.Context) error
}
