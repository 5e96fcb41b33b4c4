package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/0xmhha/billscan/pkg/aggregator"
	"github.com/0xmhha/billscan/pkg/bill"
	"github.com/0xmhha/billscan/pkg/logger"
	"github.com/0xmhha/billscan/pkg/parser"
	"github.com/0xmhha/billscan/pkg/report"
	"github.com/0xmhha/billscan/pkg/watcher"
)

// clearSequence resets the terminal between refreshes.
const clearSequence = "\033[2J\033[H"

// liveMonitor implements the LiveMonitor interface.
type liveMonitor struct {
	config    Config
	logger    logger.Logger
	watcher   watcher.Watcher
	formatter report.Formatter
	agg       aggregator.Aggregator
}

// New creates a new live monitor.
func New(cfg Config, w watcher.Watcher, log logger.Logger) (LiveMonitor, error) {
	if len(cfg.Paths) == 0 {
		return nil, ErrNoExports
	}
	if cfg.RefreshInterval == 0 {
		cfg.RefreshInterval = time.Second
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	formatter, err := report.New(report.Config{Format: cfg.Format})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &liveMonitor{
		config:    cfg,
		logger:    log,
		watcher:   w,
		formatter: formatter,
		agg:       aggregator.New(aggregator.Config{}),
	}, nil
}

// Run implements LiveMonitor.Run.
func (m *liveMonitor) Run(ctx context.Context) error {
	if err := m.watcher.Start(ctx, m.config.Paths); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if err := m.refresh(); err != nil {
		return err
	}

	// Changes arriving before the refresh interval elapses are folded
	// into a single pending refresh.
	var pendingTimer *time.Timer
	var pendingC <-chan time.Time
	lastRefresh := time.Now()
	defer func() {
		if pendingTimer != nil {
			pendingTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-m.watcher.Events():
			if !ok {
				return nil
			}
			m.logger.Debug("export changed", "path", event.Path, "op", event.Op.String())

			if pendingC != nil {
				continue // refresh already scheduled
			}

			wait := m.config.RefreshInterval - time.Since(lastRefresh)
			if wait <= 0 {
				lastRefresh = time.Now()
				if err := m.refresh(); err != nil {
					m.logger.Error("refresh failed", "error", err)
				}
				continue
			}

			pendingTimer = time.NewTimer(wait)
			pendingC = pendingTimer.C

		case <-pendingC:
			pendingTimer = nil
			pendingC = nil
			lastRefresh = time.Now()
			if err := m.refresh(); err != nil {
				m.logger.Error("refresh failed", "error", err)
			}

		case err, ok := <-m.watcher.Errors():
			if !ok {
				return nil
			}
			m.logger.Warn("watch error", "error", err)
		}
	}
}

// refresh re-parses every export into a fresh bill and renders the
// report. A parse failure in any file skips the render and keeps the
// previous output on screen.
func (m *liveMonitor) refresh() error {
	b := bill.New()
	p := parser.New(m.logger)

	for _, path := range m.config.Paths {
		if err := p.ParseFile(path, b); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	usage := m.agg.Aggregate(b)

	if m.config.ClearScreen && isTerminal(m.config.Out) {
		fmt.Fprint(m.config.Out, clearSequence)
	}

	if err := m.formatter.FormatReport(m.config.Out, usage, m.config.Directory); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	m.writeStatus()
	return nil
}

// writeStatus appends a short refresh status line when writing to a
// terminal, trimmed to the terminal width.
func (m *liveMonitor) writeStatus() {
	f, ok := m.config.Out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}

	status := fmt.Sprintf("[billscan] watching %d export(s), refreshed %s",
		len(m.config.Paths), time.Now().Format("15:04:05"))

	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 && len(status) > width {
		status = status[:width]
	}

	fmt.Fprintln(m.config.Out, status)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
