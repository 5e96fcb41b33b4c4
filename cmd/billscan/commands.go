package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xmhha/billscan/pkg/aggregator"
	"github.com/0xmhha/billscan/pkg/bill"
	"github.com/0xmhha/billscan/pkg/config"
	"github.com/0xmhha/billscan/pkg/directory"
	"github.com/0xmhha/billscan/pkg/discovery"
	"github.com/0xmhha/billscan/pkg/logger"
	"github.com/0xmhha/billscan/pkg/monitor"
	"github.com/0xmhha/billscan/pkg/parser"
	"github.com/0xmhha/billscan/pkg/report"
	"github.com/0xmhha/billscan/pkg/watcher"
)

// reportCommand parses exports and prints the usage report.
type reportCommand struct {
	files         []string
	directoryFile string
	format        string
	compact       bool
	configPath    string
}

// Execute runs the report command.
func (c *reportCommand) Execute() error {
	if len(c.files) == 0 {
		return fmt.Errorf("no export files given (try: billscan report march.csv)")
	}

	cfg, log, err := initialize(c.configPath)
	if err != nil {
		return err
	}

	dir, err := loadDirectory(c.directoryFile, cfg)
	if err != nil {
		return err
	}

	// One parser for all files: subscribers and section state continue
	// across multi-part exports.
	b := bill.New()
	p := parser.New(log)
	for _, path := range c.files {
		if err := p.ParseFile(path, b); err != nil {
			return err
		}
		log.Debug("parsed export", "path", path, "subscribers", b.Len())
	}

	usage := aggregator.New(aggregator.Config{}).Aggregate(b)

	formatter, err := report.New(report.Config{
		Format:  resolveFormat(c.format, cfg),
		Compact: c.compact,
	})
	if err != nil {
		return err
	}

	return formatter.FormatReport(os.Stdout, usage, dir)
}

// listCommand lists bill exports under the configured directories.
type listCommand struct {
	configPath string
}

// Execute runs the list command.
func (c *listCommand) Execute() error {
	cfg, log, err := initialize(c.configPath)
	if err != nil {
		return err
	}

	disc := discovery.New(cfg.BillDirs, log)
	exports, err := disc.Discover()
	if err != nil {
		return fmt.Errorf("failed to discover exports: %w", err)
	}

	if len(exports) == 0 {
		fmt.Println("No bill exports found")
		return nil
	}

	fmt.Printf("%-60s %10s  %s\n", "PATH", "SIZE", "MODIFIED")
	for _, exp := range exports {
		fmt.Printf("%-60s %10d  %s\n",
			exp.Path, exp.Size, exp.ModTime.Format("2006-01-02 15:04"))
	}

	return nil
}

// watchCommand re-renders the report whenever an export changes.
type watchCommand struct {
	files         []string
	directoryFile string
	format        string
	refresh       time.Duration
	clearScreen   bool
	configPath    string
}

// Execute runs the watch command.
func (c *watchCommand) Execute() error {
	if len(c.files) == 0 {
		return fmt.Errorf("no export files given (try: billscan watch march.csv)")
	}

	cfg, log, err := initialize(c.configPath)
	if err != nil {
		return err
	}

	dir, err := loadDirectory(c.directoryFile, cfg)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.Config{
		DebounceInterval: cfg.Monitoring.DebounceInterval,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			log.Error("failed to close watcher", "error", closeErr)
		}
	}()

	refresh := c.refresh
	if refresh <= 0 {
		refresh = cfg.Monitoring.RefreshInterval
	}

	m, err := monitor.New(monitor.Config{
		Paths:           c.files,
		Directory:       dir,
		Format:          resolveFormat(c.format, cfg),
		RefreshInterval: refresh,
		ClearScreen:     c.clearScreen,
	}, w, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return m.Run(ctx)
}

// initialize loads configuration and builds the logger.
func initialize(configPath string) (*config.Config, logger.Logger, error) {
	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	return cfg, log, nil
}

// loadDirectory loads the number-to-name lookup, preferring the flag
// over the configured default. No file at all yields an empty lookup.
func loadDirectory(flagPath string, cfg *config.Config) (directory.Directory, error) {
	path := flagPath
	if path == "" {
		path = cfg.DirectoryFile
	}

	dir, err := directory.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}

	return dir, nil
}

// resolveFormat picks the report format from the flag or configuration.
func resolveFormat(flagFormat string, cfg *config.Config) report.Format {
	if flagFormat != "" {
		return report.Format(flagFormat)
	}
	return report.Format(cfg.Report.Format)
}
