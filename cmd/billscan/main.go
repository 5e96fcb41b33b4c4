// Package main provides the billscan CLI application.
//
// billscan parses carrier billing CSV exports into per-subscriber
// call/text histories and renders a per-counterpart usage report, with
// an optional number-to-name directory for readable output.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Parse()

	if *showVersion {
		fmt.Printf("billscan %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "report":
		return runReportCommand(*configPath, args[1:])
	case "list":
		return runListCommand(*configPath)
	case "watch":
		return runWatchCommand(*configPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runReportCommand runs the report command.
func runReportCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	directoryFile := fs.String("directory", "", "path to number-to-name lookup file")
	format := fs.String("format", "", "output format (text, json)")
	compact := fs.Bool("compact", false, "compact JSON output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &reportCommand{
		files:         fs.Args(),
		directoryFile: *directoryFile,
		format:        *format,
		compact:       *compact,
		configPath:    configPath,
	}

	return cmd.Execute()
}

// runListCommand runs the list command.
func runListCommand(configPath string) error {
	cmd := &listCommand{
		configPath: configPath,
	}
	return cmd.Execute()
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	directoryFile := fs.String("directory", "", "path to number-to-name lookup file")
	format := fs.String("format", "", "output format (text, json)")
	refresh := fs.Duration("refresh", time.Second, "minimum interval between refreshes")
	history := fs.Bool("history", false, "keep history of refreshes (append mode)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &watchCommand{
		files:         fs.Args(),
		directoryFile: *directoryFile,
		format:        *format,
		refresh:       *refresh,
		clearScreen:   !*history, // clear screen unless history mode
		configPath:    configPath,
	}

	return cmd.Execute()
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath string, args []string) error {
	cmd := &configCommand{
		configPath: configPath,
	}
	return cmd.Execute(args)
}

// showUsage displays usage information.
func showUsage() error {
	usage := `billscan - carrier bill usage analyzer

Usage:
  billscan [flags] <command> [command flags] [files...]

Commands:
  report      Parse bill exports and print the usage report
  list        List bill exports found in configured directories
  watch       Re-render the report whenever an export changes
  config      Configuration management (show, path, reset)
  help        Show this help message

Global Flags:
  -config     Path to configuration file
  -version    Show version information

Report Command Flags:
  -directory  Path to number-to-name lookup file
  -format     Output format (text, json)
  -compact    Compact JSON output

Watch Command Flags:
  -directory  Path to number-to-name lookup file
  -format     Output format (text, json)
  -refresh    Minimum interval between refreshes (default: 1s)
  -history    Keep history of refreshes (append mode, default: false)

Examples:
  # Report over one export
  billscan report march.csv

  # Combine several exports into one report
  billscan report jan.csv feb.csv mar.csv

  # Resolve counterpart numbers through a lookup file
  billscan report -directory family.dir march.csv

  # JSON output
  billscan report -format json march.csv

  # List exports under the configured bill directories
  billscan list

  # Live re-render while an export keeps downloading
  billscan watch -directory family.dir march.csv

  # Configuration management
  billscan config show
  billscan config path
  billscan config reset

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
