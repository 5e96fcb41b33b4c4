package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xmhha/billscan/pkg/aggregator"
	"github.com/0xmhha/billscan/pkg/directory"
)

// timeLayout renders the timespan bounds in the summary line.
const timeLayout = "2006-01-02 15:04:05"

// Column header lines and the block separator, reproduced verbatim.
const (
	headerColumns1 = "                          :    Calls     |    Texts    |  Text Sessions"
	headerColumns2 = "                          : From     To  | From    To  |   In   Out"
)

var separator = strings.Repeat("-", 80)

// textFormatter renders the fixed-layout text report.
type textFormatter struct {
	config Config
}

// FormatReport implements Formatter.FormatReport.
func (f *textFormatter) FormatReport(w io.Writer, usage *aggregator.Usage, dir directory.Directory) error {
	for _, line := range Lines(usage, dir) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Lines produces the report as an ordered sequence of lines, for
// line-by-line emission.
func Lines(usage *aggregator.Usage, dir directory.Directory) []string {
	var lines []string

	lines = append(lines, directoryLines(dir)...)
	lines = append(lines, "")
	lines = append(lines, "Summary By User:")
	lines = append(lines, fmt.Sprintf("Starting %s, Ending %s",
		usage.Earliest.Format(timeLayout), usage.Latest.Format(timeLayout)))
	lines = append(lines, "")

	for _, sub := range usage.Subscribers {
		lines = append(lines, subscriberLines(sub, dir)...)
	}

	return lines
}

// directoryLines renders the directory section, one entry per line
// sorted ascending by number.
func directoryLines(dir directory.Directory) []string {
	lines := make([]string, 0, len(dir)+1)
	lines = append(lines, "Directory:")
	for _, number := range dir.Numbers() {
		lines = append(lines, fmt.Sprintf("%12s %s", number, dir[number]))
	}
	return lines
}

// subscriberLines renders one subscriber block: totals, column headers,
// a row per counterpart, and the closing rule.
func subscriberLines(sub *aggregator.SubscriberUsage, dir directory.Directory) []string {
	lines := make([]string, 0, len(sub.Counterparts)+6)

	lines = append(lines, fmt.Sprintf("Name: %s, Number: %s", sub.Name, sub.Number))
	lines = append(lines, fmt.Sprintf("Calls In: %s, Out:%s",
		strconv.Itoa(sub.CallsIn), strconv.Itoa(sub.CallsOut)))
	lines = append(lines, fmt.Sprintf("Texts In: %s, Out:%s",
		strconv.Itoa(sub.TextsIn), strconv.Itoa(sub.TextsOut)))
	lines = append(lines, headerColumns1, headerColumns2)

	for _, cp := range sub.Counterparts {
		lines = append(lines, fmt.Sprintf("%13s %11s :  %4s  %4s  | %4s  %4s  | %4s  %4s",
			cp.Number, dir.Name(cp.Number),
			blankZero(cp.CallsFrom), blankZero(cp.CallsTo),
			blankZero(cp.TextsFrom), blankZero(cp.TextsTo),
			blankZero(cp.SessionsIn), blankZero(cp.SessionsOut)))
	}

	lines = append(lines, separator)
	return lines
}

// blankZero renders a counter, with zero shown as blank rather than "0".
func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
