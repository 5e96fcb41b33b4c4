// Package directory loads the optional number-to-name lookup table used
// when rendering reports.
//
// The table is a plain text file, one entry per line: the first
// whitespace-separated token is a phone number, the remaining tokens
// joined with single spaces are the display name. Lines with fewer than
// two tokens are skipped.
package directory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Placeholder is rendered for numbers with no directory entry.
const Placeholder = "-"

// Directory maps phone numbers to display names. It is loaded once and
// never mutated afterwards.
type Directory map[string]string

// Load reads a directory file from disk. An empty path yields an empty
// (but usable) Directory.
func Load(path string) (Directory, error) {
	d := Directory{}
	if path == "" {
		return d, nil
	}

	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open directory file: %w", err)
	}
	defer f.Close()

	if err := d.read(f); err != nil {
		return nil, fmt.Errorf("failed to read directory file %s: %w", path, err)
	}

	return d, nil
}

// Read parses directory entries from an open stream into a new
// Directory.
func Read(r io.Reader) (Directory, error) {
	d := Directory{}
	if err := d.read(r); err != nil {
		return nil, err
	}
	return d, nil
}

func (d Directory) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) < 2 {
			continue
		}
		d[tokens[0]] = strings.Join(tokens[1:], " ")
	}
	return scanner.Err()
}

// Name returns the display name for a number, or Placeholder when the
// number has no entry.
func (d Directory) Name(number string) string {
	if name, ok := d[number]; ok {
		return name
	}
	return Placeholder
}

// Numbers returns all known numbers sorted ascending (lexicographic
// string order, matching the report's directory section).
func (d Directory) Numbers() []string {
	numbers := make([]string, 0, len(d))
	for number := range d {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)
	return numbers
}
