package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xmhha/billscan/pkg/bill"
)

// Logger defines the logging interface used by the parser package.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Parser feeds carrier export rows into a Bill.
type Parser interface {
	// ParseFile reads one CSV export and merges its records into b.
	//
	// Parameters:
	//   - path: Path to the export file
	//   - b: Bill to populate; may already hold subscribers from
	//     earlier files, which continue to merge by name
	//
	// After all rows are consumed, every subscriber's histories are
	// re-sorted chronologically.
	//
	// A malformed date/time field in a detail row aborts the file with
	// a *ParseError; no partial-result recovery is attempted.
	ParseFile(path string, b *bill.Bill) error

	// ParseReader is ParseFile for an already-open CSV stream.
	ParseReader(r io.Reader, b *bill.Bill) error

	// ParseRow classifies a single row and applies its side effect to
	// b: append a record to the current subscriber, or update st.
	//
	// Classification is exhaustive; rows that match no known shape are
	// ignored without error.
	ParseRow(row Row, st *State, b *bill.Bill) error
}

// csvParser implements the Parser interface.
//
// Section state carries across ParseFile calls: carriers split long
// exports into multiple files, and a continuation file may open with
// detail rows that belong to the last section of the previous file.
// Use one Parser per Bill.
type csvParser struct {
	logger Logger
	state  State
}

// New creates a new Parser instance.
func New(log Logger) Parser {
	return &csvParser{
		logger: log,
		state: State{
			CurrentMode: ModeCall,
		},
	}
}

// ParseFile implements Parser.ParseFile.
func (p *csvParser) ParseFile(path string, b *bill.Bill) error {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			p.logger.Warn("failed to close export", "path", path, "error", closeErr)
		}
	}()

	if err := p.ParseReader(f, b); err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return err
	}

	return nil
}

// ParseReader implements Parser.ParseReader.
func (p *csvParser) ParseReader(r io.Reader, b *bill.Bill) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width varies by record kind
	reader.LazyQuotes = true    // exports carry stray quotes in free-text fields

	st := &p.state
	st.Line = 0
	st.Skipped = 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &ParseError{Line: st.Line + 1, Err: err}
		}

		st.Line++
		if rowErr := p.ParseRow(Row(record), st, b); rowErr != nil {
			return &ParseError{Line: st.Line, Err: rowErr}
		}
	}

	if st.Skipped > 0 {
		p.logger.Debug("dropped detail rows with no current subscriber",
			"count", st.Skipped)
	}

	// Histories arrive grouped by section, not by time; reporting
	// requires chronological order.
	b.SortHistories()

	return nil
}

// ParseRow implements Parser.ParseRow.
func (p *csvParser) ParseRow(row Row, st *State, b *bill.Bill) error {
	if row.IsEmpty() {
		return nil
	}

	switch row.Field(0) {
	case markerCallDetail:
		st.CurrentNumber = row.Field(1)
		st.CurrentMode = ModeCall
		return nil

	case markerDataDetail:
		st.CurrentNumber = row.Field(1)
		st.CurrentMode = ModeData
		return nil

	case markerUserName:
		name := row.Field(1)
		b.GetOrCreate(name, st.CurrentNumber)
		st.CurrentName = name
		return nil
	}

	if isInt(row.Field(fieldSeq)) {
		return p.convertDetail(row, st, b)
	}

	// Anything else (headers, totals, legends) carries no records.
	return nil
}

// convertDetail turns a detail row into a Call or Text on the current
// subscriber. Rows arriving before any "User Name:" row have no owner
// and are counted and dropped.
func (p *csvParser) convertDetail(row Row, st *State, b *bill.Bill) error {
	if st.CurrentName == "" {
		st.Skipped++
		p.logger.Debug("detail row before any subscriber", "row", st.Line)
		return nil
	}

	ts, err := ParseTimestamp(row.Field(fieldDate), row.Field(fieldTime))
	if err != nil {
		return fmt.Errorf("%w: %q %q", ErrBadTimestamp,
			row.Field(fieldDate), row.Field(fieldTime))
	}

	sub := b.Lookup(st.CurrentName)

	if st.CurrentMode == ModeData {
		sub.Texts = append(sub.Texts, bill.Text{
			Timestamp: ts,
			Incoming:  row.Field(fieldInOut) == incomingToken,
			Number:    row.Field(fieldNumber),
		})
		return nil
	}

	sub.Calls = append(sub.Calls, bill.Call{
		Timestamp: ts,
		Incoming:  strings.HasPrefix(row.Field(fieldPlace), incomingPrefix),
		Number:    row.Field(fieldNumber),
		Place:     row.Field(fieldPlace),
		Duration:  row.Field(fieldDuration),
	})
	return nil
}
