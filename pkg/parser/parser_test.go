package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0xmhha/billscan/pkg/bill"
	"github.com/0xmhha/billscan/pkg/logger"
)

func newTestParser() *csvParser {
	return New(logger.Noop()).(*csvParser)
}

func TestParseRowSectionHeaders(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	if err := p.ParseRow(Row{"Call Detail", "508-235-6915"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CurrentNumber != "508-235-6915" {
		t.Errorf("CurrentNumber = %q, want 508-235-6915", st.CurrentNumber)
	}
	if st.CurrentMode != ModeCall {
		t.Errorf("CurrentMode = %q, want call", st.CurrentMode)
	}

	if err := p.ParseRow(Row{"Data Detail", "508-235-7829"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.CurrentNumber != "508-235-7829" {
		t.Errorf("CurrentNumber = %q, want 508-235-7829", st.CurrentNumber)
	}
	if st.CurrentMode != ModeData {
		t.Errorf("CurrentMode = %q, want data", st.CurrentMode)
	}
}

func TestParseRowUserName(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	// A section header followed by a user row binds the section's
	// number to the new subscriber.
	if err := p.ParseRow(Row{"Call Detail", "508-235-6915"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.ParseRow(Row{"User Name:", "JANE SMITH"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sub := b.Lookup("JANE SMITH")
	if sub == nil {
		t.Fatal("subscriber JANE SMITH not created")
	}
	if sub.Number != "508-235-6915" {
		t.Errorf("Number = %q, want 508-235-6915", sub.Number)
	}
	if st.CurrentName != "JANE SMITH" {
		t.Errorf("CurrentName = %q, want JANE SMITH", st.CurrentName)
	}

	// Reusing the name under a different section keeps the original
	// number.
	if err := p.ParseRow(Row{"Call Detail", "999-999-9999"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.ParseRow(Row{"User Name:", "JANE SMITH"}, st, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.Lookup("JANE SMITH").Number; got != "508-235-6915" {
		t.Errorf("Number after reuse = %q, want 508-235-6915", got)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestParseRowCallDetail(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	mustParseRows(t, p, st, b,
		Row{"Call Detail", "508-235-6915"},
		Row{"User Name:", "JANE SMITH"},
		Row{"1", "", "03/17/2010", "10:07PM", "508-235-7829", "VMAIL CL", "1"},
		Row{"2", "", "03/18/2010", "8:45AM", "508-748-9880", "INCOMING CL", "2"},
	)

	sub := b.Lookup("JANE SMITH")
	if len(sub.Calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(sub.Calls))
	}

	first := sub.Calls[0]
	if first.Incoming {
		t.Error("VMAIL CL call classified as incoming")
	}
	if first.Number != "508-235-7829" {
		t.Errorf("Number = %q, want 508-235-7829", first.Number)
	}
	if first.Place != "VMAIL CL" {
		t.Errorf("Place = %q, want VMAIL CL", first.Place)
	}
	if first.Duration != "1" {
		t.Errorf("Duration = %q, want 1", first.Duration)
	}
	if want := time.Date(2010, time.March, 17, 22, 7, 0, 0, time.UTC); !first.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", first.Timestamp, want)
	}

	if !sub.Calls[1].Incoming {
		t.Error("INCOMING CL call not classified as incoming")
	}
}

func TestParseRowDataDetail(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	mustParseRows(t, p, st, b,
		Row{"Data Detail", "508-235-6915"},
		Row{"User Name:", "JANE SMITH"},
		Row{"1", "", "03/18/2010", "8:13PM", "508-235-7829", "", "", "", "", "", "In"},
		Row{"2", "", "03/18/2010", "8:22PM", "508-235-7829", "", "", "", "", "", "Out"},
		// Short row: the in/out field is missing entirely.
		Row{"3", "", "03/18/2010", "8:28PM", "508-704-1151"},
	)

	sub := b.Lookup("JANE SMITH")
	if len(sub.Texts) != 3 {
		t.Fatalf("got %d texts, want 3", len(sub.Texts))
	}
	if !sub.Texts[0].Incoming {
		t.Error(`text with "In" marker not classified as incoming`)
	}
	if sub.Texts[1].Incoming {
		t.Error(`text with "Out" marker classified as incoming`)
	}
	if sub.Texts[2].Incoming {
		t.Error("short text row classified as incoming")
	}
	if sub.Texts[2].Number != "508-704-1151" {
		t.Errorf("Number = %q, want 508-704-1151", sub.Texts[2].Number)
	}
	if len(sub.Calls) != 0 {
		t.Errorf("data rows produced %d calls", len(sub.Calls))
	}
}

func TestParseRowIgnored(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	rows := []Row{
		{},
		{"", "", ""},
		{"  ", "\t"},
		{"Wireless Statement", "Page 1 of 12"},
		{"Monthly Charges"},
		{"Total", "$142.11"},
	}

	for _, row := range rows {
		if err := p.ParseRow(row, st, b); err != nil {
			t.Errorf("ParseRow(%v) error: %v", row, err)
		}
	}

	if b.Len() != 0 {
		t.Errorf("ignored rows created %d subscribers", b.Len())
	}
	if st.CurrentNumber != "" || st.CurrentName != "" {
		t.Errorf("ignored rows mutated state: %+v", st)
	}
}

func TestParseRowOrphanDetail(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	// Detail rows before any "User Name:" row have no owner: dropped,
	// counted, no error.
	err := p.ParseRow(Row{"1", "", "03/17/2010", "10:07PM", "508-235-7829", "VMAIL CL", "1"}, st, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", st.Skipped)
	}
	if b.Len() != 0 {
		t.Errorf("orphan row created %d subscribers", b.Len())
	}
}

func TestParseRowBadTimestamp(t *testing.T) {
	p := newTestParser()
	b := bill.New()
	st := &State{CurrentMode: ModeCall}

	mustParseRows(t, p, st, b,
		Row{"Call Detail", "508-235-6915"},
		Row{"User Name:", "JANE SMITH"},
	)

	err := p.ParseRow(Row{"1", "", "17-03-2010", "10:07PM", "508-235-7829", "VMAIL CL", "1"}, st, b)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !errors.Is(err, ErrBadTimestamp) {
		t.Errorf("error = %v, want ErrBadTimestamp", err)
	}
}

const sampleExport = `Wireless Statement,Page 1
Call Detail,508-235-6915
,,,,,,
User Name:,JANE SMITH
2,,03/18/2010,8:46AM,508-748-9880,SAN LUS O CA,2
1,,03/18/2010,8:45AM,508-235-7829,VMAIL CL,1
3,,03/18/2010,12:27PM,508-235-6915,INCOMING CL,1
Data Detail,508-235-6915
User Name:,JANE SMITH
1,,03/18/2010,8:13PM,508-235-7829,,,,,,In
2,,03/17/2010,1:01PM,508-235-7829,,,,,,Out
`

func TestParseReader(t *testing.T) {
	p := newTestParser()
	b := bill.New()

	if err := p.ParseReader(strings.NewReader(sampleExport), b); err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	sub := b.Lookup("JANE SMITH")
	if sub == nil {
		t.Fatal("subscriber JANE SMITH not created")
	}
	if sub.Number != "508-235-6915" {
		t.Errorf("Number = %q, want 508-235-6915", sub.Number)
	}
	if len(sub.Calls) != 3 {
		t.Fatalf("got %d calls, want 3", len(sub.Calls))
	}
	if len(sub.Texts) != 2 {
		t.Fatalf("got %d texts, want 2", len(sub.Texts))
	}

	// Histories are re-sorted chronologically after the parse.
	for i := 1; i < len(sub.Calls); i++ {
		if sub.Calls[i].Timestamp.Before(sub.Calls[i-1].Timestamp) {
			t.Errorf("calls out of order at %d: %v after %v",
				i, sub.Calls[i].Timestamp, sub.Calls[i-1].Timestamp)
		}
	}
	if !sub.Texts[0].Timestamp.Before(sub.Texts[1].Timestamp) {
		t.Errorf("texts out of order: %v, %v", sub.Texts[0].Timestamp, sub.Texts[1].Timestamp)
	}
}

func TestParseReaderFatalTimestamp(t *testing.T) {
	p := newTestParser()
	b := bill.New()

	input := strings.Join([]string{
		"Call Detail,508-235-6915",
		"User Name:,JANE SMITH",
		"1,,03/18/2010,8:45AM,508-235-7829,VMAIL CL,1",
		"2,,bogus,8:46AM,508-748-9880,SAN LUS O CA,2",
	}, "\n")

	err := p.ParseReader(strings.NewReader(input), b)
	if err == nil {
		t.Fatal("expected error for malformed detail row")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Line != 4 {
		t.Errorf("Line = %d, want 4", perr.Line)
	}
	if !errors.Is(err, ErrBadTimestamp) {
		t.Errorf("error = %v, want ErrBadTimestamp", err)
	}
}

func TestParseReaderStateCarriesAcrossSources(t *testing.T) {
	p := newTestParser()
	b := bill.New()

	first := "Call Detail,508-235-6915\nUser Name:,JANE SMITH\n" +
		"1,,03/18/2010,8:45AM,508-235-7829,VMAIL CL,1\n"
	// A continuation file that opens mid-section: its detail rows still
	// belong to the previous file's subscriber.
	second := "2,,03/18/2010,8:46AM,508-748-9880,SAN LUS O CA,2\n"

	if err := p.ParseReader(strings.NewReader(first), b); err != nil {
		t.Fatalf("first source: %v", err)
	}
	if err := p.ParseReader(strings.NewReader(second), b); err != nil {
		t.Fatalf("second source: %v", err)
	}

	sub := b.Lookup("JANE SMITH")
	if len(sub.Calls) != 2 {
		t.Errorf("got %d calls after both sources, want 2", len(sub.Calls))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "march.csv")
	if err := os.WriteFile(path, []byte(sampleExport), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	p := newTestParser()
	b := bill.New()

	if err := p.ParseFile(path, b); err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestParseFileNotFound(t *testing.T) {
	p := newTestParser()
	b := bill.New()

	if err := p.ParseFile(filepath.Join(t.TempDir(), "missing.csv"), b); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFileErrorNamesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.csv")
	content := "Call Detail,508-235-6915\nUser Name:,JANE SMITH\n1,,bogus,bogus,508-235-7829,VMAIL CL,1\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	p := newTestParser()
	err := p.ParseFile(path, bill.New())
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error message %q does not name the file", err.Error())
	}
}

func TestRowField(t *testing.T) {
	row := Row{"a", "b"}

	if got := row.Field(0); got != "a" {
		t.Errorf("Field(0) = %q, want a", got)
	}
	if got := row.Field(5); got != "" {
		t.Errorf("Field(5) = %q, want empty", got)
	}
	if got := row.Field(-1); got != "" {
		t.Errorf("Field(-1) = %q, want empty", got)
	}
}

func mustParseRows(t *testing.T, p *csvParser, st *State, b *bill.Bill, rows ...Row) {
	t.Helper()
	for _, row := range rows {
		st.Line++
		if err := p.ParseRow(row, st, b); err != nil {
			t.Fatalf("ParseRow(%v) error: %v", row, err)
		}
	}
}
