// Package parser reconstructs typed call and text records from the flat,
// mode-switching CSV stream of a carrier billing export.
//
// The export mixes several record kinds in one file. The first field of
// each row discriminates: "Call Detail" and "Data Detail" open a section
// and carry the section's phone number, "User Name:" switches the
// current subscriber, and rows whose first field is an integer sequence
// number are detail records interpreted according to the current
// section mode. Everything else is ignored.
//
// Example usage:
//
//	b := bill.New()
//	p := parser.New(logger.Default())
//	if err := p.ParseFile("export.csv", b); err != nil {
//	    log.Fatal(err)
//	}
package parser

import (
	"strconv"
	"strings"
	"time"
)

// Row-type discriminator literals recognized in field 0.
const (
	markerCallDetail = "Call Detail"
	markerDataDetail = "Data Detail"
	markerUserName   = "User Name:"
)

// Field indices for detail rows. Positions are fixed by the export
// layout; there is no header row.
const (
	fieldSeq      = 0  // integer sequence number
	fieldDate     = 2  // MM/DD/YYYY
	fieldTime     = 3  // H:MMAM or H:MMPM, no space before the suffix
	fieldNumber   = 4  // counterpart phone number
	fieldPlace    = 5  // locality or call type; "INCOMING ..." marks inbound calls
	fieldDuration = 6  // call duration, kept verbatim
	fieldInOut    = 10 // "In"/"Out" marker, data rows only
)

// incomingPrefix marks inbound call rows in the place field.
const incomingPrefix = "INCOMING"

// incomingToken marks inbound data rows in the in/out field.
const incomingToken = "In"

// Mode selects how detail rows are interpreted.
type Mode string

const (
	// ModeCall interprets detail rows as voice calls. This is also the
	// behavior when no section header has been seen yet.
	ModeCall Mode = "call"

	// ModeData interprets detail rows as text messages.
	ModeData Mode = "data"
)

// Row is one CSV record. Trailing fields the export omitted read as
// empty strings rather than faulting, so classification never needs a
// length check.
type Row []string

// Field returns the i-th field, or "" when the row is too short.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// IsEmpty reports whether every field is empty or whitespace.
func (r Row) IsEmpty() bool {
	for _, f := range r {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// isInt reports whether s parses as an integer sequence number.
func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// State is the mutable parse state threaded through row handling. Each
// source file shares one State for the duration of its parse; the
// zero value is ready to use.
type State struct {
	// CurrentName is the subscriber the most recent "User Name:" row
	// selected. Empty until the first such row.
	CurrentName string

	// CurrentNumber is the number carried by the most recent section
	// header, applied to the next newly created subscriber.
	CurrentNumber string

	// CurrentMode says how detail rows are interpreted. Defaults to
	// call interpretation until a "Data Detail" header is seen.
	CurrentMode Mode

	// Line is the 1-indexed row number within the source, for error
	// context.
	Line int

	// Skipped counts detail rows dropped because no subscriber was
	// current yet.
	Skipped int
}

// timestampLayout matches the export's date and time fields joined with
// a single space, e.g. "03/17/2010 10:07PM".
const timestampLayout = "01/02/2006 3:04PM"

// ParseTimestamp combines a MM/DD/YYYY date field and a 12-hour
// H:MMAM/PM time field into a minute-precision time.Time.
//
// Any deviation from the expected pattern returns an error; the caller
// treats that as fatal for the whole file.
func ParseTimestamp(date, clock string) (time.Time, error) {
	return time.Parse(timestampLayout, date+" "+clock)
}
