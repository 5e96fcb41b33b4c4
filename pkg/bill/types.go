// Package bill provides the in-memory data model for a parsed carrier
// billing export: subscribers and their chronological call and text
// histories.
//
// A Bill is populated by the parser package and then treated as
// read-only by the aggregator and report packages.
//
// Example usage:
//
//	b := bill.New()
//	p := parser.New(logger.Default())
//	if err := p.ParseFile("march.csv", b); err != nil {
//	    log.Fatal(err)
//	}
//	for _, sub := range b.Subscribers() {
//	    fmt.Printf("%s: %d calls, %d texts\n", sub.Name, len(sub.Calls), len(sub.Texts))
//	}
package bill

import (
	"time"
)

// Call is a single call record owned by one Subscriber.
//
// Invariant: Timestamp has minute precision (seconds are always zero).
type Call struct {
	// Timestamp is when the call was placed or received.
	Timestamp time.Time

	// Incoming is true for calls received by the subscriber.
	Incoming bool

	// Number is the counterpart phone number, carrier-formatted.
	Number string

	// Place is the free-text locality (or call type) as given by the
	// export, verbatim.
	Place string

	// Duration is the call length as given by the export. The source
	// does not guarantee a numeric value, so it is kept as a string.
	Duration string
}

// Text is a single text-message record owned by one Subscriber.
type Text struct {
	// Timestamp is when the message was sent or received.
	Timestamp time.Time

	// Incoming is true for messages received by the subscriber.
	Incoming bool

	// Number is the counterpart phone number.
	Number string
}

// Subscriber is one line on the account: a name, the number the export
// associated with it, and the call/text history accumulated during
// parsing.
//
// Subscribers are created lazily the first time their name appears in
// the input and are never removed. Identity is the exact, case-sensitive
// name.
type Subscriber struct {
	// Name as it appears in the export, case preserved.
	Name string

	// Number associated with the subscriber when first created. May be
	// empty if no section header preceded the name.
	Number string

	// Calls in ascending timestamp order once SortHistories has run.
	Calls []Call

	// Texts in ascending timestamp order once SortHistories has run.
	Texts []Text
}
