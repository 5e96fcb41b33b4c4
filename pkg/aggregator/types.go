// Package aggregator computes per-subscriber, per-counterpart usage
// statistics from a finished bill, including text-session detection.
//
// A "text session" is a burst of messages with one counterpart: a text
// starts a new session when it arrives more than SessionGap after the
// session that counterpart last started. The text list is walked in
// timestamp order across all counterparts, the way the records appear
// on the bill, with session state kept per counterpart.
//
// Example usage:
//
//	agg := aggregator.New(aggregator.Config{})
//	usage := agg.Aggregate(b)
//	for _, sub := range usage.Subscribers {
//	    fmt.Printf("%s: %d in, %d out\n", sub.Name, sub.CallsIn, sub.CallsOut)
//	}
package aggregator

import (
	"time"
)

// SessionGap is the minimum quiet period after which a text starts a
// new session with its counterpart.
const SessionGap = 5 * time.Minute

// sentinel is a date before any real record: the initial value for both
// per-counterpart session starts and the report-wide "latest" bound.
var sentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// CounterpartStats holds the tallies for one (subscriber, counterpart
// number) pair. Entries are created on first reference and never
// removed.
type CounterpartStats struct {
	// Number is the counterpart phone number.
	Number string

	// CallsFrom / CallsTo count incoming and outgoing calls.
	CallsFrom int
	CallsTo   int

	// TextsFrom / TextsTo count incoming and outgoing texts.
	TextsFrom int
	TextsTo   int

	// SessionsIn / SessionsOut count text sessions opened by an
	// incoming or outgoing message.
	SessionsIn  int
	SessionsOut int

	// lastSessionStart is computation-only state for the gap check.
	lastSessionStart time.Time
}

// SubscriberUsage holds one subscriber's totals and per-counterpart
// breakdown.
type SubscriberUsage struct {
	// Name and Number identify the subscriber.
	Name   string
	Number string

	// Call and text totals across all counterparts.
	CallsIn  int
	CallsOut int
	TextsIn  int
	TextsOut int

	// Counterparts sorted ascending by number.
	Counterparts []*CounterpartStats
}

// Usage is the aggregation result for a whole bill.
type Usage struct {
	// Subscribers sorted ascending by name.
	Subscribers []*SubscriberUsage

	// Earliest and Latest bound the timestamps of every call and text
	// on the bill. With no records at all, Earliest keeps its
	// wall-clock initial value and Latest the past sentinel; that pair
	// is the documented "no data" state.
	Earliest time.Time
	Latest   time.Time
}

// Config contains aggregator configuration.
type Config struct {
	// Now supplies the initial "earliest" bound. Defaults to time.Now;
	// tests pin it for determinism.
	Now func() time.Time
}
