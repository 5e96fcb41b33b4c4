package aggregator

import (
	"sort"
	"time"

	"github.com/0xmhha/billscan/pkg/bill"
)

// Aggregator computes usage statistics from a finished bill.
type Aggregator interface {
	// Aggregate walks every subscriber's chronological histories and
	// returns the per-counterpart tallies and the report-wide
	// timestamp span.
	//
	// The bill is read-only during and after aggregation; calling
	// Aggregate twice on the same bill yields identical results.
	Aggregate(b *bill.Bill) *Usage
}

// usageAggregator implements the Aggregator interface.
type usageAggregator struct {
	config Config
}

// New creates a new Aggregator.
func New(cfg Config) Aggregator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &usageAggregator{
		config: cfg,
	}
}

// Aggregate implements Aggregator.Aggregate.
func (a *usageAggregator) Aggregate(b *bill.Bill) *Usage {
	subs := b.Subscribers()

	usage := &Usage{
		Subscribers: make([]*SubscriberUsage, 0, len(subs)),
		Earliest:    a.config.Now(),
		Latest:      sentinel,
	}

	for _, sub := range subs {
		usage.Subscribers = append(usage.Subscribers, aggregateSubscriber(sub))

		for _, call := range sub.Calls {
			usage.observe(call.Timestamp)
		}
		for _, text := range sub.Texts {
			usage.observe(text.Timestamp)
		}
	}

	return usage
}

// observe widens the report-wide timestamp span. A timestamp that moves
// the earliest bound is not considered for the latest bound in the same
// pass.
func (u *Usage) observe(ts time.Time) {
	if ts.Before(u.Earliest) {
		u.Earliest = ts
	} else if ts.After(u.Latest) {
		u.Latest = ts
	}
}

// aggregateSubscriber tallies one subscriber's histories.
func aggregateSubscriber(sub *bill.Subscriber) *SubscriberUsage {
	su := &SubscriberUsage{
		Name:   sub.Name,
		Number: sub.Number,
	}

	parties := make(map[string]*CounterpartStats)
	party := func(number string) *CounterpartStats {
		if cp, ok := parties[number]; ok {
			return cp
		}
		cp := &CounterpartStats{
			Number:           number,
			lastSessionStart: sentinel,
		}
		parties[number] = cp
		return cp
	}

	for _, call := range sub.Calls {
		cp := party(call.Number)
		if call.Incoming {
			su.CallsIn++
			cp.CallsFrom++
		} else {
			su.CallsOut++
			cp.CallsTo++
		}
	}

	for _, text := range sub.Texts {
		cp := party(text.Number)
		if text.Incoming {
			su.TextsIn++
			cp.TextsFrom++
		} else {
			su.TextsOut++
			cp.TextsTo++
		}

		// Strictly-greater comparison: a text landing exactly on the
		// gap boundary still belongs to the running session.
		if text.Timestamp.After(cp.lastSessionStart.Add(SessionGap)) {
			cp.lastSessionStart = text.Timestamp
			if text.Incoming {
				cp.SessionsIn++
			} else {
				cp.SessionsOut++
			}
		}
	}

	su.Counterparts = make([]*CounterpartStats, 0, len(parties))
	for _, cp := range parties {
		su.Counterparts = append(su.Counterparts, cp)
	}
	sort.Slice(su.Counterparts, func(i, j int) bool {
		return su.Counterparts[i].Number < su.Counterparts[j].Number
	})

	return su
}
