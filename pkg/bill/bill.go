package bill

import (
	"sort"
)

// Bill is the root aggregate: all subscribers seen across one or more
// processed export files, keyed by exact name.
//
// Thread-safety: a Bill is mutated only while a single parse is running
// and is read-only afterwards; it needs no locking.
type Bill struct {
	subscribers map[string]*Subscriber
}

// New creates an empty Bill.
func New() *Bill {
	return &Bill{
		subscribers: make(map[string]*Subscriber),
	}
}

// GetOrCreate returns the subscriber with the given name, creating it
// with the given number on first reference.
//
// Reusing an existing name does not update that subscriber's stored
// number; the number seen at creation time wins.
func (b *Bill) GetOrCreate(name, number string) *Subscriber {
	if sub, ok := b.subscribers[name]; ok {
		return sub
	}

	sub := &Subscriber{
		Name:   name,
		Number: number,
	}
	b.subscribers[name] = sub
	return sub
}

// Lookup returns the subscriber with the given name, or nil.
func (b *Bill) Lookup(name string) *Subscriber {
	return b.subscribers[name]
}

// Len returns the number of subscribers.
func (b *Bill) Len() int {
	return len(b.subscribers)
}

// Subscribers returns all subscribers sorted ascending by name.
//
// The map's iteration order is not stable across runs, so every consumer
// that needs deterministic output goes through this accessor.
func (b *Bill) Subscribers() []*Subscriber {
	subs := make([]*Subscriber, 0, len(b.subscribers))
	for _, sub := range b.subscribers {
		subs = append(subs, sub)
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Name < subs[j].Name
	})

	return subs
}

// SortHistories re-sorts every subscriber's calls and texts ascending by
// timestamp. The sort is stable: records with equal timestamps keep
// their input order.
//
// Called by the parser after each processed source so that aggregation
// always sees chronological histories.
func (b *Bill) SortHistories() {
	for _, sub := range b.subscribers {
		calls := sub.Calls
		sort.SliceStable(calls, func(i, j int) bool {
			return calls[i].Timestamp.Before(calls[j].Timestamp)
		})

		texts := sub.Texts
		sort.SliceStable(texts, func(i, j int) bool {
			return texts[i].Timestamp.Before(texts[j].Timestamp)
		})
	}
}
