package bill

import (
	"testing"
	"time"
)

func ts(day, hour, min int) time.Time {
	return time.Date(2010, time.March, day, hour, min, 0, 0, time.UTC)
}

func TestGetOrCreate(t *testing.T) {
	b := New()

	sub := b.GetOrCreate("JANE SMITH", "508-235-6915")
	if sub.Name != "JANE SMITH" || sub.Number != "508-235-6915" {
		t.Errorf("got %q/%q, want JANE SMITH/508-235-6915", sub.Name, sub.Number)
	}

	// Same name again: same subscriber, original number kept.
	again := b.GetOrCreate("JANE SMITH", "999-999-9999")
	if again != sub {
		t.Error("GetOrCreate created a duplicate subscriber")
	}
	if again.Number != "508-235-6915" {
		t.Errorf("Number = %q, want original 508-235-6915", again.Number)
	}

	// Names are case-sensitive.
	other := b.GetOrCreate("Jane Smith", "")
	if other == sub {
		t.Error("case-differing names resolved to the same subscriber")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
}

func TestLookup(t *testing.T) {
	b := New()

	if b.Lookup("NOBODY") != nil {
		t.Error("Lookup of unknown name returned a subscriber")
	}

	created := b.GetOrCreate("ROGER SMITH", "508-235-7829")
	if b.Lookup("ROGER SMITH") != created {
		t.Error("Lookup returned a different subscriber")
	}
}

func TestSubscribersSorted(t *testing.T) {
	b := New()
	b.GetOrCreate("ROGER SMITH", "")
	b.GetOrCreate("ALICE JONES", "")
	b.GetOrCreate("JANE SMITH", "")

	subs := b.Subscribers()
	want := []string{"ALICE JONES", "JANE SMITH", "ROGER SMITH"}
	if len(subs) != len(want) {
		t.Fatalf("got %d subscribers, want %d", len(subs), len(want))
	}
	for i, name := range want {
		if subs[i].Name != name {
			t.Errorf("Subscribers()[%d] = %q, want %q", i, subs[i].Name, name)
		}
	}
}

func TestSortHistories(t *testing.T) {
	b := New()
	sub := b.GetOrCreate("JANE SMITH", "508-235-6915")

	sub.Calls = []Call{
		{Timestamp: ts(18, 21, 14), Number: "c"},
		{Timestamp: ts(17, 22, 7), Number: "a"},
		{Timestamp: ts(18, 8, 45), Number: "b"},
	}
	sub.Texts = []Text{
		{Timestamp: ts(19, 21, 54), Number: "y"},
		{Timestamp: ts(17, 13, 1), Number: "x"},
	}

	b.SortHistories()

	wantCalls := []string{"a", "b", "c"}
	for i, number := range wantCalls {
		if sub.Calls[i].Number != number {
			t.Errorf("Calls[%d] = %q, want %q", i, sub.Calls[i].Number, number)
		}
	}
	if sub.Texts[0].Number != "x" || sub.Texts[1].Number != "y" {
		t.Errorf("texts not sorted: %v", sub.Texts)
	}
}

func TestSortHistoriesStable(t *testing.T) {
	b := New()
	sub := b.GetOrCreate("JANE SMITH", "")

	// Equal timestamps keep their input order.
	same := ts(18, 12, 0)
	sub.Texts = []Text{
		{Timestamp: same, Number: "first"},
		{Timestamp: same, Number: "second"},
		{Timestamp: ts(17, 12, 0), Number: "earlier"},
	}

	b.SortHistories()

	want := []string{"earlier", "first", "second"}
	for i, number := range want {
		if sub.Texts[i].Number != number {
			t.Errorf("Texts[%d] = %q, want %q", i, sub.Texts[i].Number, number)
		}
	}
}
