package storable

import (
	"fmt"
	"testing"
)

func TestGroupSubscribeReportsListPositions(t *testing.T) {
	name := New("ada")
	age := New(36)

	var events []int
	detach := GroupSubscribe(func(changed int) {
		events = append(events, changed)
	}, name, "plain entry", age, 99)

	// Exactly one setup call after all sources are wired.
	if len(events) != 1 || events[0] != Initial {
		t.Fatalf("expected a single Initial event, got %v", events)
	}

	name.Set("grace")
	age.Set(37)

	// Indices are positions in the sources list as given, with plain
	// entries keeping their slots.
	want := []int{Initial, 0, 2}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}

	detach()
	name.Set("edsger")
	if len(events) != 3 {
		t.Errorf("no events after detach, got %v", events)
	}
}

func TestGroupSubscribeSwallowsPerSourceReplays(t *testing.T) {
	a := New(1)
	b := New(2)

	var events []int
	GroupSubscribe(func(changed int) {
		events = append(events, changed)
	}, a, b)

	// The per-source initial replays never reach the callback; only the
	// one Initial marker does.
	if len(events) != 1 || events[0] != Initial {
		t.Errorf("expected only the Initial event, got %v", events)
	}
}

func TestGroupSubscribeAllPlain(t *testing.T) {
	calls := 0
	detach := GroupSubscribe(func(changed int) {
		if changed != Initial {
			t.Errorf("unexpected change index %d", changed)
		}
		calls++
	}, 1, "two", nil, 4.0)

	if calls != 1 {
		t.Errorf("expected the Initial call even with no observable sources, got %d", calls)
	}
	detach()
}

func TestGroupSubscribeRepeatedSource(t *testing.T) {
	cell := New(0)

	var events []int
	GroupSubscribe(func(changed int) {
		if changed != Initial {
			events = append(events, changed)
		}
	}, cell, cell)

	cell.Set(1)

	// The same cell listed twice fires once per listed position.
	want := []int{0, 1}
	if fmt.Sprint(events) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestGroupSubscribeDetachIdempotent(t *testing.T) {
	cell := New(0)
	events := 0
	detach := GroupSubscribe(func(changed int) {
		if changed != Initial {
			events++
		}
	}, cell)

	detach()
	detach()

	cell.Set(1)
	if events != 0 {
		t.Errorf("expected no events after detach, got %d", events)
	}
}

func TestGroupSubscribeMixedViewsAndCells(t *testing.T) {
	cell := New(10)
	view := cell.ReadOnly()
	derived := Derive(Cell[int](cell), func(n int) int { return n + 1 })

	var events []int
	GroupSubscribe(func(changed int) {
		if changed != Initial {
			events = append(events, changed)
		}
	}, view, derived)

	cell.Set(20)

	// The view fires for position 0; the derived cell recomputes from the
	// same source change and fires for position 1.
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %v", events)
	}
	seen := map[int]bool{}
	for _, ev := range events {
		seen[ev] = true
	}
	if !seen[0] || !seen[1] {
		t.Errorf("expected positions 0 and 1, got %v", events)
	}
}
