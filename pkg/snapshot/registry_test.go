package snapshot

import (
	"errors"
	"strings"
	"testing"

	"github.com/Vehmloewff/storable"
)

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register("count", storable.New(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Register("title", storable.New("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := reg.Names()
	if len(names) != 2 || names[0] != "count" || names[1] != "title" {
		t.Errorf("expected [count title], got %v", names)
	}
}

func TestRegistryRegisterEmptyName(t *testing.T) {
	reg := NewRegistry()

	err := reg.Register("", storable.New(0))
	if !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestRegistryRegisterDuplicateName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("count", storable.New(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := reg.Register("count", storable.New(1))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if names := reg.Names(); len(names) != 1 {
		t.Errorf("expected 1 name after failed register, got %v", names)
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()
	cell := storable.New(42)
	reg.Register("count", cell)

	got, ok := reg.Get("count")
	if !ok {
		t.Fatal("expected count to be registered")
	}
	if got.ID() != cell.ID() {
		t.Errorf("expected cell %d, got %d", cell.ID(), got.ID())
	}

	if _, ok := reg.Get("missing"); ok {
		t.Error("expected missing name to report ok=false")
	}
}

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	count := storable.New(3)
	title := storable.New("ready")
	reg.Register("count", count)
	reg.Register("title", title)

	count.Set(4)

	snap := reg.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap))
	}
	if snap["count"] != 4 {
		t.Errorf("expected count 4, got %v", snap["count"])
	}
	if snap["title"] != "ready" {
		t.Errorf("expected title %q, got %v", "ready", snap["title"])
	}
}

func TestRegistryRestore(t *testing.T) {
	reg := NewRegistry()
	count := storable.New(0)
	title := storable.New("")
	reg.Register("count", count)
	reg.Register("title", title)

	var notified []int
	count.Subscribe(func(v int, initial bool) {
		if !initial {
			notified = append(notified, v)
		}
	})

	err := reg.Restore(Snapshot{"count": 7, "title": "loaded", "ghost": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Get() != 7 {
		t.Errorf("expected count 7, got %d", count.Get())
	}
	if title.Get() != "loaded" {
		t.Errorf("expected title %q, got %q", "loaded", title.Get())
	}
	if len(notified) != 1 || notified[0] != 7 {
		t.Errorf("expected restore to notify [7], got %v", notified)
	}
}

func TestRegistryRestoreTypeMismatch(t *testing.T) {
	reg := NewRegistry()
	count := storable.New(1)
	title := storable.New("a")
	reg.Register("count", count)
	reg.Register("title", title)

	err := reg.Restore(Snapshot{"count": "nope", "title": "b"})
	if err == nil {
		t.Fatal("expected error")
	}

	var mismatch *storable.TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("expected TypeMismatchError, got %v", err)
	}
	if !strings.Contains(err.Error(), `restore "count"`) {
		t.Errorf("expected error to name the failing cell, got %v", err)
	}

	// The failing entry must not stop the others.
	if title.Get() != "b" {
		t.Errorf("expected title %q, got %q", "b", title.Get())
	}
	if count.Get() != 1 {
		t.Errorf("expected count unchanged, got %d", count.Get())
	}
}

func TestRegistryWatch(t *testing.T) {
	reg := NewRegistry()
	count := storable.New(0)
	reg.Register("count", count)

	var changed []string
	detach := reg.Watch(func(name string) {
		changed = append(changed, name)
	})

	if len(changed) != 0 {
		t.Fatalf("expected no initial replay, got %v", changed)
	}

	count.Set(1)
	if len(changed) != 1 || changed[0] != "count" {
		t.Fatalf("expected [count], got %v", changed)
	}

	// Cells registered after Watch are picked up.
	title := storable.New("a")
	reg.Register("title", title)
	title.Set("b")
	if len(changed) != 2 || changed[1] != "title" {
		t.Fatalf("expected [count title], got %v", changed)
	}

	// Equality-suppressed sets never reach watchers.
	count.Set(1)
	if len(changed) != 2 {
		t.Fatalf("expected suppressed set to be invisible, got %v", changed)
	}

	detach()
	count.Set(2)
	title.Set("c")
	if len(changed) != 2 {
		t.Errorf("expected no deliveries after detach, got %v", changed)
	}

	detach() // second call is a no-op
}

func TestRegistryWatchIndependentWatchers(t *testing.T) {
	reg := NewRegistry()
	count := storable.New(0)
	reg.Register("count", count)

	first := 0
	second := 0
	detachFirst := reg.Watch(func(string) { first++ })
	reg.Watch(func(string) { second++ })

	count.Set(1)
	detachFirst()
	count.Set(2)

	if first != 1 {
		t.Errorf("expected detached watcher to see 1 change, got %d", first)
	}
	if second != 2 {
		t.Errorf("expected remaining watcher to see 2 changes, got %d", second)
	}
}
