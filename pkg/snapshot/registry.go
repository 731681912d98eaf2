package snapshot

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Vehmloewff/storable"
)

// Registry is a named directory of cells. Names are unique and keep their
// registration order. All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	names     []string
	cells     map[string]storable.Settable
	watchers  map[uint64]*watcher
	watcherID uint64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		cells:    make(map[string]storable.Settable),
		watchers: make(map[uint64]*watcher),
	}
}

// Register adds a cell under the given name. The name must be non-empty
// and not already taken. Watchers created before the call start observing
// the new cell immediately.
func (r *Registry) Register(name string, cell storable.Settable) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	if _, exists := r.cells[name]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.cells[name] = cell
	r.names = append(r.names, name)
	watchers := make([]*watcher, 0, len(r.watchers))
	for _, w := range r.watchers {
		watchers = append(watchers, w)
	}
	r.mu.Unlock()

	// Subscribe outside the lock: SubscribeAny replays synchronously and
	// watcher callbacks may call back into the registry.
	for _, w := range watchers {
		w.observe(name, cell)
	}
	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Get returns the cell registered under name.
func (r *Registry) Get(name string) (storable.Observable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cell, ok := r.cells[name]
	if !ok {
		return nil, false
	}
	return cell, true
}

// Watch calls fn with the cell's name every time any registered cell
// commits a change. Cells registered after the call are watched too.
// The initial replay that Subscribe performs is not forwarded. The
// returned Detach stops the watcher; calling it more than once is a no-op.
func (r *Registry) Watch(fn func(name string)) storable.Detach {
	if fn == nil {
		fn = func(string) {}
	}
	w := &watcher{fn: fn}

	r.mu.Lock()
	id := r.watcherID
	r.watcherID++
	r.watchers[id] = w
	type entry struct {
		name string
		cell storable.Settable
	}
	entries := make([]entry, 0, len(r.names))
	for _, name := range r.names {
		entries = append(entries, entry{name, r.cells[name]})
	}
	r.mu.Unlock()

	for _, e := range entries {
		w.observe(e.name, e.cell)
	}

	return func() {
		r.mu.Lock()
		delete(r.watchers, id)
		r.mu.Unlock()
		w.close()
	}
}

// Snapshot captures the current value of every registered cell.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make(Snapshot, len(r.cells))
	for name, cell := range r.cells {
		snap[name] = cell.GetAny()
	}
	return snap
}

// Restore writes snapshot values back into the registered cells, in
// registration order. Names in the snapshot that are not registered are
// ignored. Type mismatches do not stop the restore; they are collected
// and returned as a joined error, one entry per failing cell.
func (r *Registry) Restore(snap Snapshot) error {
	r.mu.RLock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	cells := make(map[string]storable.Settable, len(r.cells))
	for name, cell := range r.cells {
		cells[name] = cell
	}
	r.mu.RUnlock()

	var errs []error
	for _, name := range names {
		value, ok := snap[name]
		if !ok {
			continue
		}
		if err := cells[name].SetAny(value); err != nil {
			errs = append(errs, fmt.Errorf("restore %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// watcher fans a single callback out over every registered cell.
type watcher struct {
	fn func(name string)

	mu     sync.Mutex
	subs   storable.Subscriptions
	closed bool
}

func (w *watcher) observe(name string, cell storable.Observable) {
	detach := cell.SubscribeAny(func(_ any, initial bool) {
		if initial {
			return
		}
		w.fn(name)
	})

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		detach()
		return
	}
	w.subs.Add(detach)
	w.mu.Unlock()
}

func (w *watcher) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()
	w.subs.Clear()
}
