package storable

import (
	"fmt"
	"reflect"
	"sync"
)

// NestedSetPolicy controls what happens when a cell receives a set while a
// notification pass is already running on it, typically because one of its
// own subscribers set it again.
type NestedSetPolicy int

const (
	// NestedAllow runs the nested set immediately, recursing into a new
	// notification pass on top of the current one. This is the default.
	NestedAllow NestedSetPolicy = iota

	// NestedQueue defers nested sets until the in-flight pass completes,
	// then applies them in arrival order.
	NestedQueue

	// NestedReject panics with an error wrapping ErrNestedSet.
	NestedReject
)

// subscription pairs a subscriber with its registration identity.
type subscription[T any] struct {
	id uint64
	fn Subscriber[T]
}

// Storable is an observable value container. Reads return the current value
// with no side effects; a write that actually changes the value (per the
// cell's equality function) synchronously notifies every subscriber before
// returning. Subscription is always explicit: nothing is tracked behind the
// caller's back.
//
// Configure a cell with the chainable With methods immediately after New,
// before it is shared; configurators are not synchronized with concurrent
// use.
type Storable[T any] struct {
	id   uint64
	name string

	// value is the current value.
	value T

	// mu protects the value and the pass state below (depth, queue).
	mu sync.RWMutex

	// equal is the equality function used to decide whether a set changed
	// the value. If nil, uses default equality checking.
	equal func(T, T) bool

	// subs are the subscribers registered on this cell, in registration
	// order. Notification order follows registration order.
	subs []*subscription[T]

	// subMu protects the subs slice.
	subMu sync.RWMutex

	// policy decides how sets arriving during a pass are handled.
	policy NestedSetPolicy

	// maxDepth caps pass recursion; 0 means unlimited.
	maxDepth int

	// depth counts notification passes currently on the stack.
	depth int

	// queue holds sets deferred by NestedQueue.
	queue []T

	// middleware wrap the notification pass, outermost first.
	middleware []Middleware
}

// New creates a cell holding initial.
//
//	temp := storable.New(20.5).WithName("temperature")
func New[T any](initial T) *Storable[T] {
	return &Storable[T]{
		id:    nextID(),
		value: initial,
	}
}

// WithEquals configures a custom equality function, used to suppress sets
// that do not change the value. This is useful for custom types where
// reflect.DeepEqual is too expensive or has incorrect semantics.
func (s *Storable[T]) WithEquals(fn func(T, T) bool) *Storable[T] {
	s.equal = fn
	return s
}

// WithName gives the cell a stable name, surfaced through Name and in
// change events. Registries and metrics key on it.
func (s *Storable[T]) WithName(name string) *Storable[T] {
	s.name = name
	return s
}

// WithNestedSet configures how sets arriving during a notification pass are
// handled. The default is NestedAllow.
//
// The policy keys off an in-flight pass on this cell regardless of which
// goroutine performs the nested set; concurrent writers are expected to
// serialize externally.
func (s *Storable[T]) WithNestedSet(policy NestedSetPolicy) *Storable[T] {
	s.policy = policy
	return s
}

// WithMaxDepth caps how many notification passes may stack up on this cell
// before the set panics with an error wrapping ErrCycleDetected. A cap of 0
// (the default) disables the check. Use it to fail fast when subscriber
// chains can loop.
func (s *Storable[T]) WithMaxDepth(n int) *Storable[T] {
	s.maxDepth = n
	return s
}

// WithMiddleware appends middleware around the cell's notification passes.
// Middleware only see committed changes; suppressed sets bypass them.
func (s *Storable[T]) WithMiddleware(mw ...Middleware) *Storable[T] {
	s.middleware = append(s.middleware, mw...)
	return s
}

// Get returns the current value. It has no side effects and is safe to call
// from anywhere, including inside subscribers.
func (s *Storable[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
// Uses the cell's equality function to determine if the value changed;
// a suppressed set has no observable effect at all.
//
// Notification is synchronous: Set returns only after every subscriber in
// the pass has run. A subscriber panic propagates to the Set caller and
// abandons the rest of the pass.
func (s *Storable[T]) Set(value T) {
	s.mu.Lock()
	if s.depth > 0 {
		switch s.policy {
		case NestedQueue:
			s.queue = append(s.queue, value)
			s.mu.Unlock()
			return
		case NestedReject:
			s.mu.Unlock()
			panic(fmt.Errorf("%w: cell %s", ErrNestedSet, s.describe()))
		}
	}
	old := s.value
	changed := !s.equals(old, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.notify(old, value)
	}
}

// Update atomically reads and updates the value.
// The function receives the current value and returns the new value.
func (s *Storable[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	if s.depth > 0 {
		switch s.policy {
		case NestedQueue:
			s.queue = append(s.queue, newValue)
			s.mu.Unlock()
			return
		case NestedReject:
			s.mu.Unlock()
			panic(fmt.Errorf("%w: cell %s", ErrNestedSet, s.describe()))
		}
	}
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.notify(oldValue, newValue)
	}
}

// Subscribe registers fn and returns a handle that removes exactly this
// registration. Before fn joins the subscriber list it is invoked
// synchronously with the current value and initial set to true; a set
// performed inside that initial call therefore cannot re-enter fn.
//
// The same function may be subscribed multiple times and is then notified
// once per registration.
func (s *Storable[T]) Subscribe(fn Subscriber[T]) Detach {
	if fn == nil {
		return func() {}
	}

	fn(s.Get(), true)

	sub := &subscription[T]{id: nextID(), fn: fn}
	s.subMu.Lock()
	s.subs = append(s.subs, sub)
	s.subMu.Unlock()

	return func() { s.unsubscribe(sub.id) }
}

// unsubscribe removes the registration with the given id. Removal shifts
// rather than swaps so notification order keeps matching registration
// order. Unknown ids are ignored, which makes Detach idempotent.
func (s *Storable[T]) unsubscribe(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, existing := range s.subs {
		if existing.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// ID returns the unique identifier for this cell.
func (s *Storable[T]) ID() uint64 {
	return s.id
}

// Name returns the name configured with WithName, or "".
func (s *Storable[T]) Name() string {
	return s.name
}

// ReadOnly returns a read-only view of this cell. The view shares the
// cell's identity and sees every change, but offers no way to write, even
// through type assertions.
func (s *Storable[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{cell: s}
}

// GetAny returns the current value as an interface{}.
func (s *Storable[T]) GetAny() any {
	return s.Get()
}

// SetAny sets the value from an interface{}. The dynamic type must match
// the cell's value type; otherwise a *TypeMismatchError is returned and the
// cell is left unchanged.
func (s *Storable[T]) SetAny(value any) error {
	tv, ok := value.(T)
	if !ok {
		return &TypeMismatchError{
			Want: reflect.TypeOf((*T)(nil)).Elem(),
			Got:  reflect.TypeOf(value),
		}
	}
	s.Set(tv)
	return nil
}

// SubscribeAny subscribes a type-erased subscriber. Contract matches
// Subscribe.
func (s *Storable[T]) SubscribeAny(fn func(value any, initial bool)) Detach {
	if fn == nil {
		return func() {}
	}
	return s.Subscribe(func(v T, initial bool) { fn(v, initial) })
}

func (s *Storable[T]) isObservable() {}

// equals checks if two values are equal using the configured equality function.
func (s *Storable[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// describe identifies the cell in panic and error messages.
func (s *Storable[T]) describe() string {
	if s.name != "" {
		return fmt.Sprintf("%q (id %d)", s.name, s.id)
	}
	return fmt.Sprintf("id %d", s.id)
}

// notify runs one notification pass for a committed change. Pass depth is
// restored even when a subscriber panics; queued sets are only drained
// after a pass that completed normally.
func (s *Storable[T]) notify(old, value T) {
	s.mu.Lock()
	s.depth++
	depth := s.depth
	s.mu.Unlock()

	if s.maxDepth > 0 && depth > s.maxDepth {
		s.endPass()
		panic(fmt.Errorf("%w: cell %s exceeded max notification depth %d", ErrCycleDetected, s.describe(), s.maxDepth))
	}

	func() {
		defer s.endPass()

		subs := s.snapshotSubs()
		if len(s.middleware) == 0 {
			s.deliver(subs, value)
			return
		}

		ev := Event{ID: s.id, Name: s.name, Old: old, New: value, Subscribers: len(subs)}
		pass := func() { s.deliver(subs, value) }
		for i := len(s.middleware) - 1; i >= 0; i-- {
			mw, next := s.middleware[i], pass
			pass = func() { mw(ev, next) }
		}
		pass()
	}()

	s.drainQueue()
}

// endPass pops one pass off the stack.
func (s *Storable[T]) endPass() {
	s.mu.Lock()
	s.depth--
	s.mu.Unlock()
}

// drainQueue applies sets deferred by NestedQueue, in arrival order. Nested
// passes leave draining to the outermost one.
func (s *Storable[T]) drainQueue() {
	for {
		s.mu.Lock()
		if s.depth > 0 || len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		s.Set(next)
	}
}

// snapshotSubs copies the subscriber list so the pass iterates a stable
// snapshot: subscribers added during the pass wait for the next one, and a
// detach during the pass does not disturb iteration.
func (s *Storable[T]) snapshotSubs() []*subscription[T] {
	s.subMu.RLock()
	subs := make([]*subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()
	return subs
}

// deliver invokes each subscriber with the committed value, in registration
// order.
func (s *Storable[T]) deliver(subs []*subscription[T], value T) {
	for _, sub := range subs {
		sub.fn(value, false)
	}
}
