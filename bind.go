package storable

import (
	"errors"
	"sync/atomic"
)

// BindOptions configures a two-way binding between a cell of A and a cell
// of B. MapAToB and MapBToA are required; they translate values crossing
// the binding in each direction and are not required to be inverses of each
// other, though a pair that doesn't round-trip will oscillate values
// between the cells (each propagation is still equality-suppressed, so a
// stable pair converges).
type BindOptions[A, B any] struct {
	// MapAToB translates a's values onto b.
	MapAToB func(A) B

	// MapBToA translates b's values onto a.
	MapBToA func(B) A

	// IgnoreA, when set, drops changes of a for which it returns true
	// instead of propagating them to b. IgnoreB is the mirror image.
	IgnoreA func(A) bool
	IgnoreB func(B) bool

	// ReverseInitialSync flips the setup synchronization: by default b is
	// overwritten from a's current value; with this set, a is overwritten
	// from b's.
	ReverseInitialSync bool
}

// Binding is a live two-way binding created by TwoWayBind. Unbind tears it
// down.
type Binding struct {
	detachA Detach
	detachB Detach

	// propagating marks a binding-initiated set for the duration of that
	// set, so it is not reflected back across the binding. Held only
	// while the propagated set runs, it cannot be left armed by an
	// equality-suppressed propagation.
	propagating atomic.Bool
}

// TwoWayBind links two cells so that a change to either is mapped and
// written to the other. At setup one cell is synchronized from the other
// (direction per ReverseInitialSync); afterwards only externally-initiated
// changes propagate, each mapped through the corresponding mapper and
// subject to the corresponding Ignore filter.
//
// Changes made to either cell from inside subscriber callbacks while a
// propagation is in flight are treated as part of that propagation and are
// not re-propagated.
func TwoWayBind[A, B any](a *Storable[A], b *Storable[B], opts BindOptions[A, B]) (*Binding, error) {
	if a == nil || b == nil {
		return nil, errors.New("storable: binding requires two non-nil cells")
	}
	if opts.MapAToB == nil || opts.MapBToA == nil {
		return nil, ErrMissingMapper
	}

	if opts.ReverseInitialSync {
		a.Set(opts.MapBToA(b.Get()))
	} else {
		b.Set(opts.MapAToB(a.Get()))
	}

	bd := &Binding{}

	bd.detachA = a.Subscribe(func(v A, initial bool) {
		if initial || bd.propagating.Load() {
			return
		}
		if opts.IgnoreA != nil && opts.IgnoreA(v) {
			return
		}
		bd.propagating.Store(true)
		defer bd.propagating.Store(false)
		b.Set(opts.MapAToB(v))
	})

	bd.detachB = b.Subscribe(func(v B, initial bool) {
		if initial || bd.propagating.Load() {
			return
		}
		if opts.IgnoreB != nil && opts.IgnoreB(v) {
			return
		}
		bd.propagating.Store(true)
		defer bd.propagating.Store(false)
		a.Set(opts.MapBToA(v))
	})

	return bd, nil
}

// Unbind releases both subscriptions. The cells keep their current values
// and continue to work independently. Calling Unbind more than once is a
// no-op.
func (bd *Binding) Unbind() {
	bd.detachA()
	bd.detachB()
}
