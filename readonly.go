package storable

// ReadOnly is a read-only view over a cell, obtained from
// (*Storable).ReadOnly. It is a true view rather than a copy: every change
// to the underlying cell is visible through it, and it reports the cell's
// ID and Name. It intentionally wraps instead of embedding so no write
// method is reachable, not even by asserting to Settable.
type ReadOnly[T any] struct {
	cell *Storable[T]
}

// Get returns the underlying cell's current value.
func (r ReadOnly[T]) Get() T {
	return r.cell.Get()
}

// Subscribe registers fn on the underlying cell. Contract matches
// (*Storable).Subscribe.
func (r ReadOnly[T]) Subscribe(fn Subscriber[T]) Detach {
	return r.cell.Subscribe(fn)
}

// ID returns the underlying cell's unique identifier.
func (r ReadOnly[T]) ID() uint64 {
	return r.cell.ID()
}

// Name returns the underlying cell's name.
func (r ReadOnly[T]) Name() string {
	return r.cell.Name()
}

// GetAny returns the current value as an interface{}.
func (r ReadOnly[T]) GetAny() any {
	return r.cell.GetAny()
}

// SubscribeAny subscribes a type-erased subscriber on the underlying cell.
func (r ReadOnly[T]) SubscribeAny(fn func(value any, initial bool)) Detach {
	return r.cell.SubscribeAny(fn)
}

func (r ReadOnly[T]) isObservable() {}
