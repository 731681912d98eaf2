package storable

// Subscriber receives a cell's value. It is invoked once with the current
// value and initial set to true at subscription time, then once per
// committed change with initial set to false.
type Subscriber[T any] func(value T, initial bool)

// Detach releases a subscription. Calling it more than once is a no-op.
type Detach func()

// Observable is the type-erased read surface shared by every cell in this
// package. It is deliberately sealed: only types defined here implement it,
// so a foreign type that happens to have a Subscribe method is never
// mistaken for a cell. Use IsObservable to test an arbitrary value.
type Observable interface {
	// ID returns the cell's process-unique identifier.
	ID() uint64

	// Name returns the name configured with WithName, or "".
	Name() string

	// GetAny returns the current value as an interface{}.
	GetAny() any

	// SubscribeAny subscribes a type-erased subscriber. It follows the
	// same contract as Subscribe: the current value is replayed with
	// initial set to true before the subscriber joins the list.
	SubscribeAny(fn func(value any, initial bool)) Detach

	// isObservable seals the interface.
	isObservable()
}

// Settable is an Observable that also accepts type-erased writes.
// Read-only views do not implement it.
type Settable interface {
	Observable

	// SetAny sets the value from an interface{}.
	// Returns a *TypeMismatchError if the dynamic type doesn't match.
	SetAny(value any) error
}

// Readable is the typed read surface of a cell: the full Storable
// implements it, as does the ReadOnly view.
type Readable[T any] interface {
	Observable

	// Get returns the current value.
	Get() T

	// Subscribe registers fn and replays the current value to it first.
	Subscribe(fn Subscriber[T]) Detach
}

// IsObservable reports whether v is a cell from this package. It is false
// for nil, plain values, and any foreign type regardless of its method set.
func IsObservable(v any) bool {
	_, ok := v.(Observable)
	return ok
}
