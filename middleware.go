package storable

// Event describes one committed change on a cell. Equality-suppressed sets
// never produce events.
type Event struct {
	// ID is the cell's unique identifier.
	ID uint64

	// Name is the cell's configured name, or "".
	Name string

	// Old is the value before the change.
	Old any

	// New is the value after the change.
	New any

	// Subscribers is the number of subscribers in the notification pass,
	// counted when the pass list was snapshotted.
	Subscribers int
}

// Middleware wraps a cell's notification pass. It receives the change event
// and a next function that runs the rest of the chain and, ultimately, the
// subscribers. A middleware that does not call next suppresses delivery.
//
// Middleware run in the order configured with WithMiddleware, outermost
// first.
type Middleware func(ev Event, next func())
