// Package storable provides a small observable value primitive: a container
// holding a single value of any type that interested parties can subscribe
// to.
//
// The core type is Storable, created with New. Reads are cheap and
// side-effect free; writes notify subscribers synchronously, in registration
// order, and are suppressed when the new value equals the current one.
// A new subscriber is immediately replayed the current value with the
// initial flag set, so consumers never special-case "first read" versus
// "subsequent change".
//
//	count := storable.New(0)
//	detach := count.Subscribe(func(n int, initial bool) {
//		fmt.Println(n, initial)
//	})
//	count.Set(5) // prints "5 false" (after the initial "0 true")
//	detach()
//
// On top of the cell the package layers capability detection (Observable,
// IsObservable), coercion between plain values and cells (Maybe, Ensure,
// SureGet), multi-source subscription (GroupSubscribe), derivation (Derive,
// DeriveMany) and two-way binding (TwoWayBind). Every composition helper
// returns a handle that releases the subscriptions it created.
//
// All notification is synchronous: Set does not return until every
// subscriber has run. There is no scheduler, no batching and no implicit
// dependency tracking. Cells are safe for concurrent reads; concurrent
// writers are expected to serialize externally.
package storable
