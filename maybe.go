package storable

// Maybe holds either a plain value or an observable source, made explicit
// at the type level so call sites say which one they mean. The zero Maybe
// is a plain zero value.
//
// APIs that accept "a value or a cell of that value" take a Maybe and
// normalize it with Ensure or SureGet.
type Maybe[T any] struct {
	source Readable[T]
	plain  T
}

// Plain wraps a plain value.
func Plain[T any](v T) Maybe[T] {
	return Maybe[T]{plain: v}
}

// Cell wraps an observable source.
func Cell[T any](r Readable[T]) Maybe[T] {
	return Maybe[T]{source: r}
}

// IsObservable reports whether the Maybe wraps an observable source.
func (m Maybe[T]) IsObservable() bool {
	return m.source != nil
}

// Ensure normalizes a Maybe to an observable source. A wrapped source is
// returned unchanged, so subscriptions land on the original cell; a plain
// value is wrapped in a fresh cell holding it.
func Ensure[T any](m Maybe[T]) Readable[T] {
	if m.source != nil {
		return m.source
	}
	return New(m.plain)
}

// SureGet returns the current value regardless of which side the Maybe
// holds: the source's current value, or the plain value itself.
func SureGet[T any](m Maybe[T]) T {
	if m.source != nil {
		return m.source.Get()
	}
	return m.plain
}

// SureGetAny is the type-erased counterpart of SureGet for heterogeneous
// source lists such as the ones GroupSubscribe and DeriveMany take: if v is
// observable its current value is returned, otherwise v itself is.
func SureGetAny(v any) any {
	if obs, ok := v.(Observable); ok {
		return obs.GetAny()
	}
	return v
}
