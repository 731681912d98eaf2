package storable

// Derived is a cell whose value is recomputed from one or more sources.
// It behaves like any other cell: it can be read, subscribed, even set
// (though the next source change overwrites an external set). Stop
// disconnects it from its sources; the cell itself stays usable.
type Derived[T any] struct {
	*Storable[T]

	stop Detach
}

// Stop releases the subscriptions feeding this derived cell. After Stop the
// cell keeps its last value and no longer reacts to the sources. Calling
// Stop more than once is a no-op.
func (d *Derived[T]) Stop() {
	d.stop()
}

// Derive creates a cell that tracks source through mapper. When source is
// observable, every change reruns mapper and sets the result; the derived
// cell's own equality suppression applies, so distinct source values that
// map to the same result produce no event. When source is plain, the
// derived cell simply holds the mapped value and Stop has nothing to
// release.
func Derive[S, R any](source Maybe[S], mapper func(S) R) *Derived[R] {
	out := New(mapper(SureGet(source)))
	if !source.IsObservable() {
		return &Derived[R]{Storable: out, stop: func() {}}
	}

	detach := source.source.Subscribe(func(v S, initial bool) {
		if initial {
			return
		}
		out.Set(mapper(v))
	})

	return &Derived[R]{Storable: out, stop: detach}
}

// DeriveMany creates a cell recomputed from several sources, which may be a
// mix of cells and plain values. On every change to any observable source,
// mapper receives the current values of all sources, in order, and its
// result is set on the derived cell. Plain sources contribute fixed values.
func DeriveMany[R any](mapper func(values []any) R, sources ...any) *Derived[R] {
	collect := func() []any {
		values := make([]any, len(sources))
		for i, src := range sources {
			values[i] = SureGetAny(src)
		}
		return values
	}

	out := New(mapper(collect()))
	detach := GroupSubscribe(func(changed int) {
		if changed == Initial {
			return
		}
		out.Set(mapper(collect()))
	}, sources...)

	return &Derived[R]{Storable: out, stop: detach}
}
