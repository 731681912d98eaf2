package storable

// Initial is the index GroupSubscribe reports for its one setup call.
const Initial = -1

// GroupSubscribe watches several sources with a single callback. Sources
// may be a mix of cells and plain values; plain entries are simply skipped,
// but they keep their position, so the index passed to cb is always the
// position in the sources list as given.
//
// Per-source initial replays are swallowed. Instead, after every source is
// subscribed, cb is invoked exactly once with Initial. From then on cb
// receives the index of whichever source changed.
//
// The returned handle detaches every subscription the call created, in
// creation order.
func GroupSubscribe(cb func(changed int), sources ...any) Detach {
	var detaches []Detach

	for i, src := range sources {
		obs, ok := src.(Observable)
		if !ok {
			continue
		}
		index := i
		detaches = append(detaches, obs.SubscribeAny(func(_ any, initial bool) {
			if initial {
				return
			}
			cb(index)
		}))
	}

	cb(Initial)

	return func() {
		for _, d := range detaches {
			d()
		}
	}
}
