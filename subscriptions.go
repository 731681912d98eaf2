package storable

import "sync"

// Subscriptions collects the detach handles owned by one composed entity
// (a widget, a session, a worker) so they can be released together when
// the owner goes away.
//
//	var subs storable.Subscriptions
//	subs.Add(name.Subscribe(onName))
//	subs.Add(storable.GroupSubscribe(onAny, name, age))
//	defer subs.Clear()
type Subscriptions struct {
	mu   sync.Mutex
	subs []Detach
}

// Add registers a detach handle. Nil handles are ignored.
func (s *Subscriptions) Add(d Detach) {
	if d == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, d)
	s.mu.Unlock()
}

// Clear releases every registered handle in reverse order (last added
// first) and empties the collection. The Subscriptions value stays usable
// afterwards.
func (s *Subscriptions) Clear() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i]()
	}
}

// Len returns the number of handles currently held.
func (s *Subscriptions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
