// Package live exposes a directory of cells over HTTP and WebSocket for
// inspection. The core library stays non-networked; this package wraps a
// Directory (snapshot.Registry implements it) with read-only endpoints
// and a change stream.
package live

import "github.com/Vehmloewff/storable"

// Directory is the read surface the server needs: a set of named cells
// and a change stream across them.
type Directory interface {
	// Names returns the registered names in registration order.
	Names() []string

	// Get returns the cell registered under name.
	Get(name string) (storable.Observable, bool)

	// Watch calls fn with the cell's name for every committed change.
	Watch(fn func(name string)) storable.Detach
}

// Message types sent on the /watch stream.
const (
	MessageSnapshot = "snapshot"
	MessageChange   = "change"
)

// Message is one frame of the /watch stream. The first frame has type
// "snapshot" and carries Values; every later frame has type "change" and
// carries the Name and new Value of a single cell.
type Message struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Value  any            `json:"value"`
	Values map[string]any `json:"values,omitempty"`
}
