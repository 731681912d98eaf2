// Package snapshot provides a named directory of cells and pluggable
// persistence for their values. A Registry maps names to cells, Snapshot
// captures every registered cell's current value into a plain map, and a
// Store persists that map in memory, on disk, or in S3.
package snapshot

import (
	"context"
	"errors"
)

// ErrEmptyName is returned when a cell is registered without a name.
var ErrEmptyName = errors.New("snapshot: empty cell name")

// ErrDuplicateName is returned when a name is already registered.
var ErrDuplicateName = errors.New("snapshot: duplicate cell name")

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: no snapshot saved")

// Snapshot holds the captured value of each registered cell, keyed by
// registration name.
type Snapshot map[string]any

// Store is the interface for snapshot persistence backends.
// Implement this interface to use Redis, a database, or other storage.
type Store interface {
	// Save persists the snapshot, replacing any previous one.
	Save(ctx context.Context, snap Snapshot) error

	// Load returns the most recently saved snapshot.
	Load(ctx context.Context) (Snapshot, error)
}
