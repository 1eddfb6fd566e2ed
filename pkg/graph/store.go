package graph

import "sync/atomic"

// Store holds the current snapshot reference. Queries read whatever
// snapshot is current when they start; Swap publishes a replacement
// atomically so in-flight queries keep the graph they began with.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the given initial snapshot.
// The initial snapshot may be nil; Current then returns nil until the
// first Swap.
func NewStore(initial *Snapshot) *Store {
	st := &Store{}
	if initial != nil {
		st.current.Store(initial)
	}
	return st
}

// Current returns the snapshot all new queries should use.
func (st *Store) Current() *Snapshot {
	return st.current.Load()
}

// Swap publishes next as the current snapshot and returns the previous
// one.
func (st *Store) Swap(next *Snapshot) *Snapshot {
	return st.current.Swap(next)
}
