// Package graph holds the immutable in-memory model of interdependent
// infrastructure: units, directed DependsOn edges, and the adjacency
// indices every analysis query reads.
//
// A Snapshot is built once from flat unit/edge lists and is read-only for
// its entire lifetime. Data reloads build a fresh Snapshot and swap it
// into the Store atomically, so concurrent queries never observe a
// partially updated graph.
package graph

import (
	"sort"
	"time"
)

// Snapshot is a fully indexed, immutable copy of the dependency graph.
type Snapshot struct {
	units      map[string]*Unit
	ids        []string            // all unit ids, ascending
	dependsOn  map[string][]string // forward: unit -> units it depends on
	dependents map[string][]string // reverse: unit -> units that depend on it
	edgeCount  int
	builtAt    time.Time
}

// BuildSnapshot indexes the supplied units and edges into a Snapshot.
// It fails if a unit id repeats or an edge references an id absent from
// units. Adjacency lists are sorted ascending by unit id so traversal
// discovery order is deterministic across runs.
func BuildSnapshot(units []Unit, edges []Edge) (*Snapshot, error) {
	s := &Snapshot{
		units:      make(map[string]*Unit, len(units)),
		ids:        make([]string, 0, len(units)),
		dependsOn:  make(map[string][]string),
		dependents: make(map[string][]string),
		builtAt:    time.Now(),
	}

	for i := range units {
		u := units[i]
		if u.ID == "" {
			return nil, unitBuildError("index", u.Name, ErrEmptyUnitID)
		}
		if _, exists := s.units[u.ID]; exists {
			return nil, unitBuildError("index", u.ID, ErrDuplicateUnit)
		}
		s.units[u.ID] = &u
		s.ids = append(s.ids, u.ID)
	}
	sort.Strings(s.ids)

	seen := make(map[Edge]bool, len(edges))
	for _, e := range edges {
		if _, ok := s.units[e.FromID]; !ok {
			return nil, edgeBuildError("link", e.FromID, e.ToID, ErrUnknownUnit)
		}
		if _, ok := s.units[e.ToID]; !ok {
			return nil, edgeBuildError("link", e.FromID, e.ToID, ErrUnknownUnit)
		}
		// Repeated (from, to) pairs collapse to one edge.
		if seen[e] {
			continue
		}
		seen[e] = true
		s.dependsOn[e.FromID] = append(s.dependsOn[e.FromID], e.ToID)
		s.dependents[e.ToID] = append(s.dependents[e.ToID], e.FromID)
		s.edgeCount++
	}

	for _, adj := range s.dependsOn {
		sort.Strings(adj)
	}
	for _, adj := range s.dependents {
		sort.Strings(adj)
	}

	return s, nil
}

// Unit returns the unit with the given id.
func (s *Snapshot) Unit(id string) (*Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// UnitIDs returns all unit ids in ascending order. Callers must not
// modify the returned slice.
func (s *Snapshot) UnitIDs() []string {
	return s.ids
}

// Units returns all units in ascending id order.
func (s *Snapshot) Units() []*Unit {
	out := make([]*Unit, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.units[id])
	}
	return out
}

// DependsOn returns the ids of units the given unit directly depends on,
// ascending. Callers must not modify the returned slice.
func (s *Snapshot) DependsOn(id string) []string {
	return s.dependsOn[id]
}

// Dependents returns the ids of units that directly depend on the given
// unit, ascending. Callers must not modify the returned slice.
func (s *Snapshot) Dependents(id string) []string {
	return s.dependents[id]
}

// DirectDependentCount returns the size of a unit's reverse adjacency.
func (s *Snapshot) DirectDependentCount(id string) int {
	return len(s.dependents[id])
}

// UnitCount returns the number of units in the snapshot.
func (s *Snapshot) UnitCount() int {
	return len(s.units)
}

// EdgeCount returns the number of DependsOn edges in the snapshot.
func (s *Snapshot) EdgeCount() int {
	return s.edgeCount
}

// BuiltAt returns when this snapshot was constructed.
func (s *Snapshot) BuiltAt() time.Time {
	return s.builtAt
}
