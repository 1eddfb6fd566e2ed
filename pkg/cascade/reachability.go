// Package cascade is the analysis engine: transitive reachability over
// the dependency graph, root-cause selection, impact chain construction,
// and critical-unit ranking.
//
// Every operation is a pure read of an immutable graph.Snapshot, so any
// number of queries may run concurrently without locking.
package cascade

import (
	"github.com/dd0wney/infragraph/pkg/graph"
)

// Dependent is one unit reached by a reachability traversal, together
// with its minimum hop distance from the traversal root.
type Dependent struct {
	Unit  *graph.Unit
	Depth int
}

// Reachability holds the full transitive-dependent set of a root unit.
type Reachability struct {
	RootID     string
	Dependents []Dependent    // BFS discovery order: depth-ascending
	Depths     map[string]int // unit id -> minimum hop count
}

// Total returns the number of transitive dependents, uncapped.
func (r *Reachability) Total() int {
	return len(r.Dependents)
}

type bfsEntry struct {
	unitID string
	depth  int
}

// TransitiveDependents finds every unit with a directed DependsOn path
// to rootID, walking the reverse adjacency breadth-first. Direct
// dependents are depth 1. Each unit is visited at most once, so cycles
// terminate and a unit reachable via multiple paths is recorded at its
// minimum depth. The root itself is never included.
//
// Neighbor lists in the snapshot are sorted ascending by unit id, so
// discovery order within a depth is deterministic: identical snapshots
// yield identical orderings.
func TransitiveDependents(snap *graph.Snapshot, rootID string) (*Reachability, error) {
	if _, ok := snap.Unit(rootID); !ok {
		return nil, graph.ErrUnknownUnit
	}

	visited := map[string]bool{rootID: true}
	result := &Reachability{
		RootID: rootID,
		Depths: make(map[string]int),
	}

	queue := []bfsEntry{{unitID: rootID, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		nextDepth := current.depth + 1

		for _, depID := range snap.Dependents(current.unitID) {
			if visited[depID] {
				continue
			}
			visited[depID] = true

			unit, _ := snap.Unit(depID)
			result.Dependents = append(result.Dependents, Dependent{Unit: unit, Depth: nextDepth})
			result.Depths[depID] = nextDepth

			queue = append(queue, bfsEntry{unitID: depID, depth: nextDepth})
		}
	}

	return result, nil
}
