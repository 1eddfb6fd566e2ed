package cascade

import (
	"github.com/dd0wney/infragraph/pkg/graph"
)

// RootCauseResult identifies the unit whose failure explains the widest
// impact, plus the ordered chain of units it would take down.
type RootCauseResult struct {
	RootCause        *graph.Unit
	ImpactChain      []Dependent // depth-ascending, capped at the chain limit
	AffectedServices int         // uncapped transitive dependent count
	CriticalPath     []string    // chain entries' names, in chain order
}

// SelectRootCause finds the candidate unit of the given type within the
// given locations whose transitive dependent set is largest. Ties break
// on ascending unit id so the result is reproducible on an identical
// snapshot. chainLimit bounds the impact chain; <= 0 uses
// DefaultChainLimit.
func SelectRootCause(snap *graph.Snapshot, unitType graph.UnitType, locations []string, chainLimit int) (*RootCauseResult, error) {
	if len(locations) == 0 {
		return nil, ErrEmptyLocations
	}

	inLocation := make(map[string]bool, len(locations))
	for _, loc := range locations {
		inLocation[loc] = true
	}

	var (
		best      *graph.Unit
		bestReach *Reachability
		bestCount = -1
		found     bool
	)

	// Units() iterates ascending by id, so the first candidate at the
	// maximum count is also the tie-break winner.
	for _, u := range snap.Units() {
		if u.Type != unitType || !inLocation[u.Location] {
			continue
		}
		found = true

		reach, err := TransitiveDependents(snap, u.ID)
		if err != nil {
			return nil, err
		}
		if reach.Total() > bestCount {
			best = u
			bestReach = reach
			bestCount = reach.Total()
		}
	}

	if !found {
		return nil, &NotFoundError{UnitType: unitType, Locations: locations}
	}

	chain := BuildChain(bestReach.Dependents, chainLimit)
	names := make([]string, 0, len(chain))
	for _, d := range chain {
		names = append(names, d.Unit.Name)
	}

	return &RootCauseResult{
		RootCause:        best,
		ImpactChain:      chain,
		AffectedServices: bestCount,
		CriticalPath:     names,
	}, nil
}
