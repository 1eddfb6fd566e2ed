package cascade

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// DefaultTopCritical is how many critical units a region analysis keeps.
const DefaultTopCritical = 5

// CriticalUnit pairs a unit with its transitive dependent count.
type CriticalUnit struct {
	Unit           *graph.Unit
	DependentCount int
}

// RegionAnalysis summarizes the most critical units in a set of
// locations.
type RegionAnalysis struct {
	Region          string
	CriticalUnits   []CriticalUnit // descending by dependent count, top-K
	Vulnerabilities []string
	TotalUnits      int // all units in the region, zero-dependent included
}

// RankedUnit is one entry of the global criticality ranking.
type RankedUnit struct {
	UnitID           string
	Name             string
	DirectDependents int
}

// RankRegion ranks units in the given locations by transitive dependent
// count, keeping the topK with at least one dependent. topK <= 0 uses
// DefaultTopCritical. TotalUnits counts the whole location-filtered set.
func RankRegion(snap *graph.Snapshot, locations []string, topK int) (*RegionAnalysis, error) {
	if len(locations) == 0 {
		return nil, ErrEmptyLocations
	}
	if topK <= 0 {
		topK = DefaultTopCritical
	}

	inLocation := make(map[string]bool, len(locations))
	for _, loc := range locations {
		inLocation[loc] = true
	}

	analysis := &RegionAnalysis{
		Region: strings.Join(locations, ", "),
	}

	var ranked []CriticalUnit
	for _, u := range snap.Units() {
		if !inLocation[u.Location] {
			continue
		}
		analysis.TotalUnits++

		reach, err := TransitiveDependents(snap, u.ID)
		if err != nil {
			return nil, err
		}
		if reach.Total() > 0 {
			ranked = append(ranked, CriticalUnit{Unit: u, DependentCount: reach.Total()})
		}
	}

	// Input is id-ascending; a stable sort on count keeps id order as
	// the tie-break.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DependentCount > ranked[j].DependentCount
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	analysis.CriticalUnits = ranked

	if len(ranked) > 0 {
		top := ranked[0]
		analysis.Vulnerabilities = []string{
			fmt.Sprintf("%d critical units identified in %s", len(ranked), analysis.Region),
			fmt.Sprintf("%s is a single point of failure: %d units depend on it",
				top.Unit.Name, top.DependentCount),
		}
	}

	return analysis, nil
}

// RankGlobal ranks every unit by its direct dependent count (reverse
// adjacency size, no traversal), descending, ties ascending by id. The
// result is uncapped.
func RankGlobal(snap *graph.Snapshot) []RankedUnit {
	units := snap.Units()
	ranked := make([]RankedUnit, 0, len(units))
	for _, u := range units {
		ranked = append(ranked, RankedUnit{
			UnitID:           u.ID,
			Name:             u.Name,
			DirectDependents: snap.DirectDependentCount(u.ID),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DirectDependents > ranked[j].DirectDependents
	})
	return ranked
}
