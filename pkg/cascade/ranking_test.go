package cascade

import (
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// sixUnitRegion has 6 units in "metro", 2 of which (t1, x1) have no
// dependents.
func sixUnitRegion(t *testing.T) *graph.Snapshot {
	t.Helper()
	return buildTestSnapshot(t,
		[]graph.Unit{
			unit("p1", graph.TypePower, "metro"),
			unit("p2", graph.TypePower, "metro"),
			unit("w1", graph.TypeWater, "metro"),
			unit("w2", graph.TypeWater, "metro"),
			unit("t1", graph.TypeTelecom, "metro"),
			unit("x1", graph.TypeTransport, "metro"),
		},
		[]graph.Edge{
			edge("w1", "p1"),
			edge("w2", "p1"),
			edge("t1", "p1"),
			edge("x1", "w1"),
			edge("t1", "p2"),
			edge("x1", "w2"),
		},
	)
}

func TestRankRegion_SixUnits(t *testing.T) {
	snap := sixUnitRegion(t)

	analysis, err := RankRegion(snap, []string{"metro"}, 0)
	if err != nil {
		t.Fatalf("RankRegion failed: %v", err)
	}

	if analysis.TotalUnits != 6 {
		t.Errorf("TotalUnits should count the full region: expected 6, got %d", analysis.TotalUnits)
	}
	if len(analysis.CriticalUnits) > DefaultTopCritical {
		t.Errorf("CriticalUnits must be capped at %d, got %d", DefaultTopCritical, len(analysis.CriticalUnits))
	}
	for _, cu := range analysis.CriticalUnits {
		if cu.DependentCount <= 0 {
			t.Errorf("Zero-dependent unit %s must not rank", cu.Unit.ID)
		}
	}

	// p1 has dependents {w1, w2, t1, x1} = 4, the regional maximum.
	if analysis.CriticalUnits[0].Unit.ID != "p1" {
		t.Errorf("Expected p1 at rank 1, got %s", analysis.CriticalUnits[0].Unit.ID)
	}
	if analysis.CriticalUnits[0].DependentCount != 4 {
		t.Errorf("p1 should have 4 transitive dependents, got %d", analysis.CriticalUnits[0].DependentCount)
	}

	// Descending counts throughout.
	for i := 1; i < len(analysis.CriticalUnits); i++ {
		if analysis.CriticalUnits[i].DependentCount > analysis.CriticalUnits[i-1].DependentCount {
			t.Error("CriticalUnits must be sorted descending by dependent count")
		}
	}
}

func TestRankRegion_Vulnerabilities(t *testing.T) {
	snap := sixUnitRegion(t)

	analysis, err := RankRegion(snap, []string{"metro"}, 0)
	if err != nil {
		t.Fatalf("RankRegion failed: %v", err)
	}

	if len(analysis.Vulnerabilities) != 2 {
		t.Fatalf("Expected 2 findings, got %d", len(analysis.Vulnerabilities))
	}
	if !strings.Contains(analysis.Vulnerabilities[1], "p1") {
		t.Errorf("Second finding should name the top unit, got %q", analysis.Vulnerabilities[1])
	}
	if !strings.Contains(analysis.Vulnerabilities[1], "single point of failure") {
		t.Errorf("Second finding should flag the single point of failure, got %q", analysis.Vulnerabilities[1])
	}
}

func TestRankRegion_NoCriticalUnits(t *testing.T) {
	snap := buildTestSnapshot(t,
		[]graph.Unit{
			unit("a", graph.TypePower, "quiet"),
			unit("b", graph.TypeWater, "quiet"),
		},
		nil,
	)

	analysis, err := RankRegion(snap, []string{"quiet"}, 0)
	if err != nil {
		t.Fatalf("RankRegion failed: %v", err)
	}
	if len(analysis.CriticalUnits) != 0 {
		t.Errorf("Expected no critical units, got %d", len(analysis.CriticalUnits))
	}
	if len(analysis.Vulnerabilities) != 0 {
		t.Errorf("Expected no findings for an empty ranking, got %v", analysis.Vulnerabilities)
	}
	if analysis.TotalUnits != 2 {
		t.Errorf("TotalUnits should still count region units, got %d", analysis.TotalUnits)
	}
}

func TestRankRegion_EmptyLocations(t *testing.T) {
	snap := sixUnitRegion(t)
	_, err := RankRegion(snap, nil, 0)
	if !errors.Is(err, ErrEmptyLocations) {
		t.Errorf("Expected ErrEmptyLocations, got %v", err)
	}
}

func TestRankRegion_MultiLocationRegionLabel(t *testing.T) {
	snap := buildTestSnapshot(t,
		[]graph.Unit{
			unit("a", graph.TypePower, "north"),
			unit("b", graph.TypeWater, "south"),
		},
		[]graph.Edge{edge("b", "a")},
	)

	analysis, err := RankRegion(snap, []string{"north", "south"}, 0)
	if err != nil {
		t.Fatalf("RankRegion failed: %v", err)
	}
	if analysis.Region != "north, south" {
		t.Errorf("Region label should join locations, got %q", analysis.Region)
	}
	if analysis.TotalUnits != 2 {
		t.Errorf("Expected 2 units across locations, got %d", analysis.TotalUnits)
	}
}

func TestRankGlobal_DirectCounts(t *testing.T) {
	snap := sixUnitRegion(t)

	ranked := RankGlobal(snap)
	if len(ranked) != 6 {
		t.Fatalf("Global ranking is uncapped: expected 6 entries, got %d", len(ranked))
	}

	// Direct in-degrees: p1=3 (w1, w2, t1), p2=1, w1=1, w2=1, t1=0, x1=0.
	counts := make(map[string]int)
	for _, r := range ranked {
		counts[r.UnitID] = r.DirectDependents
	}
	want := map[string]int{"p1": 3, "p2": 1, "w1": 1, "w2": 1, "t1": 0, "x1": 0}
	for id, n := range want {
		if counts[id] != n {
			t.Errorf("Direct dependents of %s: expected %d, got %d", id, n, counts[id])
		}
	}

	if ranked[0].UnitID != "p1" {
		t.Errorf("p1 should rank first globally, got %s", ranked[0].UnitID)
	}
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if cur.DirectDependents > prev.DirectDependents {
			t.Error("Global ranking must be descending by direct dependents")
		}
		if cur.DirectDependents == prev.DirectDependents && cur.UnitID < prev.UnitID {
			t.Error("Ties must break ascending by unit id")
		}
	}
}
