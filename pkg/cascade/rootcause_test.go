package cascade

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dd0wney/infragraph/pkg/graph"
)

func TestSelectRootCause_NorthGrid(t *testing.T) {
	// s1 and p2 both depend directly on p1.
	snap := buildTestSnapshot(t,
		[]graph.Unit{
			unit("p1", graph.TypePower, "north"),
			unit("p2", graph.TypePower, "north"),
			unit("s1", graph.TypeTelecom, "north"),
		},
		[]graph.Edge{edge("s1", "p1"), edge("p2", "p1")},
	)

	result, err := SelectRootCause(snap, graph.TypePower, []string{"north"}, 0)
	if err != nil {
		t.Fatalf("SelectRootCause failed: %v", err)
	}

	if result.RootCause.ID != "p1" {
		t.Errorf("Expected root cause p1, got %s", result.RootCause.ID)
	}
	if result.AffectedServices != 2 {
		t.Errorf("Expected affectedServices=2, got %d", result.AffectedServices)
	}
	if len(result.ImpactChain) != 2 {
		t.Fatalf("Expected chain of 2, got %d", len(result.ImpactChain))
	}
	// Both direct dependents: depth 1, id order.
	if result.ImpactChain[0].Unit.ID != "p2" || result.ImpactChain[1].Unit.ID != "s1" {
		t.Errorf("Chain should be [p2 s1], got [%s %s]",
			result.ImpactChain[0].Unit.ID, result.ImpactChain[1].Unit.ID)
	}
	if !reflect.DeepEqual(result.CriticalPath, []string{"p2", "s1"}) {
		t.Errorf("CriticalPath should mirror chain names, got %v", result.CriticalPath)
	}
}

func TestSelectRootCause_NoCandidates(t *testing.T) {
	snap := buildTestSnapshot(t,
		[]graph.Unit{unit("p1", graph.TypePower, "north")},
		nil,
	)

	_, err := SelectRootCause(snap, graph.TypeWater, []string{"east"}, 0)
	if err == nil {
		t.Fatal("Expected NotFoundError for empty candidate set")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected not-found classification, got %v", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected *NotFoundError, got %T", err)
	}
	if nf.UnitType != graph.TypeWater {
		t.Errorf("NotFoundError should carry the requested type, got %s", nf.UnitType)
	}
	if !reflect.DeepEqual(nf.Locations, []string{"east"}) {
		t.Errorf("NotFoundError should carry the locations, got %v", nf.Locations)
	}
}

func TestSelectRootCause_EmptyLocations(t *testing.T) {
	snap := buildTestSnapshot(t,
		[]graph.Unit{unit("p1", graph.TypePower, "north")},
		nil,
	)

	_, err := SelectRootCause(snap, graph.TypePower, nil, 0)
	if !errors.Is(err, ErrEmptyLocations) {
		t.Errorf("Expected ErrEmptyLocations, got %v", err)
	}
}

func TestSelectRootCause_TieBreakByID(t *testing.T) {
	// pa and pb each have exactly one dependent; pa wins on id.
	snap := buildTestSnapshot(t,
		[]graph.Unit{
			unit("pa", graph.TypePower, "west"),
			unit("pb", graph.TypePower, "west"),
			unit("x1", graph.TypeWater, "west"),
			unit("x2", graph.TypeWater, "west"),
		},
		[]graph.Edge{edge("x1", "pa"), edge("x2", "pb")},
	)

	result, err := SelectRootCause(snap, graph.TypePower, []string{"west"}, 0)
	if err != nil {
		t.Fatalf("SelectRootCause failed: %v", err)
	}
	if result.RootCause.ID != "pa" {
		t.Errorf("Tie should break to ascending id pa, got %s", result.RootCause.ID)
	}
}

func TestSelectRootCause_ChainCappedCountUncapped(t *testing.T) {
	units := []graph.Unit{unit("root", graph.TypePower, "core")}
	var edges []graph.Edge
	for i := 0; i < 15; i++ {
		id := string(rune('a' + i))
		units = append(units, unit(id, graph.TypeTelecom, "core"))
		edges = append(edges, edge(id, "root"))
	}

	snap := buildTestSnapshot(t, units, edges)

	result, err := SelectRootCause(snap, graph.TypePower, []string{"core"}, 0)
	if err != nil {
		t.Fatalf("SelectRootCause failed: %v", err)
	}

	if len(result.ImpactChain) != DefaultChainLimit {
		t.Errorf("Chain should be capped at %d, got %d", DefaultChainLimit, len(result.ImpactChain))
	}
	if result.AffectedServices != 15 {
		t.Errorf("AffectedServices must be uncapped: expected 15, got %d", result.AffectedServices)
	}
	if result.AffectedServices < len(result.ImpactChain) {
		t.Error("AffectedServices must never be below chain length")
	}
}

func TestSelectRootCause_CustomChainLimit(t *testing.T) {
	units := []graph.Unit{unit("root", graph.TypePower, "core")}
	var edges []graph.Edge
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		units = append(units, unit(id, graph.TypeTelecom, "core"))
		edges = append(edges, edge(id, "root"))
	}

	snap := buildTestSnapshot(t, units, edges)

	result, err := SelectRootCause(snap, graph.TypePower, []string{"core"}, 2)
	if err != nil {
		t.Fatalf("SelectRootCause failed: %v", err)
	}
	if len(result.ImpactChain) != 2 {
		t.Errorf("Expected chain limit 2 honored, got %d", len(result.ImpactChain))
	}
	if result.AffectedServices != 5 {
		t.Errorf("Expected 5 affected services, got %d", result.AffectedServices)
	}
}

func TestSelectRootCause_LocationFilter(t *testing.T) {
	// The biggest hub is in the south; a north-only query must not pick it.
	snap := buildTestSnapshot(t,
		[]graph.Unit{
			unit("pn", graph.TypePower, "north"),
			unit("ps", graph.TypePower, "south"),
			unit("w1", graph.TypeWater, "north"),
			unit("w2", graph.TypeWater, "south"),
			unit("w3", graph.TypeWater, "south"),
		},
		[]graph.Edge{
			edge("w1", "pn"),
			edge("w2", "ps"),
			edge("w3", "ps"),
		},
	)

	result, err := SelectRootCause(snap, graph.TypePower, []string{"north"}, 0)
	if err != nil {
		t.Fatalf("SelectRootCause failed: %v", err)
	}
	if result.RootCause.ID != "pn" {
		t.Errorf("Expected pn despite ps having more dependents, got %s", result.RootCause.ID)
	}
}
