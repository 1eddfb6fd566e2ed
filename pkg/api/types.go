package api

import (
	"time"

	"github.com/dd0wney/infragraph/pkg/cascade"
	"github.com/dd0wney/infragraph/pkg/graph"
)

// UnitResponse is the wire representation of an infrastructure unit.
type UnitResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Location   string `json:"location"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status"`
}

// ChainEntryResponse is one step of an impact chain.
type ChainEntryResponse struct {
	Unit  UnitResponse `json:"unit"`
	Depth int          `json:"depth"`
}

// RootCauseResponse is the result of a root-cause analysis.
type RootCauseResponse struct {
	RootCause        UnitResponse         `json:"root_cause"`
	ImpactChain      []ChainEntryResponse `json:"impact_chain"`
	AffectedServices int                  `json:"affected_services"`
	CriticalPath     []string             `json:"critical_path"`
}

// CriticalUnitResponse is one ranked unit of a region analysis.
type CriticalUnitResponse struct {
	Unit           UnitResponse `json:"unit"`
	DependentCount int          `json:"dependent_count"`
}

// RegionResponse is the result of a region analysis.
type RegionResponse struct {
	Region          string                 `json:"region"`
	CriticalUnits   []CriticalUnitResponse `json:"critical_units"`
	Vulnerabilities []string               `json:"vulnerabilities"`
	TotalUnits      int                    `json:"total_units"`
}

// RankedUnitResponse is one entry of the global criticality ranking.
type RankedUnitResponse struct {
	UnitID           string `json:"unit_id"`
	Name             string `json:"name"`
	DirectDependents int    `json:"direct_dependents"`
}

// SnapshotResponse describes the currently loaded snapshot.
type SnapshotResponse struct {
	Units   int       `json:"units"`
	Edges   int       `json:"edges"`
	BuiltAt time.Time `json:"built_at"`
}

// ReloadResponse reports the outcome of an admin-triggered reload.
type ReloadResponse struct {
	Status string `json:"status"`
	Units  int    `json:"units"`
	Edges  int    `json:"edges"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func unitToResponse(u *graph.Unit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		Name:       u.Name,
		Type:       string(u.Type),
		Location:   u.Location,
		Department: u.Department,
		Status:     string(u.Status),
	}
}

func rootCauseToResponse(result *cascade.RootCauseResult) *RootCauseResponse {
	resp := &RootCauseResponse{
		RootCause:        unitToResponse(result.RootCause),
		ImpactChain:      make([]ChainEntryResponse, 0, len(result.ImpactChain)),
		AffectedServices: result.AffectedServices,
		CriticalPath:     result.CriticalPath,
	}
	for _, d := range result.ImpactChain {
		resp.ImpactChain = append(resp.ImpactChain, ChainEntryResponse{
			Unit:  unitToResponse(d.Unit),
			Depth: d.Depth,
		})
	}
	return resp
}

func regionToResponse(analysis *cascade.RegionAnalysis) *RegionResponse {
	resp := &RegionResponse{
		Region:          analysis.Region,
		CriticalUnits:   make([]CriticalUnitResponse, 0, len(analysis.CriticalUnits)),
		Vulnerabilities: analysis.Vulnerabilities,
		TotalUnits:      analysis.TotalUnits,
	}
	for _, cu := range analysis.CriticalUnits {
		resp.CriticalUnits = append(resp.CriticalUnits, CriticalUnitResponse{
			Unit:           unitToResponse(cu.Unit),
			DependentCount: cu.DependentCount,
		})
	}
	return resp
}
