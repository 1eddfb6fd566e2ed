package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dd0wney/infragraph/pkg/cascade"
	"github.com/dd0wney/infragraph/pkg/graph"
	"github.com/dd0wney/infragraph/pkg/loader"
	"github.com/dd0wney/infragraph/pkg/logging"
	"github.com/dd0wney/infragraph/pkg/validation"
)

// currentSnapshot returns the active snapshot or writes a 503 when none
// has been loaded yet.
func (s *Server) currentSnapshot(w http.ResponseWriter) *graph.Snapshot {
	snap := s.store.Current()
	if snap == nil {
		s.respondError(w, http.StatusServiceUnavailable, "No snapshot loaded")
		return nil
	}
	return snap
}

func (s *Server) handleRootCause(w http.ResponseWriter, r *http.Request) {
	snap := s.currentSnapshot(w)
	if snap == nil {
		return
	}

	var req validation.RootCauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	unitType, locations, err := validation.ValidateRootCauseRequest(&req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	result, err := cascade.SelectRootCause(snap, unitType, locations, s.opts.ChainLimit)
	if err != nil {
		s.recordAnalysis("root_cause", "not_found", start, 0)
		s.analysisError(w, err)
		return
	}
	s.recordAnalysis("root_cause", "ok", start, result.AffectedServices)

	s.logger.Info("Root cause analysis complete",
		logging.Operation("root_cause"),
		logging.UnitID(result.RootCause.ID),
		logging.Int("affected_services", result.AffectedServices))
	s.respondJSON(w, http.StatusOK, rootCauseToResponse(result))
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	snap := s.currentSnapshot(w)
	if snap == nil {
		return
	}

	var req validation.RegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	locations, err := validation.ValidateRegionRequest(&req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	analysis, err := cascade.RankRegion(snap, locations, s.opts.TopCritical)
	if err != nil {
		s.recordAnalysis("region", "error", start, 0)
		s.analysisError(w, err)
		return
	}
	s.recordAnalysis("region", "ok", start, analysis.TotalUnits)

	s.logger.Info("Region analysis complete",
		logging.Operation("region"),
		logging.Region(analysis.Region),
		logging.Int("total_units", analysis.TotalUnits))
	s.respondJSON(w, http.StatusOK, regionToResponse(analysis))
}

func (s *Server) handleCritical(w http.ResponseWriter, r *http.Request) {
	snap := s.currentSnapshot(w)
	if snap == nil {
		return
	}

	start := time.Now()
	ranked := cascade.RankGlobal(snap)
	s.recordAnalysis("critical", "ok", start, len(ranked))

	resp := make([]RankedUnitResponse, 0, len(ranked))
	for _, ru := range ranked {
		resp = append(resp, RankedUnitResponse{
			UnitID:           ru.UnitID,
			Name:             ru.Name,
			DirectDependents: ru.DirectDependents,
		})
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.currentSnapshot(w)
	if snap == nil {
		return
	}
	s.respondJSON(w, http.StatusOK, SnapshotResponse{
		Units:   snap.UnitCount(),
		Edges:   snap.EdgeCount(),
		BuiltAt: snap.BuiltAt(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		s.respondError(w, http.StatusServiceUnavailable, "No dataset source configured")
		return
	}

	snap, err := loader.BuildFromSource(r.Context(), s.source)
	if err != nil {
		s.metrics.RecordReload("error")
		s.logger.Error("Snapshot reload failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.store.Swap(snap)
	s.metrics.RecordReload("ok")
	s.metrics.SetSnapshotSize(snap.UnitCount(), snap.EdgeCount())
	s.logger.Info("Snapshot reloaded",
		logging.UnitCount(snap.UnitCount()),
		logging.EdgeCount(snap.EdgeCount()))

	s.respondJSON(w, http.StatusOK, ReloadResponse{
		Status: "ok",
		Units:  snap.UnitCount(),
		Edges:  snap.EdgeCount(),
	})
}

// analysisError maps analysis failures to HTTP status codes.
func (s *Server) analysisError(w http.ResponseWriter, err error) {
	switch {
	case cascade.IsNotFound(err):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cascade.ErrEmptyLocations):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, graph.ErrUnknownUnit):
		s.respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Analysis failed", logging.Error(err))
		s.respondError(w, http.StatusInternalServerError, "Analysis failed")
	}
}

func (s *Server) recordAnalysis(queryType, status string, start time.Time, visited int) {
	s.metrics.RecordAnalysis(queryType, status, time.Since(start), visited)
}
