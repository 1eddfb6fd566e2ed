// Package api exposes the cascade analyzer over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dd0wney/infragraph/pkg/graph"
	"github.com/dd0wney/infragraph/pkg/health"
	"github.com/dd0wney/infragraph/pkg/loader"
	"github.com/dd0wney/infragraph/pkg/logging"
	"github.com/dd0wney/infragraph/pkg/metrics"
)

// AnalysisOptions bounds analysis output sizes.
type AnalysisOptions struct {
	ChainLimit  int
	TopCritical int
}

// Server handles analysis HTTP requests against the current snapshot.
type Server struct {
	store   *graph.Store
	source  loader.Source
	opts    AnalysisOptions
	logger  logging.Logger
	metrics *metrics.Registry
	health  *health.Checker
}

// NewServer wires the analysis engine, dataset source, and observability
// into an HTTP server. source may be nil when reloads are not needed
// (tests, static datasets).
func NewServer(store *graph.Store, source loader.Source, opts AnalysisOptions, logger logging.Logger, m *metrics.Registry, checker *health.Checker) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if m == nil {
		m = metrics.NewRegistry()
	}
	if checker == nil {
		checker = health.NewChecker()
		checker.RegisterReadiness("snapshot", health.SnapshotCheck(store))
	}
	return &Server{
		store:   store,
		source:  source,
		opts:    opts,
		logger:  logger.With(logging.Component("api")),
		metrics: m,
		health:  checker,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	// Analysis endpoints
	router.HandleFunc("/api/v1/analysis/root-cause", s.handleRootCause).Methods("POST")
	router.HandleFunc("/api/v1/analysis/region", s.handleRegion).Methods("POST")
	router.HandleFunc("/api/v1/analysis/critical", s.handleCritical).Methods("GET")

	// Snapshot endpoints
	router.HandleFunc("/api/v1/snapshot", s.handleSnapshot).Methods("GET")
	router.HandleFunc("/admin/reload", s.handleReload).Methods("POST")

	// Operational endpoints
	router.HandleFunc("/health", s.health.LivenessHandler).Methods("GET")
	router.HandleFunc("/health/ready", s.health.ReadinessHandler).Methods("GET")
	router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	router.Use(corsMiddleware)
	router.Use(s.requestMiddleware)

	return router
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
