// Package health provides liveness and readiness checks for the
// analyzer process.
package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/dd0wney/infragraph/pkg/graph"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check represents a health check result for a specific component
type Check struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// CheckFunc is a function that performs a health check
type CheckFunc func() Check

// Response represents the overall health response
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Checker manages liveness and readiness checks.
type Checker struct {
	mu          sync.RWMutex
	readyChecks map[string]CheckFunc
}

// NewChecker creates an empty checker. Liveness is always healthy while
// the process can serve the endpoint; readiness aggregates registered
// checks.
func NewChecker() *Checker {
	return &Checker{readyChecks: make(map[string]CheckFunc)}
}

// RegisterReadiness adds a readiness check under the given name.
func (c *Checker) RegisterReadiness(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readyChecks[name] = fn
}

// Readiness runs all readiness checks and aggregates their status: any
// unhealthy check makes the whole response unhealthy, any degraded one
// degrades it.
func (c *Checker) Readiness() Response {
	c.mu.RLock()
	defer c.mu.RUnlock()

	resp := Response{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
		Checks:    make(map[string]Check, len(c.readyChecks)),
	}
	for name, fn := range c.readyChecks {
		check := fn()
		resp.Checks[name] = check
		switch check.Status {
		case StatusUnhealthy:
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}
	return resp
}

// LivenessHandler reports the process as alive.
func (c *Checker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Status: StatusHealthy, Timestamp: time.Now()})
}

// ReadinessHandler reports aggregated readiness; unhealthy maps to 503.
func (c *Checker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	resp := c.Readiness()
	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// SnapshotCheck reports readiness of the graph store: unhealthy before
// the first snapshot lands, degraded when the snapshot has no units.
func SnapshotCheck(store *graph.Store) CheckFunc {
	return func() Check {
		snap := store.Current()
		if snap == nil {
			return Check{Name: "snapshot", Status: StatusUnhealthy, Message: "no snapshot loaded"}
		}
		if snap.UnitCount() == 0 {
			return Check{Name: "snapshot", Status: StatusDegraded, Message: "snapshot is empty"}
		}
		return Check{Name: "snapshot", Status: StatusHealthy}
	}
}
