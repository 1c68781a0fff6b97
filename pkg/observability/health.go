package observability

import (
	"encoding/json"
	"net/http"
	"os"
	"time"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// HealthChecker provides liveness and readiness probes. The service has no
// hard dependencies: an absent marketplaces root is a valid unconfigured
// state, so readiness reports it as degraded but never fails the probe.
type HealthChecker struct {
	marketplacesRoot string
}

// NewHealthChecker creates a health checker watching the marketplaces root.
func NewHealthChecker(marketplacesRoot string) *HealthChecker {
	return &HealthChecker{marketplacesRoot: marketplacesRoot}
}

// HealthStatus is the body returned by the readiness probe.
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus reports the state of a single dependency.
type DependencyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Liveness always returns 200 while the process is serving.
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readiness reports the marketplaces root state.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.Check()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

// Check inspects the marketplaces root.
func (h *HealthChecker) Check() HealthStatus {
	root := DependencyStatus{Status: StatusHealthy}
	overall := StatusHealthy

	if _, err := os.Stat(h.marketplacesRoot); err != nil {
		root = DependencyStatus{
			Status:  StatusDegraded,
			Message: "marketplaces root not present; no marketplaces configured",
		}
		overall = StatusDegraded
	}

	return HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Dependencies: map[string]DependencyStatus{
			"marketplaces_root": root,
		},
	}
}
