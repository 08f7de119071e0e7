package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// pinger defines the minimal interface for dependency health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// Component is a named dependency checked by the readiness and health probes.
type Component struct {
	Name   string
	Pinger pinger
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components []Component
	version    string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, components ...Component) *HealthHandler {
	return &HealthHandler{components: components, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Routes returns a mux serving /live, /ready and /health.
func (h *HealthHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
	return mux
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings every component: 200 if all are up,
// 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	for _, c := range h.components {
		if err := c.Pinger.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Pings each component with latency
// measurement and includes version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, len(h.components))
	overallStatus := "ok"

	for _, c := range h.components {
		start := time.Now()
		err := c.Pinger.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components[c.Name] = CompStatus{Status: "down"}
			overallStatus = "down"
			continue
		}
		components[c.Name] = CompStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
