package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/NihalNavath/Campus-Navigator/internal/domain/events"
)

// HealthCheck represents the health status of the server
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Status    string         `json:"status"`
	Message   string         `json:"message,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// HealthChecker provides health checks for the server
type HealthChecker struct {
	repo      events.Repository
	storePath string
	version   string
	gitCommit string
}

// NewHealthChecker creates a new health checker with the given dependencies.
// storePath is the events file path, probed for directory writability.
func NewHealthChecker(repo events.Repository, storePath, version, gitCommit string) *HealthChecker {
	return &HealthChecker{
		repo:      repo,
		storePath: storePath,
		version:   version,
		gitCommit: gitCommit,
	}
}

// Health returns a comprehensive health check handler
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]CheckResult{
			"store":     h.checkStore(ctx),
			"store_dir": h.checkStoreDir(),
		}

		overallStatus := "healthy"
		statusCode := http.StatusOK
		for _, check := range checks {
			if check.Status == "fail" {
				overallStatus = "unhealthy"
				statusCode = http.StatusServiceUnavailable
				break
			} else if check.Status == "warn" && overallStatus == "healthy" {
				overallStatus = "degraded"
			}
		}

		response := HealthCheck{
			Status:    overallStatus,
			Version:   h.version,
			GitCommit: h.gitCommit,
			Checks:    checks,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// checkStore verifies the events file loads and reports how many records it
// holds. Load degrades failures to an empty sequence, so a nil repo is the
// only hard failure here.
func (h *HealthChecker) checkStore(ctx context.Context) CheckResult {
	start := time.Now()

	if h.repo == nil {
		return CheckResult{
			Status:  "fail",
			Message: "Event store not initialized",
		}
	}

	records, err := h.repo.Load(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return CheckResult{
			Status:    "fail",
			Message:   "Event store read failed",
			LatencyMs: latency,
			Details:   map[string]any{"error": err.Error()},
		}
	}

	return CheckResult{
		Status:    "pass",
		Message:   "Event store readable",
		LatencyMs: latency,
		Details:   map[string]any{"events": len(records)},
	}
}

// checkStoreDir warns when the directory holding the events file does not
// exist yet. Writes create it on demand, so this is a warning, not a failure.
func (h *HealthChecker) checkStoreDir() CheckResult {
	if h.storePath == "" {
		return CheckResult{
			Status:  "warn",
			Message: "Event store path not configured",
		}
	}

	dir := filepath.Dir(h.storePath)
	info, err := os.Stat(dir)
	if err != nil {
		return CheckResult{
			Status:  "warn",
			Message: "Event store directory missing, will be created on first write",
			Details: map[string]any{"dir": dir},
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Status:  "fail",
			Message: "Event store parent is not a directory",
			Details: map[string]any{"dir": dir},
		}
	}

	return CheckResult{
		Status:  "pass",
		Message: "Event store directory present",
		Details: map[string]any{"dir": dir},
	}
}

// Healthz returns a lightweight liveness response
func Healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondHealth(w, http.StatusOK, "ok")
	})
}

// Readyz returns a readiness response
func Readyz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondHealth(w, http.StatusOK, "ready")
	})
}

type healthResponse struct {
	Status string `json:"status"`
}

func respondHealth(w http.ResponseWriter, status int, value string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: value})
}
