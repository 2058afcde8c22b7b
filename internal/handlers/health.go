package handlers

import (
	"net/http"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	"github.com/praxiscommerce/catalog-api/internal/platform/httpx"
	"github.com/praxiscommerce/catalog-api/internal/services"
)

// HealthHandlers serves liveness and readiness endpoints.
type HealthHandlers struct {
	system  services.SystemService
	started time.Time
}

// HealthOption customises construction of HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithSystemService injects the readiness reporting service.
func WithSystemService(svc services.SystemService) HealthOption {
	return func(h *HealthHandlers) {
		h.system = svc
	}
}

// NewHealthHandlers constructs the health endpoints implementation.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{started: time.Now().UTC()}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Healthz reports process liveness.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Readyz probes backing dependencies and reports readiness.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.system == nil {
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		return
	}

	report, err := h.system.HealthReport(r.Context())
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("readiness_failed", "readiness probes failed", http.StatusServiceUnavailable))
		return
	}

	status := http.StatusOK
	if report.Status == domain.HealthStatusError {
		status = http.StatusServiceUnavailable
	}

	checks := make(map[string]any, len(report.Checks))
	for name, check := range report.Checks {
		entry := map[string]any{
			"status":  string(check.Status),
			"latency": check.Latency.String(),
		}
		if check.Error != "" {
			entry["error"] = check.Error
		}
		checks[name] = entry
	}

	httpx.WriteJSON(w, status, map[string]any{
		"status":      string(report.Status),
		"checks":      checks,
		"generatedAt": report.GeneratedAt.UTC().Format(time.RFC3339),
	})
}
