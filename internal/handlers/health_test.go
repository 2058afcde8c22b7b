package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

type stubSystemService struct {
	report domain.SystemHealthReport
	err    error
}

func (s *stubSystemService) HealthReport(_ context.Context) (domain.SystemHealthReport, error) {
	return s.report, s.err
}

func TestHealthz(t *testing.T) {
	h := NewHealthHandlers()

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestReadyzReportsChecks(t *testing.T) {
	generated := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	h := NewHealthHandlers(WithSystemService(&stubSystemService{report: domain.SystemHealthReport{
		Status: domain.HealthStatusOK,
		Checks: map[string]domain.SystemHealthCheck{
			"firestore": {Status: domain.HealthStatusOK, Latency: 12 * time.Millisecond},
		},
		GeneratedAt: generated,
	}}))

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status      string                    `json:"status"`
		Checks      map[string]map[string]any `json:"checks"`
		GeneratedAt string                    `json:"generatedAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Status != "ok" || body.GeneratedAt != "2026-03-10T12:00:00Z" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Checks["firestore"]["status"] != "ok" {
		t.Fatalf("unexpected checks: %#v", body.Checks)
	}
}

func TestReadyzErrorStatus(t *testing.T) {
	h := NewHealthHandlers(WithSystemService(&stubSystemService{report: domain.SystemHealthReport{
		Status: domain.HealthStatusError,
		Checks: map[string]domain.SystemHealthCheck{
			"firestore": {Status: domain.HealthStatusError, Error: "deadline exceeded"},
		},
	}}))

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestReadyzProbeFailure(t *testing.T) {
	h := NewHealthHandlers(WithSystemService(&stubSystemService{err: errors.New("collect failed")}))

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest("GET", "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] != "route_not_found" {
		t.Fatalf("unexpected body: %#v", body)
	}
}

func TestRouterMountsHealthEndpoints(t *testing.T) {
	router := NewRouter(WithHealthHandlers(NewHealthHandlers()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
