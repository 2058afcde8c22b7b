package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

type stubHealthRepository struct {
	report domain.SystemHealthReport
	err    error
}

func (s *stubHealthRepository) Collect(_ context.Context) (domain.SystemHealthReport, error) {
	return s.report, s.err
}

func TestNewSystemServiceRequiresRepository(t *testing.T) {
	if _, err := NewSystemService(SystemServiceDeps{}); err == nil {
		t.Fatalf("expected constructor error")
	}
}

func TestHealthReportFillsGeneratedAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, err := NewSystemService(SystemServiceDeps{
		HealthRepository: &stubHealthRepository{report: domain.SystemHealthReport{
			Status: domain.HealthStatusOK,
		}},
		Clock: func() time.Time {
			return now
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := svc.HealthReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.GeneratedAt != now {
		t.Fatalf("expected GeneratedAt %v, got %v", now, report.GeneratedAt)
	}
}

func TestHealthReportPropagatesFailure(t *testing.T) {
	svc, err := NewSystemService(SystemServiceDeps{
		HealthRepository: &stubHealthRepository{err: errors.New("probe wiring broken")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.HealthReport(context.Background()); err == nil {
		t.Fatalf("expected error propagated")
	}
}
