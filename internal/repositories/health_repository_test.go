package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

func TestNewDependencyHealthRepositoryValidation(t *testing.T) {
	cases := []struct {
		name   string
		checks []DependencyCheck
	}{
		{"empty check set", nil},
		{"missing name", []DependencyCheck{{Check: func(context.Context) error { return nil }}}},
		{"missing function", []DependencyCheck{{Name: "firestore"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDependencyHealthRepository(tc.checks); err == nil {
				t.Fatalf("expected constructor error")
			}
		})
	}
}

func TestCollectHealthyChecks(t *testing.T) {
	repo, err := NewDependencyHealthRepository([]DependencyCheck{
		{Name: "firestore", Check: func(context.Context) error { return nil }},
		{Name: "cache", Check: func(context.Context) error { return nil }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := repo.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != domain.HealthStatusOK {
		t.Fatalf("expected ok status, got %q", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(report.Checks))
	}
	if report.GeneratedAt.IsZero() {
		t.Fatalf("expected GeneratedAt to be set")
	}
}

func TestCollectFailingCheckDegradesReport(t *testing.T) {
	repo, err := NewDependencyHealthRepository([]DependencyCheck{
		{Name: "firestore", Check: func(context.Context) error { return nil }},
		{Name: "cache", Check: func(context.Context) error { return errors.New("connection refused") }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := repo.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != domain.HealthStatusDegraded {
		t.Fatalf("expected degraded status, got %q", report.Status)
	}
	check := report.Checks["cache"]
	if check.Status != domain.HealthStatusDegraded || check.Error != "connection refused" {
		t.Fatalf("unexpected check: %+v", check)
	}
}

func TestCollectTimedOutCheckReportsError(t *testing.T) {
	repo, err := NewDependencyHealthRepository([]DependencyCheck{
		{
			Name:    "slow",
			Timeout: 10 * time.Millisecond,
			Check: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := repo.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Status != domain.HealthStatusError {
		t.Fatalf("expected error status, got %q", report.Status)
	}
	if report.Checks["slow"].Detail != "timeout" {
		t.Fatalf("unexpected detail: %+v", report.Checks["slow"])
	}
}
