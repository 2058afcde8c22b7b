package domain

import (
	"testing"
	"time"
)

func TestProductActiveAt(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	cases := []struct {
		name    string
		product Product
		want    bool
	}{
		{"no bounds", Product{}, true},
		{"inside window", Product{ActiveFrom: &before, ActiveUntil: &after}, true},
		{"before start", Product{ActiveFrom: &after}, false},
		{"after end", Product{ActiveUntil: &before}, false},
		{"open-ended start", Product{ActiveUntil: &after}, true},
		{"open-ended end", Product{ActiveFrom: &before}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.product.ActiveAt(now); got != tc.want {
				t.Fatalf("ActiveAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProductInStock(t *testing.T) {
	zero := 0
	three := 3

	if !(Product{}).InStock() {
		t.Fatalf("nil inventory should count as unlimited")
	}
	if (Product{Inventory: &zero}).InStock() {
		t.Fatalf("zero inventory should report out of stock")
	}
	if !(Product{Inventory: &three}).InStock() {
		t.Fatalf("positive inventory should report in stock")
	}
}

func TestParseProductStatus(t *testing.T) {
	if status, ok := ParseProductStatus(" available "); !ok || status != ProductAvailable {
		t.Fatalf("expected AVAILABLE, got %q ok=%v", status, ok)
	}
	if _, ok := ParseProductStatus("archived"); ok {
		t.Fatalf("expected unknown status to fail parsing")
	}
}

func TestNormalizeAudienceType(t *testing.T) {
	if got := NormalizeAudienceType(AudienceAccount); got != AudienceAccount {
		t.Fatalf("expected OT_OTA preserved, got %q", got)
	}
	if got := NormalizeAudienceType(""); got != AudienceBoth {
		t.Fatalf("expected empty tag normalised to BOTH, got %q", got)
	}
	if got := NormalizeAudienceType("LEGACY"); got != AudienceBoth {
		t.Fatalf("expected unknown tag normalised to BOTH, got %q", got)
	}
}
