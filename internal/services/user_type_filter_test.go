package services

import (
	"testing"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

func TestPassesUserType(t *testing.T) {
	cases := []struct {
		name     string
		audience domain.AudienceType
		kind     domain.AccountKind
		want     bool
	}{
		{"account product admits accounts", domain.AudienceAccount, domain.KindAccount, true},
		{"account product excludes affiliates", domain.AudienceAccount, domain.KindAffiliate, false},
		{"affiliate product admits affiliates", domain.AudienceAffiliate, domain.KindAffiliate, true},
		{"affiliate product excludes accounts", domain.AudienceAffiliate, domain.KindAccount, false},
		{"both admits everyone", domain.AudienceBoth, domain.KindAccount, true},
		{"missing tag admits everyone", "", domain.KindAffiliate, true},
		{"unknown tag admits everyone", "LEGACY", domain.KindAccount, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := domain.Product{AudienceType: tc.audience}
			if got := PassesUserType(product, tc.kind); got != tc.want {
				t.Fatalf("PassesUserType = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilterByUserType(t *testing.T) {
	products := []domain.EnrichedProduct{
		{Product: domain.Product{ID: "p1", AudienceType: domain.AudienceAccount}},
		{Product: domain.Product{ID: "p2", AudienceType: domain.AudienceAffiliate}},
		{Product: domain.Product{ID: "p3"}},
	}

	kept := FilterByUserType(products, domain.KindAffiliate)
	if len(kept) != 2 || kept[0].ID != "p2" || kept[1].ID != "p3" {
		t.Fatalf("unexpected survivors: %#v", kept)
	}
}
