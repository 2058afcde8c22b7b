package services

import (
	"context"
	"testing"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

type stubTargetRepository struct {
	targets map[string]domain.AudienceTarget
	errs    map[string]error
}

func (s *stubTargetRepository) FindByProductID(_ context.Context, productID string) (domain.AudienceTarget, error) {
	if err, ok := s.errs[productID]; ok {
		return domain.AudienceTarget{}, err
	}
	target, ok := s.targets[productID]
	if !ok {
		return domain.AudienceTarget{}, stubRepoError{notFound: true}
	}
	return target, nil
}

func TestMatchesTarget(t *testing.T) {
	practising := domain.CategoryPractising

	profile := domain.CallerProfile{
		UserID:             "acc_1",
		Kind:               domain.KindAccount,
		MembershipCategory: &practising,
		Province:           "QC",
		Region:             "Montreal",
		PracticeSetting:    "hospital",
		PracticeAreas:      []string{"pediatrics"},
		Languages:          []string{"fr", "en"},
		Interests:          []string{"research"},
		YearsOfPractice:    "5-10",
	}

	cases := []struct {
		name    string
		profile domain.CallerProfile
		target  domain.AudienceTarget
		want    bool
	}{
		{
			name:    "unconstrained target is public",
			profile: domain.CallerProfile{},
			target:  domain.AudienceTarget{},
			want:    true,
		},
		{
			name:    "province match suffices",
			profile: profile,
			target:  domain.AudienceTarget{Provinces: []string{"ON", "QC"}},
			want:    true,
		},
		{
			name:    "province mismatch alone fails",
			profile: profile,
			target:  domain.AudienceTarget{Provinces: []string{"ON"}},
			want:    false,
		},
		{
			name:    "any single attribute match admits",
			profile: profile,
			target: domain.AudienceTarget{
				Provinces: []string{"ON"},
				Languages: []string{"fr"},
			},
			want: true,
		},
		{
			name:    "matching is case-insensitive",
			profile: profile,
			target:  domain.AudienceTarget{Provinces: []string{"qc"}},
			want:    true,
		},
		{
			name:    "membership category match",
			profile: profile,
			target:  domain.AudienceTarget{MembershipCategories: []domain.MembershipCategory{domain.CategoryPractising}},
			want:    true,
		},
		{
			name:    "account kind match",
			profile: profile,
			target:  domain.AudienceTarget{AccountKinds: []domain.AccountKind{domain.KindAccount}},
			want:    true,
		},
		{
			name:    "years of practice match",
			profile: profile,
			target:  domain.AudienceTarget{YearsOfPractice: []string{"5-10"}},
			want:    true,
		},
		{
			name:    "empty profile value never satisfies a constraint",
			profile: domain.CallerProfile{UserID: "acc_2", Kind: domain.KindAccount},
			target:  domain.AudienceTarget{Provinces: []string{"QC", ""}},
			want:    false,
		},
		{
			name:    "nil membership category cannot match category constraint",
			profile: domain.CallerProfile{UserID: "acc_2", Kind: domain.KindAccount},
			target:  domain.AudienceTarget{MembershipCategories: []domain.MembershipCategory{domain.CategoryPractising}},
			want:    false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesTarget(tc.profile, tc.target); got != tc.want {
				t.Fatalf("MatchesTarget = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAudienceMatcherFilter(t *testing.T) {
	profile := domain.CallerProfile{
		UserID:   "acc_1",
		Kind:     domain.KindAccount,
		Province: "QC",
	}

	enriched := func(ids ...string) []domain.EnrichedProduct {
		out := make([]domain.EnrichedProduct, 0, len(ids))
		for _, id := range ids {
			out = append(out, domain.EnrichedProduct{Product: domain.Product{ID: id}})
		}
		return out
	}

	t.Run("keeps matching and public products", func(t *testing.T) {
		repo := &stubTargetRepository{targets: map[string]domain.AudienceTarget{
			"match":    {Provinces: []string{"QC"}},
			"mismatch": {Provinces: []string{"ON"}},
		}}
		matcher, err := NewAudienceMatcher(AudienceMatcherDeps{Targets: repo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		outcome := matcher.Filter(context.Background(), profile, enriched("match", "mismatch", "untargeted"))
		if outcome.Degraded || outcome.Err != nil {
			t.Fatalf("unexpected degradation: %+v", outcome)
		}
		if len(outcome.Products) != 2 {
			t.Fatalf("expected 2 survivors, got %d", len(outcome.Products))
		}
		if outcome.Products[0].ID != "match" || outcome.Products[1].ID != "untargeted" {
			t.Fatalf("expected candidate order preserved, got %#v", outcome.Products)
		}
	})

	t.Run("failed lookup fails open for that product only", func(t *testing.T) {
		repo := &stubTargetRepository{
			targets: map[string]domain.AudienceTarget{
				"mismatch": {Provinces: []string{"ON"}},
			},
			errs: map[string]error{
				"broken": stubRepoError{unavailable: true},
			},
		}
		matcher, err := NewAudienceMatcher(AudienceMatcherDeps{Targets: repo, Workers: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		outcome := matcher.Filter(context.Background(), profile, enriched("broken", "mismatch"))
		if !outcome.Degraded {
			t.Fatalf("expected degraded outcome")
		}
		if outcome.Err == nil {
			t.Fatalf("expected lookup error recorded")
		}
		if len(outcome.Products) != 1 || outcome.Products[0].ID != "broken" {
			t.Fatalf("expected only the failed lookup kept, got %#v", outcome.Products)
		}
	})

	t.Run("empty candidate set short-circuits", func(t *testing.T) {
		matcher, err := NewAudienceMatcher(AudienceMatcherDeps{Targets: &stubTargetRepository{}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcome := matcher.Filter(context.Background(), profile, nil)
		if len(outcome.Products) != 0 || outcome.Degraded {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("requires target repository", func(t *testing.T) {
		if _, err := NewAudienceMatcher(AudienceMatcherDeps{}); err == nil {
			t.Fatalf("expected constructor error")
		}
	})
}
