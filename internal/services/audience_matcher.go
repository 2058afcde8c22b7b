package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	"github.com/praxiscommerce/catalog-api/internal/platform/requestctx"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
)

const defaultLookupWorkers = 8

// MatchesTarget reports whether the profile satisfies the target. Semantics are
// OR across attributes: a single constrained attribute containing one of the
// profile's values is enough. A fully unconstrained target is public and
// matches everyone. Empty profile values never satisfy a constrained attribute.
func MatchesTarget(profile domain.CallerProfile, target domain.AudienceTarget) bool {
	if target.Unconstrained() {
		return true
	}
	if containsFold(target.Provinces, profile.Province) {
		return true
	}
	if containsFold(target.Regions, profile.Region) {
		return true
	}
	if intersectsFold(target.PracticeAreas, profile.PracticeAreas) {
		return true
	}
	if containsFold(target.PracticeSettings, profile.PracticeSetting) {
		return true
	}
	if profile.MembershipCategory != nil {
		for _, category := range target.MembershipCategories {
			if category == *profile.MembershipCategory {
				return true
			}
		}
	}
	for _, kind := range target.AccountKinds {
		if kind == profile.Kind {
			return true
		}
	}
	if intersectsFold(target.Languages, profile.Languages) {
		return true
	}
	if intersectsFold(target.Interests, profile.Interests) {
		return true
	}
	if containsFold(target.YearsOfPractice, profile.YearsOfPractice) {
		return true
	}
	return false
}

func containsFold(set []string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, candidate := range set {
		if strings.EqualFold(strings.TrimSpace(candidate), value) {
			return true
		}
	}
	return false
}

func intersectsFold(set, values []string) bool {
	for _, value := range values {
		if containsFold(set, value) {
			return true
		}
	}
	return false
}

// AudienceMatcherDeps bundles constructor inputs for the audience matcher.
type AudienceMatcherDeps struct {
	Targets repositories.AudienceTargetRepository
	Workers int
}

type audienceMatcher struct {
	targets repositories.AudienceTargetRepository
	workers int
}

var _ AudienceFilter = (*audienceMatcher)(nil)

// NewAudienceMatcher constructs the audience-target filter layer.
func NewAudienceMatcher(deps AudienceMatcherDeps) (AudienceFilter, error) {
	if deps.Targets == nil {
		return nil, errors.New("audience matcher: target repository is required")
	}
	workers := deps.Workers
	if workers <= 0 {
		workers = defaultLookupWorkers
	}
	return &audienceMatcher{targets: deps.Targets, workers: workers}, nil
}

// Filter fetches the audience target for every candidate as a bounded
// concurrent batch, joins the lookups, and keeps the products whose target the
// profile matches. Products without a target record are public. A failed
// lookup fails open for that product only; such degradation is reported on the
// outcome and logged, never surfaced.
func (m *audienceMatcher) Filter(ctx context.Context, profile domain.CallerProfile, products []domain.EnrichedProduct) FilterOutcome {
	if len(products) == 0 {
		return FilterOutcome{Products: products}
	}

	logger := requestctx.Logger(ctx)

	type lookup struct {
		target domain.AudienceTarget
		public bool
		failed bool
	}

	var mu sync.Mutex
	lookups := make(map[string]lookup, len(products))
	var lookupErr error

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.workers)

	start := time.Now()
	for _, product := range products {
		productID := product.ID
		group.Go(func() error {
			target, err := m.targets.FindByProductID(groupCtx, productID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				lookups[productID] = lookup{target: target}
			case repositories.IsNotFound(err):
				// No target record means the product is public.
				lookups[productID] = lookup{public: true}
			default:
				lookups[productID] = lookup{failed: true}
				if lookupErr == nil {
					lookupErr = err
				}
			}
			return nil
		})
	}
	_ = group.Wait()

	kept := make([]domain.EnrichedProduct, 0, len(products))
	degraded := false
	for _, product := range products {
		result := lookups[product.ID]
		switch {
		case result.failed:
			degraded = true
			kept = append(kept, product)
		case result.public:
			kept = append(kept, product)
		case MatchesTarget(profile, result.target):
			kept = append(kept, product)
		}
	}

	if degraded {
		logger.Warn("audience target lookups degraded, failing open",
			zap.String("caller_id", profile.UserID),
			zap.Int("candidates", len(products)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(lookupErr),
		)
	}

	return FilterOutcome{Products: kept, Degraded: degraded, Err: lookupErr}
}
