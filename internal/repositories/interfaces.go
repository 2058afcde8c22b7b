package repositories

import (
	"context"
	"errors"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// IsNotFound reports whether err categorises as a missing record.
func IsNotFound(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}

// IsUnavailable reports whether err categorises as a transient backend outage.
func IsUnavailable(err error) bool {
	var repoErr RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsUnavailable()
}

// ProductQuery narrows catalog listings. Zero-valued fields impose no
// constraint; an empty OrderBy sorts by code.
type ProductQuery struct {
	OrganizationID string
	Status         domain.ProductStatus
	Category       string
	Year           int
	OrderBy        string
}

// CatalogRepository reads product records from the backing store.
type CatalogRepository interface {
	FindAll(ctx context.Context, query ProductQuery) ([]domain.Product, error)
	FindByID(ctx context.Context, productID string) (domain.Product, error)
	FindByCode(ctx context.Context, code string) (domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	FindActiveAt(ctx context.Context, at time.Time) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

// AudienceTargetRepository reads per-product audience-target records.
type AudienceTargetRepository interface {
	FindByProductID(ctx context.Context, productID string) (domain.AudienceTarget, error)
}

// AccountRepository reads account records for profile construction.
type AccountRepository interface {
	FindByID(ctx context.Context, accountID string) (domain.Account, error)
}

// MembershipRepository reads membership records for profile construction.
type MembershipRepository interface {
	FindByAccountID(ctx context.Context, accountID string) ([]domain.Membership, error)
}

// AffiliateRepository reads affiliate attribute records for profile construction.
type AffiliateRepository interface {
	FindByAccountID(ctx context.Context, accountID string) (domain.AffiliateProfile, error)
}

// HealthRepository aggregates dependency probes for readiness reporting.
type HealthRepository interface {
	Collect(ctx context.Context) (domain.SystemHealthReport, error)
}
