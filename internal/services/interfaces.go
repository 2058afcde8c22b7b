package services

import (
	"context"
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// CatalogQuery narrows a catalog listing request. Zero-valued filter fields
// impose no constraint; Page and PageSize are normalised by the orchestrator.
type CatalogQuery struct {
	OrganizationID string
	Status         domain.ProductStatus
	Category       string
	Year           int
	OrderBy        string
	Page           int
	PageSize       int
}

// CatalogStats summarises the catalog size for operational reporting.
type CatalogStats struct {
	TotalProducts     int64 `json:"totalProducts"`
	AvailableProducts int64 `json:"availableProducts"`
}

// CatalogResolutionService exposes the caller-facing catalog operations. Every
// operation resolves visibility and pricing for the supplied caller before
// returning anything.
type CatalogResolutionService interface {
	List(ctx context.Context, caller domain.Caller, query CatalogQuery) (domain.Page, error)
	GetByID(ctx context.Context, caller domain.Caller, productID string) (domain.EnrichedProduct, error)
	GetByCode(ctx context.Context, caller domain.Caller, code string) (domain.EnrichedProduct, error)
	ListByCategory(ctx context.Context, caller domain.Caller, category string, page, pageSize int) (domain.Page, error)
	Search(ctx context.Context, caller domain.Caller, term string, page, pageSize int) (domain.Page, error)
	ListActive(ctx context.Context, caller domain.Caller, at time.Time, page, pageSize int) (domain.Page, error)
	Stats(ctx context.Context) (CatalogStats, error)
}

// ProfileService builds the normalised caller profile consumed by the filter
// layers. Implementations fan out to the underlying record stores; callers
// must invoke BuildProfile at most once per resolution pass.
type ProfileService interface {
	BuildProfile(ctx context.Context, caller domain.Caller) (domain.CallerProfile, error)
}

// AudienceFilter applies audience-target matching to an enriched candidate set.
type AudienceFilter interface {
	Filter(ctx context.Context, profile domain.CallerProfile, products []domain.EnrichedProduct) FilterOutcome
}

// PurchaseEvaluator decides the canPurchase flag attached to enriched products.
type PurchaseEvaluator interface {
	CanPurchase(product domain.Product, at time.Time) bool
}

// SystemService provides health and readiness reporting.
type SystemService interface {
	HealthReport(ctx context.Context) (domain.SystemHealthReport, error)
}

// FilterOutcome is the result of one filter layer. Degraded marks a fail-open
// pass where the layer let everything through because a collaborator failed;
// Err carries that collaborator failure for logging only, never for surfacing.
type FilterOutcome struct {
	Products []domain.EnrichedProduct
	Degraded bool
	Err      error
}
