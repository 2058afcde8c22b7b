package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	"github.com/praxiscommerce/catalog-api/internal/platform/cache"
	"github.com/praxiscommerce/catalog-api/internal/platform/requestctx"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
)

const (
	defaultListTTL  = 30 * time.Second
	defaultItemTTL  = 90 * time.Second
	defaultPageSize = 12
	defaultMaxPage  = 100
)

// orderableFields is the closed set of list sort fields callers may request.
var orderableFields = map[string]struct{}{
	"code":      {},
	"name":      {},
	"year":      {},
	"createdAt": {},
}

// CatalogResolutionDeps bundles constructor inputs for the resolution orchestrator.
type CatalogResolutionDeps struct {
	Catalog  repositories.CatalogRepository
	Cache    cache.Store
	Profiles ProfileService
	Audience AudienceFilter
	Purchase PurchaseEvaluator

	ListTTL         time.Duration
	ItemTTL         time.Duration
	DefaultPageSize int
	MaxPageSize     int
	Clock           func() time.Time
}

type catalogResolutionService struct {
	catalog  repositories.CatalogRepository
	cache    cache.Store
	profiles ProfileService
	audience AudienceFilter
	purchase PurchaseEvaluator

	listTTL         time.Duration
	itemTTL         time.Duration
	defaultPageSize int
	maxPageSize     int
	clock           func() time.Time
}

var _ CatalogResolutionService = (*catalogResolutionService)(nil)

// NewCatalogResolutionService constructs the orchestrator composing cache,
// enrichment, the three filter layers, and pagination.
func NewCatalogResolutionService(deps CatalogResolutionDeps) (CatalogResolutionService, error) {
	if deps.Catalog == nil {
		return nil, errors.New("catalog resolution: catalog repository is required")
	}
	if deps.Cache == nil {
		return nil, errors.New("catalog resolution: cache store is required")
	}
	if deps.Profiles == nil {
		return nil, errors.New("catalog resolution: profile service is required")
	}
	if deps.Audience == nil {
		return nil, errors.New("catalog resolution: audience filter is required")
	}
	if deps.Purchase == nil {
		deps.Purchase = NewPurchaseEvaluator()
	}
	if deps.ListTTL <= 0 {
		deps.ListTTL = defaultListTTL
	}
	if deps.ItemTTL <= 0 {
		deps.ItemTTL = defaultItemTTL
	}
	if deps.DefaultPageSize <= 0 {
		deps.DefaultPageSize = defaultPageSize
	}
	if deps.MaxPageSize <= 0 {
		deps.MaxPageSize = defaultMaxPage
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &catalogResolutionService{
		catalog:         deps.Catalog,
		cache:           deps.Cache,
		profiles:        deps.Profiles,
		audience:        deps.Audience,
		purchase:        deps.Purchase,
		listTTL:         deps.ListTTL,
		itemTTL:         deps.ItemTTL,
		defaultPageSize: deps.DefaultPageSize,
		maxPageSize:     deps.MaxPageSize,
		clock:           clock,
	}, nil
}

// List resolves the filtered, priced, paginated catalog for the caller.
func (s *catalogResolutionService) List(ctx context.Context, caller domain.Caller, query CatalogQuery) (domain.Page, error) {
	query.OrderBy = strings.TrimSpace(query.OrderBy)
	if query.OrderBy != "" {
		if _, ok := orderableFields[query.OrderBy]; !ok {
			return domain.Page{}, fmt.Errorf("%w: unknown orderBy field %q", ErrInvalidQuery, query.OrderBy)
		}
	}

	effective := query
	if !caller.Tier.Privileged() {
		// Non-privileged callers only ever see AVAILABLE products inside
		// their active window, so the fetch itself is constrained.
		if effective.Status != "" && effective.Status != domain.ProductAvailable {
			return domain.Paginate(nil, query.Page, s.pageSize(query.PageSize)), nil
		}
		effective.Status = domain.ProductAvailable
	}

	fetch := func(ctx context.Context) ([]domain.Product, error) {
		return s.cachedList(ctx, effective)
	}
	return s.resolveList(ctx, caller, query.Page, query.PageSize, fetch)
}

// ListByCategory resolves the catalog slice belonging to one category.
func (s *catalogResolutionService) ListByCategory(ctx context.Context, caller domain.Caller, category string, page, pageSize int) (domain.Page, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return domain.Page{}, fmt.Errorf("%w: category is required", ErrInvalidQuery)
	}
	return s.List(ctx, caller, CatalogQuery{Category: category, Page: page, PageSize: pageSize})
}

// Search resolves products matching a free-text term. Results are never cached
// because the term space is unbounded.
func (s *catalogResolutionService) Search(ctx context.Context, caller domain.Caller, term string, page, pageSize int) (domain.Page, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.Page{}, fmt.Errorf("%w: search term is required", ErrInvalidQuery)
	}

	fetch := func(ctx context.Context) ([]domain.Product, error) {
		products, err := s.catalog.Search(ctx, term)
		if err != nil {
			return nil, s.fatal("search", err)
		}
		return s.constrainForTier(caller, products), nil
	}
	return s.resolveList(ctx, caller, page, pageSize, fetch)
}

// ListActive resolves products orderable at the given instant.
func (s *catalogResolutionService) ListActive(ctx context.Context, caller domain.Caller, at time.Time, page, pageSize int) (domain.Page, error) {
	if at.IsZero() {
		at = s.clock()
	}

	fetch := func(ctx context.Context) ([]domain.Product, error) {
		products, err := s.catalog.FindActiveAt(ctx, at)
		if err != nil {
			return nil, s.fatal("findActive", err)
		}
		return products, nil
	}
	return s.resolveList(ctx, caller, page, pageSize, fetch)
}

// GetByID resolves one product by identifier. A product the caller is not
// entitled to see reports not-found, indistinguishable from a missing record.
func (s *catalogResolutionService) GetByID(ctx context.Context, caller domain.Caller, productID string) (domain.EnrichedProduct, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.EnrichedProduct{}, fmt.Errorf("%w: product id is required", ErrInvalidQuery)
	}

	product, err := s.cachedItem(ctx, cache.ItemIDKey(productID), func(ctx context.Context) (domain.Product, error) {
		return s.catalog.FindByID(ctx, productID)
	})
	if err != nil {
		return domain.EnrichedProduct{}, err
	}
	return s.resolveItem(ctx, caller, product)
}

// GetByCode resolves one product by its human-readable code.
func (s *catalogResolutionService) GetByCode(ctx context.Context, caller domain.Caller, code string) (domain.EnrichedProduct, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.EnrichedProduct{}, fmt.Errorf("%w: code is required", ErrInvalidQuery)
	}

	product, err := s.cachedItem(ctx, cache.ItemCodeKey(code), func(ctx context.Context) (domain.Product, error) {
		return s.catalog.FindByCode(ctx, code)
	})
	if err != nil {
		return domain.EnrichedProduct{}, err
	}
	return s.resolveItem(ctx, caller, product)
}

// Stats reports raw catalog counts. The counts ignore visibility filtering,
// which is why the operation is reserved for privileged callers upstream.
func (s *catalogResolutionService) Stats(ctx context.Context) (CatalogStats, error) {
	var stats CatalogStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.catalog.Count(ctx)
		if err != nil {
			return s.fatal("count", err)
		}
		stats.TotalProducts = total
		return nil
	})
	g.Go(func() error {
		available, err := s.catalog.CountAvailable(ctx)
		if err != nil {
			return s.fatal("countAvailable", err)
		}
		stats.AvailableProducts = available
		return nil
	})
	if err := g.Wait(); err != nil {
		return CatalogStats{}, err
	}
	return stats, nil
}

// resolveList runs the funnel: the supplied fetch produces candidates, each is
// enriched, the filter branch runs, and the survivors are paginated.
func (s *catalogResolutionService) resolveList(ctx context.Context, caller domain.Caller, page, pageSize int, fetch func(context.Context) ([]domain.Product, error)) (domain.Page, error) {
	logger := requestctx.Logger(ctx).With(
		zap.String("pass_id", ulid.Make().String()),
	)
	ctx = requestctx.WithLogger(ctx, logger)

	products, err := fetch(ctx)
	if err != nil {
		return domain.Page{}, err
	}

	now := s.clock()
	if !caller.Tier.Privileged() {
		products = filterActiveWindow(products, now)
	}

	profile, profileOK := s.buildProfile(ctx, caller)
	enriched := s.enrich(products, profile, now)

	filtered := s.applyFilters(ctx, caller, profile, profileOK, enriched)
	return domain.Paginate(filtered, page, s.pageSize(pageSize)), nil
}

func (s *catalogResolutionService) resolveItem(ctx context.Context, caller domain.Caller, product domain.Product) (domain.EnrichedProduct, error) {
	now := s.clock()
	if !caller.Tier.Privileged() {
		if product.Status != domain.ProductAvailable || !product.ActiveAt(now) {
			return domain.EnrichedProduct{}, ErrProductNotFound
		}
	}

	profile, profileOK := s.buildProfile(ctx, caller)
	enriched := s.enrich([]domain.Product{product}, profile, now)

	filtered := s.applyFilters(ctx, caller, profile, profileOK, enriched)
	if len(filtered) == 0 {
		return domain.EnrichedProduct{}, ErrProductNotFound
	}
	return filtered[0], nil
}

// applyFilters runs the privilege branch: admin and main tiers bypass every
// layer, anonymous callers have nothing to filter by, and self-service callers
// go through Layer 1, 1.5, and 2 in that order. The user-type layer needs only
// the caller kind and always runs; a failed profile build fails only the
// membership and audience layers open.
func (s *catalogResolutionService) applyFilters(ctx context.Context, caller domain.Caller, profile domain.CallerProfile, profileOK bool, enriched []domain.EnrichedProduct) []domain.EnrichedProduct {
	if caller.Tier.Privileged() || caller.Anonymous() {
		return enriched
	}

	filtered := FilterByUserType(enriched, caller.Kind)
	if !profileOK {
		return filtered
	}

	logger := requestctx.Logger(ctx)

	filtered = FilterByMembership(filtered, profile)

	outcome := s.audience.Filter(ctx, profile, filtered)
	if outcome.Degraded {
		logger.Warn("audience filter degraded",
			zap.String("caller_id", caller.ID),
			zap.Int("candidates", len(filtered)),
		)
	}
	return outcome.Products
}

// buildProfile fetches the caller profile once per pass. Failure is the
// fail-open path: it is logged and reported via the second return, and the
// zero-valued profile keeps price resolution on the general field.
func (s *catalogResolutionService) buildProfile(ctx context.Context, caller domain.Caller) (domain.CallerProfile, bool) {
	if caller.Anonymous() {
		return domain.CallerProfile{}, false
	}

	profile, err := s.profiles.BuildProfile(ctx, caller)
	if err != nil {
		requestctx.Logger(ctx).Warn("profile build failed, failing open",
			zap.String("caller_id", caller.ID),
			zap.String("caller_kind", string(caller.Kind)),
			zap.Error(err),
		)
		return domain.CallerProfile{}, false
	}
	return profile, true
}

func (s *catalogResolutionService) enrich(products []domain.Product, profile domain.CallerProfile, now time.Time) []domain.EnrichedProduct {
	enriched := make([]domain.EnrichedProduct, 0, len(products))
	for _, product := range products {
		quote := ResolvePrice(product.Prices, profile.MembershipCategory)
		enriched = append(enriched, domain.EnrichedProduct{
			Product:        product,
			DisplayPrice:   quote.Amount,
			PriceFieldUsed: quote.FieldUsed,
			IsGeneralPrice: quote.General,
			CanPurchase:    s.purchase.CanPurchase(product, now),
		})
	}
	return enriched
}

// cachedList reads the product list through the cache under the effective
// query's key. Cache failures are ignored; the repository remains the source
// of truth.
func (s *catalogResolutionService) cachedList(ctx context.Context, query CatalogQuery) ([]domain.Product, error) {
	key := cache.ListKey(query.OrganizationID, string(query.Status), query.Category, query.Year, query.OrderBy)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var products []domain.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.catalog.FindAll(ctx, repositories.ProductQuery{
		OrganizationID: query.OrganizationID,
		Status:         query.Status,
		Category:       query.Category,
		Year:           query.Year,
		OrderBy:        query.OrderBy,
	})
	if err != nil {
		return nil, s.fatal("findAll", err)
	}

	if raw, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, key, raw, s.listTTL)
	}
	return products, nil
}

func (s *catalogResolutionService) cachedItem(ctx context.Context, key string, fetch func(context.Context) (domain.Product, error)) (domain.Product, error) {
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var product domain.Product
		if err := json.Unmarshal(raw, &product); err == nil {
			return product, nil
		}
	}

	product, err := fetch(ctx)
	if err != nil {
		if repositories.IsNotFound(err) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, s.fatal("findItem", err)
	}

	if raw, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, key, raw, s.itemTTL)
	}
	return product, nil
}

// constrainForTier narrows an uncached fetch result the same way the
// constrained list fetch would.
func (s *catalogResolutionService) constrainForTier(caller domain.Caller, products []domain.Product) []domain.Product {
	if caller.Tier.Privileged() {
		return products
	}
	kept := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if product.Status == domain.ProductAvailable {
			kept = append(kept, product)
		}
	}
	return kept
}

func filterActiveWindow(products []domain.Product, now time.Time) []domain.Product {
	kept := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if product.ActiveAt(now) {
			kept = append(kept, product)
		}
	}
	return kept
}

func (s *catalogResolutionService) pageSize(requested int) int {
	if requested <= 0 {
		return s.defaultPageSize
	}
	if requested > s.maxPageSize {
		return s.maxPageSize
	}
	return requested
}

// fatal wraps a repository failure for the surfaced error path, keeping the
// original message for diagnostics without exposing it verbatim downstream.
func (s *catalogResolutionService) fatal(op string, err error) error {
	if repositories.IsNotFound(err) {
		return ErrProductNotFound
	}
	return fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, op, err)
}
