package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	"github.com/praxiscommerce/catalog-api/internal/platform/auth"
	"github.com/praxiscommerce/catalog-api/internal/platform/httpx"
	"github.com/praxiscommerce/catalog-api/internal/platform/pagination"
	"github.com/praxiscommerce/catalog-api/internal/platform/requestctx"
	"github.com/praxiscommerce/catalog-api/internal/services"
)

// ProductHandlers exposes the catalog resolution operations over HTTP.
type ProductHandlers struct {
	catalog  services.CatalogResolutionService
	pageOpts pagination.Options
}

// ProductOption customises construction of ProductHandlers.
type ProductOption func(*ProductHandlers)

// WithCatalogService injects the resolution service dependency.
func WithCatalogService(svc services.CatalogResolutionService) ProductOption {
	return func(h *ProductHandlers) {
		h.catalog = svc
	}
}

// WithPageOptions overrides the pagination bounds applied to list endpoints.
func WithPageOptions(opts pagination.Options) ProductOption {
	return func(h *ProductHandlers) {
		h.pageOpts = opts
	}
}

// NewProductHandlers constructs the product endpoints implementation.
func NewProductHandlers(opts ...ProductOption) *ProductHandlers {
	h := &ProductHandlers{
		pageOpts: pagination.Options{
			DefaultPageSize: pagination.DefaultPageSize,
			MaxPageSize:     pagination.DefaultMaxPageSize,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Routes registers the product endpoints on the supplied router group.
func (h *ProductHandlers) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/active", h.ListActive)
	r.With(auth.RequireTier(string(domain.TierAdmin))).Get("/stats", h.Stats)
	r.Get("/category/{category}", h.ListByCategory)
	r.Get("/code/{code}", h.GetByCode)
	r.Get("/{productID}", h.GetByID)
}

// List serves GET /products with the optional narrowing filters.
func (h *ProductHandlers) List(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r, h.pageOpts)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	query := services.CatalogQuery{
		OrganizationID: strings.TrimSpace(r.URL.Query().Get("organization")),
		Category:       strings.TrimSpace(r.URL.Query().Get("category")),
		OrderBy:        strings.TrimSpace(r.URL.Query().Get("orderBy")),
		Page:           params.Page,
		PageSize:       params.PageSize,
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, ok := domain.ParseProductStatus(raw)
		if !ok {
			writeQueryError(w, r, fmt.Errorf("unknown status %q", raw))
			return
		}
		query.Status = status
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 0 {
			writeQueryError(w, r, fmt.Errorf("invalid year %q", raw))
			return
		}
		query.Year = year
	}

	page, err := h.catalog.List(r.Context(), auth.CallerFromContext(r.Context()), query)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writePage(w, page)
}

// Search serves GET /products/search?q=term.
func (h *ProductHandlers) Search(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r, h.pageOpts)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		writeQueryError(w, r, errors.New("query parameter q is required"))
		return
	}

	page, err := h.catalog.Search(r.Context(), auth.CallerFromContext(r.Context()), term, params.Page, params.PageSize)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writePage(w, page)
}

// ListActive serves GET /products/active with an optional date override.
func (h *ProductHandlers) ListActive(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r, h.pageOpts)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	var at time.Time
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			writeQueryError(w, r, fmt.Errorf("invalid date %q", raw))
			return
		}
		at = parsed
	}

	page, err := h.catalog.ListActive(r.Context(), auth.CallerFromContext(r.Context()), at, params.Page, params.PageSize)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writePage(w, page)
}

// Stats serves GET /products/stats for admin callers.
func (h *ProductHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, stats)
}

// ListByCategory serves GET /products/category/{category}.
func (h *ProductHandlers) ListByCategory(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.FromRequest(r, h.pageOpts)
	if err != nil {
		writeQueryError(w, r, err)
		return
	}

	category := strings.TrimSpace(chi.URLParam(r, "category"))
	page, err := h.catalog.ListByCategory(r.Context(), auth.CallerFromContext(r.Context()), category, params.Page, params.PageSize)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	writePage(w, page)
}

// GetByID serves GET /products/{productID}.
func (h *ProductHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	product, err := h.catalog.GetByID(r.Context(), auth.CallerFromContext(r.Context()), productID)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, newProductPayload(product))
}

// GetByCode serves GET /products/code/{code}.
func (h *ProductHandlers) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(chi.URLParam(r, "code"))
	product, err := h.catalog.GetByCode(r.Context(), auth.CallerFromContext(r.Context()), code)
	if err != nil {
		writeCatalogError(w, r, err)
		return
	}
	httpx.WriteData(w, http.StatusOK, newProductPayload(product))
}

func parseDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", raw)
}

func writePage(w http.ResponseWriter, page domain.Page) {
	payload := make([]productPayload, 0, len(page.Items))
	for _, item := range page.Items {
		payload = append(payload, newProductPayload(item))
	}
	httpx.WriteDataMeta(w, http.StatusOK, payload, newMetaPayload(page.Meta))
}

func writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(r.Context(), w, httpx.NewError("invalid_query", err.Error(), http.StatusBadRequest))
}

func writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		httpx.WriteError(r.Context(), w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrInvalidQuery):
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_query", err.Error(), http.StatusBadRequest))
	default:
		requestctx.Logger(r.Context()).Error("catalog resolution failed", zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("internal_server_error", "catalog temporarily unavailable", http.StatusInternalServerError))
	}
}

// productPayload is the public response shape. The audience tag stays internal;
// it drives Layer 1 but is never exposed.
type productPayload struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	BusinessID     string  `json:"businessId"`
	OrganizationID string  `json:"organizationId,omitempty"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Category       string  `json:"category"`
	Year           int     `json:"year,omitempty"`
	Status         string  `json:"status"`
	MembershipOnly bool    `json:"membershipOnly"`
	ActiveFrom     *string `json:"activeFrom,omitempty"`
	ActiveUntil    *string `json:"activeUntil,omitempty"`
	Inventory      *int    `json:"inventory,omitempty"`
	DisplayPrice   *int64  `json:"displayPrice"`
	PriceFieldUsed string  `json:"priceFieldUsed"`
	IsGeneralPrice bool    `json:"isGeneralPrice"`
	CanPurchase    bool    `json:"canPurchase"`
}

type metaPayload struct {
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func newProductPayload(product domain.EnrichedProduct) productPayload {
	payload := productPayload{
		ID:             product.ID,
		Code:           product.Code,
		BusinessID:     product.BusinessID,
		OrganizationID: product.OrganizationID,
		Name:           product.Name,
		Description:    product.Description,
		Category:       product.Category,
		Year:           product.Year,
		Status:         string(product.Status),
		MembershipOnly: product.MembershipOnly,
		Inventory:      product.Inventory,
		DisplayPrice:   product.DisplayPrice,
		PriceFieldUsed: product.PriceFieldUsed,
		IsGeneralPrice: product.IsGeneralPrice,
		CanPurchase:    product.CanPurchase,
	}
	if product.ActiveFrom != nil {
		formatted := product.ActiveFrom.UTC().Format(time.RFC3339)
		payload.ActiveFrom = &formatted
	}
	if product.ActiveUntil != nil {
		formatted := product.ActiveUntil.UTC().Format(time.RFC3339)
		payload.ActiveUntil = &formatted
	}
	return payload
}

func newMetaPayload(meta domain.PageMeta) metaPayload {
	return metaPayload{
		CurrentPage:     meta.CurrentPage,
		ItemsPerPage:    meta.ItemsPerPage,
		TotalItems:      meta.TotalItems,
		TotalPages:      meta.TotalPages,
		HasNextPage:     meta.HasNextPage,
		HasPreviousPage: meta.HasPreviousPage,
	}
}
