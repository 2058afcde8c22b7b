package domain

import (
	"strings"
	"time"
)

// ProductStatus enumerates the lifecycle states a catalog product moves through.
type ProductStatus string

const (
	ProductDraft        ProductStatus = "DRAFT"
	ProductAvailable    ProductStatus = "AVAILABLE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductUnavailable  ProductStatus = "UNAVAILABLE"
)

// ParseProductStatus normalises raw input to a known status, reporting whether it matched.
func ParseProductStatus(raw string) (ProductStatus, bool) {
	switch ProductStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case ProductDraft:
		return ProductDraft, true
	case ProductAvailable:
		return ProductAvailable, true
	case ProductDiscontinued:
		return ProductDiscontinued, true
	case ProductOutOfStock:
		return ProductOutOfStock, true
	case ProductUnavailable:
		return ProductUnavailable, true
	default:
		return "", false
	}
}

// AudienceType tags the account population a product is intended for.
type AudienceType string

const (
	AudienceAccount   AudienceType = "OT_OTA"
	AudienceAffiliate AudienceType = "AFFILIATE"
	AudienceBoth      AudienceType = "BOTH"
)

// NormalizeAudienceType maps the zero value (and any unknown tag) to BOTH so the
// user-type predicate stays total.
func NormalizeAudienceType(t AudienceType) AudienceType {
	switch t {
	case AudienceAccount, AudienceAffiliate:
		return t
	default:
		return AudienceBoth
	}
}

// Product is the read-mostly catalog record owned by the catalog repository.
// Nil pointer fields mean "absent": an absent inventory is unlimited, an absent
// date bound is unbounded on that side.
type Product struct {
	ID             string
	Code           string
	BusinessID     string
	OrganizationID string
	Name           string
	Description    string
	Category       string
	Year           int
	Status         ProductStatus
	AudienceType   AudienceType
	MembershipOnly bool
	ActiveFrom     *time.Time
	ActiveUntil    *time.Time
	Inventory      *int
	Prices         PriceSet
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ActiveAt reports whether the product's date window contains the given instant.
// A missing bound is open on that side.
func (p Product) ActiveAt(at time.Time) bool {
	if p.ActiveFrom != nil && at.Before(*p.ActiveFrom) {
		return false
	}
	if p.ActiveUntil != nil && at.After(*p.ActiveUntil) {
		return false
	}
	return true
}

// InStock reports whether at least one unit can still be ordered. A nil inventory
// counts as unlimited.
func (p Product) InStock() bool {
	return p.Inventory == nil || *p.Inventory > 0
}

// EnrichedProduct combines a product with the price and eligibility computed for one
// specific caller context. Instances are built fresh on every resolution pass and
// never persisted.
type EnrichedProduct struct {
	Product

	DisplayPrice   *int64
	PriceFieldUsed string
	IsGeneralPrice bool
	CanPurchase    bool
}
