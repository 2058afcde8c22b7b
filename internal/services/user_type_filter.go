package services

import (
	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// PassesUserType reports whether the product's audience tag admits the caller's
// account kind. The predicate is total: unknown or absent tags normalise to
// BOTH and admit everyone.
func PassesUserType(product domain.Product, kind domain.AccountKind) bool {
	switch domain.NormalizeAudienceType(product.AudienceType) {
	case domain.AudienceAccount:
		return kind == domain.KindAccount
	case domain.AudienceAffiliate:
		return kind == domain.KindAffiliate
	default:
		return true
	}
}

// FilterByUserType applies the user-type predicate to an enriched candidate set.
// The predicate is pure, so this layer never degrades.
func FilterByUserType(products []domain.EnrichedProduct, kind domain.AccountKind) []domain.EnrichedProduct {
	kept := make([]domain.EnrichedProduct, 0, len(products))
	for _, product := range products {
		if PassesUserType(product.Product, kind) {
			kept = append(kept, product)
		}
	}
	return kept
}
