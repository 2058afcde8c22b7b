package services

import (
	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// PassesMembership reports whether the caller may see a membership-restricted
// product. Products without the restriction always pass.
func PassesMembership(product domain.Product, profile domain.CallerProfile) bool {
	if !product.MembershipOnly {
		return true
	}
	return profile.ActiveMembership
}

// FilterByMembership applies the membership gate to an enriched candidate set
// using one profile snapshot for the whole pass.
func FilterByMembership(products []domain.EnrichedProduct, profile domain.CallerProfile) []domain.EnrichedProduct {
	kept := make([]domain.EnrichedProduct, 0, len(products))
	for _, product := range products {
		if PassesMembership(product.Product, profile) {
			kept = append(kept, product)
		}
	}
	return kept
}
