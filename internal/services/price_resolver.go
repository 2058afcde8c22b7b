package services

import (
	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// ResolvePrice maps a product's price table and an optional caller membership
// category to the single applicable price. A caller without a category, a
// category with no mapped field, or a mapped field holding no amount all fall
// back to the general price. The returned amount may be nil when the product
// carries no price at all; that is a valid unpriced listing, not an error.
func ResolvePrice(prices domain.PriceSet, category *domain.MembershipCategory) domain.PriceQuote {
	if category != nil {
		amount, field := prices.CategoryPrice(*category)
		if field != "" && amount != nil {
			return domain.PriceQuote{Amount: amount, FieldUsed: field}
		}
	}
	return domain.PriceQuote{
		Amount:    prices.General,
		FieldUsed: domain.PriceFieldGeneral,
		General:   true,
	}
}
