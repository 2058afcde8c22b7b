package services

import (
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

type purchaseEvaluator struct{}

var _ PurchaseEvaluator = purchaseEvaluator{}

// NewPurchaseEvaluator constructs the business-rules collaborator deciding the
// canPurchase flag on enriched products.
func NewPurchaseEvaluator() PurchaseEvaluator {
	return purchaseEvaluator{}
}

// CanPurchase reports whether the product is orderable at the given instant:
// AVAILABLE status, inside its active date window, and with stock remaining.
func (purchaseEvaluator) CanPurchase(product domain.Product, at time.Time) bool {
	if product.Status != domain.ProductAvailable {
		return false
	}
	if !product.ActiveAt(at) {
		return false
	}
	return product.InStock()
}
