package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	pfirestore "github.com/praxiscommerce/catalog-api/internal/platform/firestore"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
)

const defaultProductsCollection = "products"

// orderFields maps caller-facing sort names to the stored field names.
var orderFields = map[string]string{
	"code":      "code",
	"name":      "name",
	"year":      "year",
	"createdAt": "createdAt",
}

// ProductRepository reads catalog product documents from Firestore.
type ProductRepository struct {
	base *pfirestore.BaseRepository[domain.Product]
}

var _ repositories.CatalogRepository = (*ProductRepository)(nil)

// NewProductRepository constructs a Firestore-backed catalog repository.
func NewProductRepository(provider *pfirestore.Provider, collection string) (*ProductRepository, error) {
	if provider == nil {
		return nil, errors.New("product repository: firestore provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultProductsCollection
	}

	decoder := func(_ context.Context, snap *firestore.DocumentSnapshot) (domain.Product, error) {
		var doc productDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.Product{}, err
		}
		doc.id = snap.Ref.ID
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = snap.CreateTime
		}
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = snap.UpdateTime
		}
		return decodeProductDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.Product](provider, collection, decoder)
	return &ProductRepository{base: base}, nil
}

// FindAll lists products under the given narrowing query, ordered by the
// requested field or by code when none is given.
func (r *ProductRepository) FindAll(ctx context.Context, query repositories.ProductQuery) ([]domain.Product, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("product repository not initialised")
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		if query.OrganizationID != "" {
			q = q.Where("organizationId", "==", query.OrganizationID)
		}
		if query.Status != "" {
			q = q.Where("status", "==", string(query.Status))
		}
		if query.Category != "" {
			q = q.Where("category", "==", query.Category)
		}
		if query.Year > 0 {
			q = q.Where("year", "==", query.Year)
		}
		field, ok := orderFields[query.OrderBy]
		if !ok {
			field = "code"
		}
		return q.OrderBy(field, firestore.Asc)
	})
	if err != nil {
		return nil, err
	}
	return productsFromDocs(docs), nil
}

// Count reports the total number of product documents.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	if r == nil || r.base == nil {
		return 0, errors.New("product repository not initialised")
	}
	return r.base.Count(ctx, nil)
}

// CountAvailable reports how many products are currently in the AVAILABLE status.
func (r *ProductRepository) CountAvailable(ctx context.Context) (int64, error) {
	if r == nil || r.base == nil {
		return 0, errors.New("product repository not initialised")
	}
	return r.base.Count(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("status", "==", string(domain.ProductAvailable))
	})
}

// FindByID loads one product by its document identifier.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	if r == nil || r.base == nil {
		return domain.Product{}, errors.New("product repository not initialised")
	}
	doc, err := r.base.Get(ctx, strings.TrimSpace(productID))
	if err != nil {
		return domain.Product{}, err
	}
	return doc.Data, nil
}

// FindByCode loads one product by its human-readable code.
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (domain.Product, error) {
	if r == nil || r.base == nil {
		return domain.Product{}, errors.New("product repository not initialised")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Product{}, errors.New("product repository: code is required")
	}
	doc, err := r.base.QueryFirst(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("code", "==", code)
	})
	if err != nil {
		return domain.Product{}, err
	}
	return doc.Data, nil
}

// FindByCategory lists products belonging to a category, ordered by code.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("product repository not initialised")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, errors.New("product repository: category is required")
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("category", "==", category).OrderBy("code", firestore.Asc)
	})
	if err != nil {
		return nil, err
	}
	return productsFromDocs(docs), nil
}

// Search matches products whose indexed search terms contain the lowercased term.
func (r *ProductRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("product repository not initialised")
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, errors.New("product repository: search term is required")
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("searchTerms", "array-contains", term)
	})
	if err != nil {
		return nil, err
	}
	return productsFromDocs(docs), nil
}

// FindActiveAt lists AVAILABLE products whose date window contains the instant.
// The window check happens client side because the two bounds live on separate
// fields and either may be absent.
func (r *ProductRepository) FindActiveAt(ctx context.Context, at time.Time) ([]domain.Product, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("product repository not initialised")
	}
	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("status", "==", string(domain.ProductAvailable)).OrderBy("code", firestore.Asc)
	})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.ActiveAt(at) {
			products = append(products, doc.Data)
		}
	}
	return products, nil
}

func productsFromDocs(docs []pfirestore.Document[domain.Product]) []domain.Product {
	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.Data)
	}
	return products
}
