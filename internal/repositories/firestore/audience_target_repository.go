package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
	pfirestore "github.com/praxiscommerce/catalog-api/internal/platform/firestore"
	"github.com/praxiscommerce/catalog-api/internal/repositories"
)

const defaultTargetsCollection = "productAudienceTargets"

// AudienceTargetRepository reads audience-target documents keyed by product.
// Documents are stored under the product identifier, so missing documents are
// the common case and map to a not-found error the matcher treats as public.
type AudienceTargetRepository struct {
	base *pfirestore.BaseRepository[domain.AudienceTarget]
}

var _ repositories.AudienceTargetRepository = (*AudienceTargetRepository)(nil)

// NewAudienceTargetRepository constructs a Firestore-backed target repository.
func NewAudienceTargetRepository(provider *pfirestore.Provider, collection string) (*AudienceTargetRepository, error) {
	if provider == nil {
		return nil, errors.New("audience target repository: firestore provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultTargetsCollection
	}

	decoder := func(_ context.Context, snap *firestore.DocumentSnapshot) (domain.AudienceTarget, error) {
		var doc targetDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.AudienceTarget{}, err
		}
		doc.productID = snap.Ref.ID
		return decodeTargetDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.AudienceTarget](provider, collection, decoder)
	return &AudienceTargetRepository{base: base}, nil
}

// FindByProductID loads the audience target stored for the product.
func (r *AudienceTargetRepository) FindByProductID(ctx context.Context, productID string) (domain.AudienceTarget, error) {
	if r == nil || r.base == nil {
		return domain.AudienceTarget{}, errors.New("audience target repository not initialised")
	}
	doc, err := r.base.Get(ctx, strings.TrimSpace(productID))
	if err != nil {
		return domain.AudienceTarget{}, err
	}
	return doc.Data, nil
}
