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

const defaultAffiliatesCollection = "affiliateProfiles"

// AffiliateRepository reads affiliate attribute documents for profile construction.
type AffiliateRepository struct {
	base *pfirestore.BaseRepository[domain.AffiliateProfile]
}

var _ repositories.AffiliateRepository = (*AffiliateRepository)(nil)

// NewAffiliateRepository constructs a Firestore-backed affiliate repository.
func NewAffiliateRepository(provider *pfirestore.Provider, collection string) (*AffiliateRepository, error) {
	if provider == nil {
		return nil, errors.New("affiliate repository: firestore provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultAffiliatesCollection
	}

	decoder := func(_ context.Context, snap *firestore.DocumentSnapshot) (domain.AffiliateProfile, error) {
		var doc affiliateDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.AffiliateProfile{}, err
		}
		doc.id = snap.Ref.ID
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = snap.CreateTime
		}
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = snap.UpdateTime
		}
		return decodeAffiliateDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.AffiliateProfile](provider, collection, decoder)
	return &AffiliateRepository{base: base}, nil
}

// FindByAccountID loads the affiliate profile linked to an account.
func (r *AffiliateRepository) FindByAccountID(ctx context.Context, accountID string) (domain.AffiliateProfile, error) {
	if r == nil || r.base == nil {
		return domain.AffiliateProfile{}, errors.New("affiliate repository not initialised")
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domain.AffiliateProfile{}, errors.New("affiliate repository: account id is required")
	}

	doc, err := r.base.QueryFirst(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("accountId", "==", accountID)
	})
	if err != nil {
		return domain.AffiliateProfile{}, err
	}
	return doc.Data, nil
}
