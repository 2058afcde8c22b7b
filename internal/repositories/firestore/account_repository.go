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

const defaultAccountsCollection = "accounts"

// AccountRepository reads account documents for profile construction.
type AccountRepository struct {
	base *pfirestore.BaseRepository[domain.Account]
}

var _ repositories.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository constructs a Firestore-backed account repository.
func NewAccountRepository(provider *pfirestore.Provider, collection string) (*AccountRepository, error) {
	if provider == nil {
		return nil, errors.New("account repository: firestore provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultAccountsCollection
	}

	decoder := func(_ context.Context, snap *firestore.DocumentSnapshot) (domain.Account, error) {
		var doc accountDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.Account{}, err
		}
		doc.id = snap.Ref.ID
		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = snap.CreateTime
		}
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = snap.UpdateTime
		}
		return decodeAccountDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.Account](provider, collection, decoder)
	return &AccountRepository{base: base}, nil
}

// FindByID loads one account by its document identifier.
func (r *AccountRepository) FindByID(ctx context.Context, accountID string) (domain.Account, error) {
	if r == nil || r.base == nil {
		return domain.Account{}, errors.New("account repository not initialised")
	}
	doc, err := r.base.Get(ctx, strings.TrimSpace(accountID))
	if err != nil {
		return domain.Account{}, err
	}
	return doc.Data, nil
}
