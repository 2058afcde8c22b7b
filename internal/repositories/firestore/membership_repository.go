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

const defaultMembershipsCollection = "memberships"

// MembershipRepository reads membership documents for profile construction.
type MembershipRepository struct {
	base *pfirestore.BaseRepository[domain.Membership]
}

var _ repositories.MembershipRepository = (*MembershipRepository)(nil)

// NewMembershipRepository constructs a Firestore-backed membership repository.
func NewMembershipRepository(provider *pfirestore.Provider, collection string) (*MembershipRepository, error) {
	if provider == nil {
		return nil, errors.New("membership repository: firestore provider is required")
	}
	if strings.TrimSpace(collection) == "" {
		collection = defaultMembershipsCollection
	}

	decoder := func(_ context.Context, snap *firestore.DocumentSnapshot) (domain.Membership, error) {
		var doc membershipDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.Membership{}, err
		}
		doc.id = snap.Ref.ID
		return decodeMembershipDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.Membership](provider, collection, decoder)
	return &MembershipRepository{base: base}, nil
}

// FindByAccountID lists the membership records linked to an account.
func (r *MembershipRepository) FindByAccountID(ctx context.Context, accountID string) ([]domain.Membership, error) {
	if r == nil || r.base == nil {
		return nil, errors.New("membership repository not initialised")
	}
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, errors.New("membership repository: account id is required")
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("accountId", "==", accountID)
	})
	if err != nil {
		return nil, err
	}

	memberships := make([]domain.Membership, 0, len(docs))
	for _, doc := range docs {
		memberships = append(memberships, doc.Data)
	}
	return memberships, nil
}
