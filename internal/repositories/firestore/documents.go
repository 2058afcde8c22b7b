package firestore

import (
	"time"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

// productDocument mirrors the Firestore schema for catalog products. Pointer
// fields stay nil when the stored document omits them.
type productDocument struct {
	id string

	Code           string           `firestore:"code"`
	BusinessID     string           `firestore:"businessId"`
	OrganizationID string           `firestore:"organizationId"`
	Name           string           `firestore:"name"`
	Description    string           `firestore:"description"`
	Category       string           `firestore:"category"`
	Year           int              `firestore:"year"`
	Status         string           `firestore:"status"`
	AudienceType   string           `firestore:"audienceType"`
	MembershipOnly bool             `firestore:"membershipOnly"`
	ActiveFrom     *time.Time       `firestore:"activeFrom"`
	ActiveUntil    *time.Time       `firestore:"activeUntil"`
	Inventory      *int             `firestore:"inventory"`
	Prices         priceSetDocument `firestore:"prices"`
	SearchTerms    []string         `firestore:"searchTerms"`
	CreatedAt      time.Time        `firestore:"createdAt"`
	UpdatedAt      time.Time        `firestore:"updatedAt"`
}

type priceSetDocument struct {
	General          *int64 `firestore:"general"`
	Practising       *int64 `firestore:"practising"`
	NonPractising    *int64 `firestore:"nonPractising"`
	Student          *int64 `firestore:"student"`
	NewGraduate      *int64 `firestore:"newGraduate"`
	Retired          *int64 `firestore:"retired"`
	Life             *int64 `firestore:"life"`
	Honorary         *int64 `firestore:"honorary"`
	Associate        *int64 `firestore:"associate"`
	Affiliate        *int64 `firestore:"affiliate"`
	Corporate        *int64 `firestore:"corporate"`
	Provisional      *int64 `firestore:"provisional"`
	Temporary        *int64 `firestore:"temporary"`
	OnLeave          *int64 `firestore:"onLeave"`
	International    *int64 `firestore:"international"`
	SupportPersonnel *int64 `firestore:"supportPersonnel"`
}

func decodeProductDocument(doc productDocument) domain.Product {
	status, ok := domain.ParseProductStatus(doc.Status)
	if !ok {
		status = domain.ProductDraft
	}
	return domain.Product{
		ID:             doc.id,
		Code:           doc.Code,
		BusinessID:     doc.BusinessID,
		OrganizationID: doc.OrganizationID,
		Name:           doc.Name,
		Description:    doc.Description,
		Category:       doc.Category,
		Year:           doc.Year,
		Status:         status,
		AudienceType:   domain.NormalizeAudienceType(domain.AudienceType(doc.AudienceType)),
		MembershipOnly: doc.MembershipOnly,
		ActiveFrom:     doc.ActiveFrom,
		ActiveUntil:    doc.ActiveUntil,
		Inventory:      doc.Inventory,
		Prices:         decodePriceSet(doc.Prices),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

func decodePriceSet(doc priceSetDocument) domain.PriceSet {
	return domain.PriceSet{
		General:          doc.General,
		Practising:       doc.Practising,
		NonPractising:    doc.NonPractising,
		Student:          doc.Student,
		NewGraduate:      doc.NewGraduate,
		Retired:          doc.Retired,
		Life:             doc.Life,
		Honorary:         doc.Honorary,
		Associate:        doc.Associate,
		Affiliate:        doc.Affiliate,
		Corporate:        doc.Corporate,
		Provisional:      doc.Provisional,
		Temporary:        doc.Temporary,
		OnLeave:          doc.OnLeave,
		International:    doc.International,
		SupportPersonnel: doc.SupportPersonnel,
	}
}

// targetDocument mirrors the Firestore schema for audience targets. Every field
// is optional; a missing field imposes no constraint.
type targetDocument struct {
	productID string

	Provinces            []string `firestore:"provinces"`
	Regions              []string `firestore:"regions"`
	PracticeAreas        []string `firestore:"practiceAreas"`
	PracticeSettings     []string `firestore:"practiceSettings"`
	MembershipCategories []int    `firestore:"membershipCategories"`
	AccountKinds         []string `firestore:"accountKinds"`
	Languages            []string `firestore:"languages"`
	Interests            []string `firestore:"interests"`
	YearsOfPractice      []string `firestore:"yearsOfPractice"`
}

func decodeTargetDocument(doc targetDocument) domain.AudienceTarget {
	categories := make([]domain.MembershipCategory, 0, len(doc.MembershipCategories))
	for _, raw := range doc.MembershipCategories {
		categories = append(categories, domain.MembershipCategory(raw))
	}
	kinds := make([]domain.AccountKind, 0, len(doc.AccountKinds))
	for _, raw := range doc.AccountKinds {
		if kind, ok := domain.ParseAccountKind(raw); ok {
			kinds = append(kinds, kind)
		}
	}
	if len(categories) == 0 {
		categories = nil
	}
	if len(kinds) == 0 {
		kinds = nil
	}
	return domain.AudienceTarget{
		ProductID:            doc.productID,
		Provinces:            doc.Provinces,
		Regions:              doc.Regions,
		PracticeAreas:        doc.PracticeAreas,
		PracticeSettings:     doc.PracticeSettings,
		MembershipCategories: categories,
		AccountKinds:         kinds,
		Languages:            doc.Languages,
		Interests:            doc.Interests,
		YearsOfPractice:      doc.YearsOfPractice,
	}
}

type accountDocument struct {
	id string

	Email           string    `firestore:"email"`
	Kind            string    `firestore:"kind"`
	Tier            string    `firestore:"tier"`
	Province        string    `firestore:"province"`
	Region          string    `firestore:"region"`
	PracticeSetting string    `firestore:"practiceSetting"`
	PracticeAreas   []string  `firestore:"practiceAreas"`
	Languages       []string  `firestore:"languages"`
	Interests       []string  `firestore:"interests"`
	YearsOfPractice string    `firestore:"yearsOfPractice"`
	CreatedAt       time.Time `firestore:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

func decodeAccountDocument(doc accountDocument) domain.Account {
	kind, ok := domain.ParseAccountKind(doc.Kind)
	if !ok {
		kind = domain.KindAccount
	}
	tier, ok := domain.ParsePrivilegeTier(doc.Tier)
	if !ok {
		tier = domain.TierSelfService
	}
	return domain.Account{
		ID:              doc.id,
		Email:           doc.Email,
		Kind:            kind,
		Tier:            tier,
		Province:        doc.Province,
		Region:          doc.Region,
		PracticeSetting: doc.PracticeSetting,
		PracticeAreas:   doc.PracticeAreas,
		Languages:       doc.Languages,
		Interests:       doc.Interests,
		YearsOfPractice: doc.YearsOfPractice,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

type membershipDocument struct {
	id string

	AccountID string     `firestore:"accountId"`
	Category  int        `firestore:"category"`
	Status    string     `firestore:"status"`
	StartedAt *time.Time `firestore:"startedAt"`
	ExpiresAt *time.Time `firestore:"expiresAt"`
}

func decodeMembershipDocument(doc membershipDocument) domain.Membership {
	return domain.Membership{
		ID:        doc.id,
		AccountID: doc.AccountID,
		Category:  domain.MembershipCategory(doc.Category),
		Status:    domain.MembershipStatus(doc.Status),
		StartedAt: doc.StartedAt,
		ExpiresAt: doc.ExpiresAt,
	}
}

type affiliateDocument struct {
	id string

	AccountID      string    `firestore:"accountId"`
	OrganizationID string    `firestore:"organizationId"`
	Province       string    `firestore:"province"`
	Region         string    `firestore:"region"`
	Languages      []string  `firestore:"languages"`
	Interests      []string  `firestore:"interests"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

func decodeAffiliateDocument(doc affiliateDocument) domain.AffiliateProfile {
	return domain.AffiliateProfile{
		ID:             doc.id,
		AccountID:      doc.AccountID,
		OrganizationID: doc.OrganizationID,
		Province:       doc.Province,
		Region:         doc.Region,
		Languages:      doc.Languages,
		Interests:      doc.Interests,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
