package firestore

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

func TestDecodeProductDocument(t *testing.T) {
	general := int64(5000)
	student := int64(1500)
	inventory := 10
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	doc := productDocument{
		id:             "p1",
		Code:           "CRS-100",
		BusinessID:     "biz_1",
		OrganizationID: "org_1",
		Name:           "Clinical Ethics",
		Category:       "courses",
		Year:           2026,
		Status:         "available",
		AudienceType:   "OT_OTA",
		MembershipOnly: true,
		ActiveFrom:     &from,
		Inventory:      &inventory,
		Prices: priceSetDocument{
			General: &general,
			Student: &student,
		},
	}

	product := decodeProductDocument(doc)
	if product.ID != "p1" || product.Code != "CRS-100" {
		t.Fatalf("unexpected identity fields: %+v", product)
	}
	if product.Status != domain.ProductAvailable {
		t.Fatalf("expected AVAILABLE, got %q", product.Status)
	}
	if product.AudienceType != domain.AudienceAccount {
		t.Fatalf("expected OT_OTA preserved, got %q", product.AudienceType)
	}
	if product.Prices.General == nil || *product.Prices.General != 5000 {
		t.Fatalf("unexpected general price: %v", product.Prices.General)
	}
	if product.Prices.Student == nil || *product.Prices.Student != 1500 {
		t.Fatalf("unexpected student price: %v", product.Prices.Student)
	}
	if product.Prices.Retired != nil {
		t.Fatalf("expected absent price to stay nil")
	}
}

func TestDecodeProductDocumentDefaults(t *testing.T) {
	product := decodeProductDocument(productDocument{
		id:           "p1",
		Status:       "legacy-state",
		AudienceType: "unexpected",
	})
	if product.Status != domain.ProductDraft {
		t.Fatalf("expected unknown status decoded as DRAFT, got %q", product.Status)
	}
	if product.AudienceType != domain.AudienceBoth {
		t.Fatalf("expected unknown audience normalised to BOTH, got %q", product.AudienceType)
	}
}

func TestDecodeTargetDocument(t *testing.T) {
	doc := targetDocument{
		productID:            "p1",
		Provinces:            []string{"QC"},
		MembershipCategories: []int{0, 2},
		AccountKinds:         []string{"account", "robot", "affiliate"},
	}

	target := decodeTargetDocument(doc)
	want := domain.AudienceTarget{
		ProductID:            "p1",
		Provinces:            []string{"QC"},
		MembershipCategories: []domain.MembershipCategory{domain.CategoryPractising, domain.CategoryStudent},
		AccountKinds:         []domain.AccountKind{domain.KindAccount, domain.KindAffiliate},
	}
	if diff := cmp.Diff(want, target); diff != "" {
		t.Fatalf("unexpected target (-want +got):\n%s", diff)
	}
}

func TestDecodeTargetDocumentEmptyIsPublic(t *testing.T) {
	target := decodeTargetDocument(targetDocument{productID: "p1"})
	if !target.Unconstrained() {
		t.Fatalf("expected empty document to decode as unconstrained, got %+v", target)
	}
}

func TestDecodeAccountDocumentDefaults(t *testing.T) {
	account := decodeAccountDocument(accountDocument{
		id:   "acc_1",
		Kind: "robot",
		Tier: "superuser",
	})
	if account.Kind != domain.KindAccount || account.Tier != domain.TierSelfService {
		t.Fatalf("expected conservative defaults, got %+v", account)
	}
}

func TestDecodeMembershipDocument(t *testing.T) {
	expires := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	membership := decodeMembershipDocument(membershipDocument{
		id:        "m1",
		AccountID: "acc_1",
		Category:  2,
		Status:    "ACTIVE",
		ExpiresAt: &expires,
	})
	if membership.Category != domain.CategoryStudent || membership.Status != domain.MembershipActive {
		t.Fatalf("unexpected membership: %+v", membership)
	}
}
