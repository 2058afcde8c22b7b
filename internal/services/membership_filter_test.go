package services

import (
	"testing"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

func TestPassesMembership(t *testing.T) {
	member := domain.CallerProfile{UserID: "acc_1", ActiveMembership: true}
	nonMember := domain.CallerProfile{UserID: "acc_2"}

	open := domain.Product{ID: "p1"}
	restricted := domain.Product{ID: "p2", MembershipOnly: true}

	if !PassesMembership(open, nonMember) {
		t.Fatalf("unrestricted product should pass for non-members")
	}
	if !PassesMembership(restricted, member) {
		t.Fatalf("restricted product should pass for active members")
	}
	if PassesMembership(restricted, nonMember) {
		t.Fatalf("restricted product should be hidden from non-members")
	}
}

func TestFilterByMembership(t *testing.T) {
	products := []domain.EnrichedProduct{
		{Product: domain.Product{ID: "p1", MembershipOnly: true}},
		{Product: domain.Product{ID: "p2"}},
	}

	kept := FilterByMembership(products, domain.CallerProfile{UserID: "acc_1"})
	if len(kept) != 1 || kept[0].ID != "p2" {
		t.Fatalf("unexpected survivors: %#v", kept)
	}
}
