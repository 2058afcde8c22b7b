package services

import (
	"testing"

	domain "github.com/praxiscommerce/catalog-api/internal/domain"
)

func TestResolvePrice(t *testing.T) {
	general := int64(10000)
	student := int64(2500)
	retired := int64(4000)

	prices := domain.PriceSet{
		General: &general,
		Student: &student,
		Retired: &retired,
	}

	studentCat := domain.CategoryStudent
	lifeCat := domain.CategoryLife
	unknownCat := domain.MembershipCategory(42)

	cases := []struct {
		name        string
		prices      domain.PriceSet
		category    *domain.MembershipCategory
		wantAmount  *int64
		wantField   string
		wantGeneral bool
	}{
		{
			name:        "no category falls back to general",
			prices:      prices,
			category:    nil,
			wantAmount:  &general,
			wantField:   domain.PriceFieldGeneral,
			wantGeneral: true,
		},
		{
			name:       "category with amount uses its field",
			prices:     prices,
			category:   &studentCat,
			wantAmount: &student,
			wantField:  "student",
		},
		{
			name:        "category without amount falls back to general",
			prices:      prices,
			category:    &lifeCat,
			wantAmount:  &general,
			wantField:   domain.PriceFieldGeneral,
			wantGeneral: true,
		},
		{
			name:        "unmapped category falls back to general",
			prices:      prices,
			category:    &unknownCat,
			wantAmount:  &general,
			wantField:   domain.PriceFieldGeneral,
			wantGeneral: true,
		},
		{
			name:        "unpriced product resolves to nil amount",
			prices:      domain.PriceSet{},
			category:    &studentCat,
			wantAmount:  nil,
			wantField:   domain.PriceFieldGeneral,
			wantGeneral: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := ResolvePrice(tc.prices, tc.category)
			switch {
			case tc.wantAmount == nil && quote.Amount != nil:
				t.Fatalf("expected nil amount, got %d", *quote.Amount)
			case tc.wantAmount != nil && (quote.Amount == nil || *quote.Amount != *tc.wantAmount):
				t.Fatalf("expected amount %d, got %v", *tc.wantAmount, quote.Amount)
			}
			if quote.FieldUsed != tc.wantField {
				t.Fatalf("expected field %q, got %q", tc.wantField, quote.FieldUsed)
			}
			if quote.General != tc.wantGeneral {
				t.Fatalf("expected general=%v, got %v", tc.wantGeneral, quote.General)
			}
		})
	}
}

func TestPriceSetCategoryPriceCoversEveryCategory(t *testing.T) {
	amount := int64(100)
	set := domain.PriceSet{
		Practising:       &amount,
		NonPractising:    &amount,
		Student:          &amount,
		NewGraduate:      &amount,
		Retired:          &amount,
		Life:             &amount,
		Honorary:         &amount,
		Associate:        &amount,
		Affiliate:        &amount,
		Corporate:        &amount,
		Provisional:      &amount,
		Temporary:        &amount,
		OnLeave:          &amount,
		International:    &amount,
		SupportPersonnel: &amount,
	}

	for cat := domain.CategoryPractising; cat <= domain.CategorySupportPersonnel; cat++ {
		price, field := set.CategoryPrice(cat)
		if price == nil || field == "" {
			t.Fatalf("category %d has no mapped price field", cat)
		}
	}
}
