package domain

import "testing"

func TestPaginate(t *testing.T) {
	items := make([]EnrichedProduct, 25)
	for i := range items {
		items[i] = EnrichedProduct{Product: Product{ID: string(rune('a' + i))}}
	}

	cases := []struct {
		name      string
		page      int
		pageSize  int
		wantLen   int
		wantMeta  PageMeta
		wantFirst string
	}{
		{
			name:     "first page",
			page:     1,
			pageSize: 12,
			wantLen:  12,
			wantMeta: PageMeta{
				CurrentPage:  1,
				ItemsPerPage: 12,
				TotalItems:   25,
				TotalPages:   3,
				HasNextPage:  true,
			},
			wantFirst: "a",
		},
		{
			name:     "final partial page",
			page:     3,
			pageSize: 12,
			wantLen:  1,
			wantMeta: PageMeta{
				CurrentPage:     3,
				ItemsPerPage:    12,
				TotalItems:      25,
				TotalPages:      3,
				HasPreviousPage: true,
			},
			wantFirst: "y",
		},
		{
			name:     "page past the end is empty",
			page:     5,
			pageSize: 12,
			wantLen:  0,
			wantMeta: PageMeta{
				CurrentPage:     5,
				ItemsPerPage:    12,
				TotalItems:      25,
				TotalPages:      3,
				HasPreviousPage: true,
			},
		},
		{
			name:     "invalid inputs clamp to one",
			page:     0,
			pageSize: 0,
			wantLen:  1,
			wantMeta: PageMeta{
				CurrentPage:  1,
				ItemsPerPage: 1,
				TotalItems:   25,
				TotalPages:   25,
				HasNextPage:  true,
			},
			wantFirst: "a",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page := Paginate(items, tc.page, tc.pageSize)
			if len(page.Items) != tc.wantLen {
				t.Fatalf("expected %d items, got %d", tc.wantLen, len(page.Items))
			}
			if page.Meta != tc.wantMeta {
				t.Fatalf("unexpected meta: got %+v want %+v", page.Meta, tc.wantMeta)
			}
			if tc.wantFirst != "" && page.Items[0].ID != tc.wantFirst {
				t.Fatalf("expected first item %q, got %q", tc.wantFirst, page.Items[0].ID)
			}
		})
	}
}

func TestPaginateEmptySet(t *testing.T) {
	page := Paginate(nil, 1, 12)
	if len(page.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(page.Items))
	}
	if page.Meta.TotalItems != 0 || page.Meta.TotalPages != 0 {
		t.Fatalf("unexpected totals: %+v", page.Meta)
	}
	if page.Meta.HasNextPage || page.Meta.HasPreviousPage {
		t.Fatalf("unexpected navigation flags: %+v", page.Meta)
	}
}
