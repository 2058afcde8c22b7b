package domain

// PageMeta reports offset-pagination arithmetic for a resolved product set.
type PageMeta struct {
	CurrentPage     int
	ItemsPerPage    int
	TotalItems      int
	TotalPages      int
	HasNextPage     bool
	HasPreviousPage bool
}

// Page bundles one page of enriched products with its pagination metadata.
type Page struct {
	Items []EnrichedProduct
	Meta  PageMeta
}

// Paginate computes totalPages = ceil(total/pageSize), slices the half-open
// window [(page-1)*pageSize, page*pageSize) out of items, and fills the
// navigation flags. Page and pageSize are clamped to at least 1.
func Paginate(items []EnrichedProduct, page, pageSize int) Page {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	slice := make([]EnrichedProduct, end-start)
	copy(slice, items[start:end])

	return Page{
		Items: slice,
		Meta: PageMeta{
			CurrentPage:     page,
			ItemsPerPage:    pageSize,
			TotalItems:      total,
			TotalPages:      totalPages,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1 && total > 0,
		},
	}
}
