package models

// ListMeta is the pagination metadata block returned by list endpoints.
type ListMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewListMeta builds a ListMeta from a page/limit pair and the total row count.
// TotalPages is never below 1 so that empty collections still render one page.
func NewListMeta(page, limit, total int) ListMeta {
	totalPages := 1
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
		if totalPages < 1 {
			totalPages = 1
		}
	}
	return ListMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// SinglePageMeta is the degenerate meta block used when a list endpoint is
// asked for the unfiltered full collection (all=true).
func SinglePageMeta(count int) ListMeta {
	return ListMeta{Page: 1, Limit: count, Total: count, TotalPages: 1}
}
