package models

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// ListParams carries untrusted list-query input from the HTTP layer. Sort
// and order values are validated against per-entity allow-lists before they
// get anywhere near SQL.
type ListParams struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Window normalises the requested page and size and derives the row offset.
// A page below 1 becomes 1; a size outside 1..100 becomes 20. Every list
// query and every pagination envelope goes through here so the two can
// never disagree.
func (p ListParams) Window() (page, size, offset int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	size = p.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset = (page - 1) * size
	return page, size, offset
}
