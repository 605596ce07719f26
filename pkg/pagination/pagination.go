// Package pagination implements the (page, limit) convention shared by every
// list endpoint: pages are 1-indexed and an out-of-range page yields an empty
// result set, not an error.
package pagination

// Params holds normalized pagination parameters.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw query values into usable parameters.
func Normalize(page, limit, defaultLimit, maxLimit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total / limit).
func TotalPages(total, limit int) int {
	if limit < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// NewMeta builds the response metadata for a page of results.
func NewMeta(p Params, total int) Meta {
	return Meta{
		CurrentPage:  p.Page,
		TotalPages:   TotalPages(total, p.Limit),
		TotalResults: total,
	}
}
