package models

// Pagination bounds. Limits come from untrusted callers and feed directly
// into query limits, so they are always clamped.
const (
	MinPageSize = 1
	MaxPageSize = 500
)

// Page is a clamped pagination request.
type Page struct {
	Page  int
	Limit int
}

// NewPage clamps page to >= 1 and limit into [MinPageSize, MaxPageSize].
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < MinPageSize {
		limit = MinPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Page: page, Limit: limit}
}

// Offset returns the row offset for this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pages returns the number of pages needed for total rows at this page size.
func (p Page) Pages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
