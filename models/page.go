package models

// DefaultPageSize is used when the request carries no page_size parameter.
const DefaultPageSize = 20

// MaxPageSize caps page_size; larger requests are clamped, not rejected.
const MaxPageSize = 100

// PageParams are the normalized pagination inputs of a list request.
type PageParams struct {
	// Page is 1-based.
	Page int

	// PageSize is the number of results per page, 1..MaxPageSize.
	PageSize int
}

// DefaultPageParams returns the pagination applied when a request carries
// no page/page_size parameters.
func DefaultPageParams() PageParams {
	return PageParams{Page: 1, PageSize: DefaultPageSize}
}

// Normalize clamps the params into their valid ranges: page to ≥1 and
// page size to 1..MaxPageSize, substituting defaults for zero values.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the number of rows to fetch for the current page.
func (p PageParams) Limit() int {
	return p.PageSize
}

// TotalPages returns the number of pages needed for count rows.
// A count of zero yields one (empty) page.
func (p PageParams) TotalPages(count int64) int {
	if count == 0 {
		return 1
	}
	pages := count / int64(p.PageSize)
	if count%int64(p.PageSize) != 0 {
		pages++
	}
	return int(pages)
}

// Page is the pagination envelope wrapping every list response.
//
// Next and Previous are absolute-path URLs preserving all other query
// parameters of the request, or null at the respective end of the set.
type Page[T any] struct {
	Count       int64   `json:"count"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	PageSize    int     `json:"page_size"`
	TotalPages  int     `json:"total_pages"`
	CurrentPage int     `json:"current_page"`
	Results     []T     `json:"results"`
}

// NewPage assembles the envelope for one page of results. Link URLs are
// attached by the transport layer, which knows the request URL.
func NewPage[T any](results []T, count int64, params PageParams) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Count:       count,
		PageSize:    params.PageSize,
		TotalPages:  params.TotalPages(count),
		CurrentPage: params.Page,
		Results:     results,
	}
}
