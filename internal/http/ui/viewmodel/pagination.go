package viewmodel

// Pagination is the pager under a list table.
type Pagination struct {
	HasPrev    bool
	HasNext    bool
	StartIndex int
	EndIndex   int
	TotalCount int
	PrevURL    string
	NextURL    string
}

// NewPagination builds a pager for rows [offset, offset+shown) of total. urlFor renders the URL
// of the page starting at a given offset.
func NewPagination(total, limit, offset, shown int, urlFor func(offset int) string) Pagination {
	p := Pagination{TotalCount: total}
	if shown > 0 {
		p.StartIndex = offset + 1
		p.EndIndex = offset + shown
	}
	if offset > 0 {
		p.HasPrev = true
		p.PrevURL = urlFor(max(offset-limit, 0))
	}
	if offset+shown < total {
		p.HasNext = true
		p.NextURL = urlFor(offset + limit)
	}
	return p
}
