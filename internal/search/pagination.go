package search

// Pagination is the page metadata returned with search results.
type Pagination struct {
	Total       int  `json:"total"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	HasMore     bool `json:"hasMore"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
}

// Paginate computes page metadata from the SQL-level total.
// Total is set to sqlTotal; callers that report a ranked total overwrite it.
// An unbounded query is always a single page whose limit is the full total.
func Paginate(q Query, sqlTotal int) Pagination {
	p := Pagination{
		Total:  sqlTotal,
		Limit:  q.Limit,
		Offset: q.Offset,
	}

	if q.Unbounded || q.Limit < 1 {
		p.Limit = sqlTotal
		p.TotalPages = 1
		p.CurrentPage = 1
		return p
	}

	p.TotalPages = (sqlTotal + q.Limit - 1) / q.Limit
	p.CurrentPage = q.Offset/q.Limit + 1
	p.HasMore = q.Offset+q.Limit < sqlTotal
	return p
}
