package dto

// Pagination is the metadata block every list response carries.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// NewPagination derives the metadata from the requested page, the page size
// and the total number of matching records. A page beyond the last yields an
// empty page, never an error.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 1
	if total > 0 && limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && total > 0,
	}
}
