package utils

// DefaultPageSize is the number of cards shown per dashboard page
const DefaultPageSize = 9

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// CalculateMeta clamps page into [1, totalPages]. An empty list still has one page.
func CalculateMeta(totalCount, page, pageSize int) PaginationMeta {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	switch {
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	return PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Bounds returns the half-open slice range of the current page
func (m PaginationMeta) Bounds() (start, end int) {
	start = (m.Page - 1) * m.PageSize
	if start > m.TotalCount {
		start = m.TotalCount
	}
	end = start + m.PageSize
	if end > m.TotalCount {
		end = m.TotalCount
	}
	return start, end
}
