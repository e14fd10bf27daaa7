package utils

import "math"

// ClampPage normalizes 1-based page numbers; non-positive input means
// the first page, it is never an error.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

func NewPageMeta(total int64, page, pageSize int) PageMeta {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	return PageMeta{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalCount:      total,
		HasPreviousPage: page > 1,
		HasNextPage:     page < totalPages,
	}
}
