package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qreserve/qreserve/internal/shared/constants"
	"github.com/qreserve/qreserve/internal/shared/errors"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ValidatePagination checks page >= 1 and 1 <= page_size <= MaxPageSize.
// Out-of-range values are rejected rather than clamped.
func ValidatePagination(page, pageSize int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, errors.NewValidationError("page must be at least 1")
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		return Pagination{}, errors.NewValidationError("page_size must be between 1 and 100")
	}
	return Pagination{Page: page, PageSize: pageSize}, nil
}

// ParsePagination reads page and page_size from the query string, applying
// defaults for absent values.
func ParsePagination(c *gin.Context) (Pagination, error) {
	page, err := parseQueryInt(c, "page", constants.DefaultPage)
	if err != nil {
		return Pagination{}, err
	}
	pageSize, err := parseQueryInt(c, "page_size", constants.DefaultPageSize)
	if err != nil {
		return Pagination{}, err
	}
	return ValidatePagination(page, pageSize)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) (int, error) {
	val, ok := c.GetQuery(key)
	if !ok || val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.NewValidationError(key + " must be an integer")
	}
	return n, nil
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
