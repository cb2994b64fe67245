// Package query holds the paging and ordering inputs shared by list
// repositories. Values are validated against a whitelist before they reach SQL.
package query

import (
	"fmt"
	"strings"

	"github.com/qreserve/qreserve/internal/shared/errors"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

func (f PageFilter) Limit() int {
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

// WithDefaults fills empty fields with the given defaults.
func (f SortFilter) WithDefaults(sortBy, sortOrder string) SortFilter {
	if f.SortBy == "" {
		f.SortBy = sortBy
	}
	if f.SortOrder == "" {
		f.SortOrder = sortOrder
	}
	return f
}

// Validate rejects unknown sort keys and directions instead of falling back.
func (f SortFilter) Validate(allowed map[string]string) error {
	if _, ok := allowed[f.SortBy]; !ok {
		return errors.NewValidationError("invalid sort_by", fmt.Sprintf("got %q", f.SortBy))
	}
	switch strings.ToLower(f.SortOrder) {
	case SortAsc, SortDesc:
		return nil
	default:
		return errors.NewValidationError("invalid sort_order", "must be asc or desc")
	}
}

// OrderClause renders "<expr> ASC|DESC" using the whitelisted expression for
// SortBy. Callers must Validate first.
func (f SortFilter) OrderClause(allowed map[string]string) string {
	direction := "ASC"
	if strings.EqualFold(f.SortOrder, SortDesc) {
		direction = "DESC"
	}
	return allowed[f.SortBy] + " " + direction
}
