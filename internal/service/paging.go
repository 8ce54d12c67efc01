package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPaging = errors.New("page number and page size must be positive")
	ErrInvalidSort   = errors.New("unknown sort column or direction")
)

// SortOrder 表示分页查询的排序方向
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder maps a caller supplied direction onto the closed enum.
// The empty string defaults to ascending; anything else is rejected.
func ParseSortOrder(raw string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return "", ErrInvalidSort
}

// PagingParams describes one page of a sorted result set.
// PageNumber is 1-based; SortColumn is resolved against a per-query
// whitelist so callers can never inject arbitrary ORDER BY fragments.
type PagingParams struct {
	PageNumber int
	PageSize   int
	SortColumn string
	SortOrder  SortOrder
}

func (p PagingParams) validate() error {
	if p.PageNumber < 1 || p.PageSize < 1 {
		return ErrInvalidPaging
	}
	switch p.SortOrder {
	case "", SortAscending, SortDescending:
		return nil
	}
	return ErrInvalidSort
}

func (p PagingParams) offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// orderClause resolves the requested sort column against the whitelist of
// one query and appends the primary key as a stable tie break, so page
// boundaries do not shift between requests when sort values collide.
func (p PagingParams) orderClause(columns map[string]string, fallback string) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	requested := strings.ToLower(strings.TrimSpace(p.SortColumn))
	if requested == "" {
		return fallback, nil
	}

	column, ok := columns[requested]
	if !ok {
		return "", ErrInvalidSort
	}

	order := p.SortOrder
	if order == "" {
		order = SortAscending
	}

	idColumn := columns["id"]
	if column == idColumn {
		return fmt.Sprintf("%s %s", column, order), nil
	}
	return fmt.Sprintf("%s %s, %s asc", column, order, idColumn), nil
}

// PagedResult carries one page of items plus metadata about the full
// filtered set. TotalPages is ceil(TotalCount / PageSize).
type PagedResult[T any] struct {
	Items      []T
	TotalCount int64
	PageNumber int
	PageSize   int
	TotalPages int
}

func newPagedResult[T any](items []T, total int64, p PagingParams) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedResult[T]{
		Items:      items,
		TotalCount: total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: int((total + int64(p.PageSize) - 1) / int64(p.PageSize)),
	}
}
