package service

import (
	"errors"
	"testing"
)

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		raw     string
		want    SortOrder
		wantErr bool
	}{
		{raw: "", want: SortAscending},
		{raw: "asc", want: SortAscending},
		{raw: "Ascending", want: SortAscending},
		{raw: "DESC", want: SortDescending},
		{raw: "descending", want: SortDescending},
		{raw: "sideways", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSortOrder(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSort) {
				t.Fatalf("ParseSortOrder(%q): expected ErrInvalidSort, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSortOrder(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseSortOrder(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestOrderClauseRejectsUnknownColumn(t *testing.T) {
	p := PagingParams{PageNumber: 1, PageSize: 10, SortColumn: "password"}
	if _, err := p.orderClause(tagSortColumns, "tags.name asc"); !errors.Is(err, ErrInvalidSort) {
		t.Fatalf("expected ErrInvalidSort, got %v", err)
	}
}

func TestOrderClauseRejectsNonPositivePaging(t *testing.T) {
	for _, p := range []PagingParams{
		{PageNumber: 0, PageSize: 10},
		{PageNumber: 1, PageSize: 0},
		{PageNumber: -3, PageSize: -1},
	} {
		if _, err := p.orderClause(tagSortColumns, "tags.name asc"); !errors.Is(err, ErrInvalidPaging) {
			t.Fatalf("paging %+v: expected ErrInvalidPaging, got %v", p, err)
		}
	}
}

func TestOrderClauseAppendsStableTieBreak(t *testing.T) {
	p := PagingParams{PageNumber: 1, PageSize: 10, SortColumn: "name", SortOrder: SortDescending}
	clause, err := p.orderClause(tagSortColumns, "tags.name asc")
	if err != nil {
		t.Fatalf("orderClause: %v", err)
	}
	if clause != "tags.name desc, tags.id asc" {
		t.Fatalf("unexpected clause: %q", clause)
	}
}

func TestOrderClauseFallsBackWhenColumnEmpty(t *testing.T) {
	p := PagingParams{PageNumber: 2, PageSize: 5}
	clause, err := p.orderClause(tagSortColumns, "tags.name asc, tags.id asc")
	if err != nil {
		t.Fatalf("orderClause: %v", err)
	}
	if clause != "tags.name asc, tags.id asc" {
		t.Fatalf("unexpected fallback clause: %q", clause)
	}
}

func TestNewPagedResultComputesTotalPages(t *testing.T) {
	tests := []struct {
		total     int64
		pageSize  int
		wantPages int
	}{
		{total: 0, pageSize: 10, wantPages: 0},
		{total: 1, pageSize: 10, wantPages: 1},
		{total: 10, pageSize: 10, wantPages: 1},
		{total: 11, pageSize: 10, wantPages: 2},
		{total: 21, pageSize: 5, wantPages: 5},
	}

	for _, tt := range tests {
		p := PagingParams{PageNumber: 1, PageSize: tt.pageSize}
		result := newPagedResult([]int{}, tt.total, p)
		if result.TotalPages != tt.wantPages {
			t.Fatalf("total=%d size=%d: expected %d pages, got %d",
				tt.total, tt.pageSize, tt.wantPages, result.TotalPages)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Design Patterns", want: "design-patterns"},
		{name: "  ASP.NET Core!  ", want: "asp-net-core"},
		{name: "C++ & Go", want: "c-go"},
		{name: "---", want: ""},
	}

	for _, tt := range tests {
		if got := slugify(tt.name); got != tt.want {
			t.Fatalf("slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
