// Package tables implements the generic list pipeline used by composite list
// views: multi-field substring search, column-keyed sorting and paging over an
// in-memory slice. Repositories still paginate SQL-side; this helper serves
// views assembled from several sources.
package tables

import (
	"sort"
	"strings"
)

const DefaultPageSize = 50

// SearchField extracts a searchable string from an item.
type SearchField[T any] func(T) string

// SortKey extracts a comparable key for a named column.
type SortKey[T any] func(T) string

type Table[T any] struct {
	source       []T
	searchFields []SearchField[T]
	sortKeys     map[string]SortKey[T]

	searchTerm string
	sortColumn string
	descending bool
	page       int
	pageSize   int
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func New[T any](source []T) *Table[T] {
	return &Table[T]{
		source:   source,
		sortKeys: make(map[string]SortKey[T]),
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// WithSearchFields configures the OR-set of fields the search term is matched
// against.
func (t *Table[T]) WithSearchFields(fields ...SearchField[T]) *Table[T] {
	t.searchFields = fields
	return t
}

func (t *Table[T]) WithSortKey(column string, key SortKey[T]) *Table[T] {
	t.sortKeys[column] = key
	return t
}

func (t *Table[T]) Search(term string) *Table[T] {
	t.searchTerm = term
	t.page = 1
	return t
}

// SortBy sorts ascending on first invocation for a column; invoking it again
// on the same column toggles to descending.
func (t *Table[T]) SortBy(column string) *Table[T] {
	if t.sortColumn == column {
		t.descending = !t.descending
	} else {
		t.sortColumn = column
		t.descending = false
	}
	return t
}

func (t *Table[T]) GoToPage(page int) *Table[T] {
	if page < 1 {
		page = 1
	}
	t.page = page
	return t
}

// ChangePageSize sets the slice size and resets to page 1.
func (t *Table[T]) ChangePageSize(size int) *Table[T] {
	if size < 1 {
		size = DefaultPageSize
	}
	t.pageSize = size
	t.page = 1
	return t
}

// Build runs the fixed pipeline: filter, then sort, then slice the page.
// A nil source degrades to an empty result.
func (t *Table[T]) Build() Page[T] {
	filtered := t.filter()

	if key, ok := t.sortKeys[t.sortColumn]; ok {
		desc := t.descending
		sort.SliceStable(filtered, func(i, j int) bool {
			a, b := key(filtered[i]), key(filtered[j])
			if desc {
				return a > b
			}
			return a < b
		})
	}

	total := len(filtered)
	totalPages := (total + t.pageSize - 1) / t.pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := t.page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * t.pageSize
	end := start + t.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      filtered[start:end],
		Page:       page,
		PageSize:   t.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func (t *Table[T]) filter() []T {
	if t.source == nil {
		return []T{}
	}
	if t.searchTerm == "" || len(t.searchFields) == 0 {
		out := make([]T, len(t.source))
		copy(out, t.source)
		return out
	}

	term := strings.ToLower(t.searchTerm)
	out := make([]T, 0, len(t.source))
	for _, item := range t.source {
		for _, field := range t.searchFields {
			if strings.Contains(strings.ToLower(field(item)), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
