package tables

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string
	Email string
}

func sampleRows(n int) []row {
	rows := make([]row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, row{
			Name:  fmt.Sprintf("member-%03d", i),
			Email: fmt.Sprintf("m%03d@rtub.local", i),
		})
	}
	return rows
}

func newTable(rows []row) *Table[row] {
	return New(rows).
		WithSearchFields(func(r row) string { return r.Name }, func(r row) string { return r.Email }).
		WithSortKey("name", func(r row) string { return r.Name })
}

func TestDefaultPage(t *testing.T) {
	page := newTable(sampleRows(120)).Build()
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Items, DefaultPageSize)
	assert.Equal(t, 120, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
}

func TestChangePageSizeResetsToFirstPage(t *testing.T) {
	table := newTable(sampleRows(100)).GoToPage(3)
	page := table.ChangePageSize(25).Build()

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 25, page.PageSize)
	assert.LessOrEqual(t, len(page.Items), 25)
	assert.Equal(t, "member-000", page.Items[0].Name)
}

func TestSearchMatchesAnyField(t *testing.T) {
	rows := sampleRows(10)
	page := newTable(rows).Search("M007@").Build()

	require.Len(t, page.Items, 1)
	assert.Equal(t, "member-007", page.Items[0].Name)
}

func TestSearchResetsPage(t *testing.T) {
	page := newTable(sampleRows(200)).GoToPage(4).Search("member").Build()
	assert.Equal(t, 1, page.Page)
}

func TestSortToggle(t *testing.T) {
	rows := []row{{Name: "b"}, {Name: "c"}, {Name: "a"}}

	asc := newTable(rows).SortBy("name").Build()
	require.Len(t, asc.Items, 3)
	assert.Equal(t, "a", asc.Items[0].Name)

	desc := newTable(rows).SortBy("name").SortBy("name").Build()
	assert.Equal(t, "c", desc.Items[0].Name)
}

func TestSortUnknownColumnKeepsOrder(t *testing.T) {
	rows := []row{{Name: "b"}, {Name: "a"}}
	page := newTable(rows).SortBy("missing").Build()
	assert.Equal(t, "b", page.Items[0].Name)
}

func TestPageBeyondEndClamps(t *testing.T) {
	page := newTable(sampleRows(10)).ChangePageSize(5).GoToPage(99).Build()
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Items, 5)
}

func TestNilSource(t *testing.T) {
	page := New[row](nil).Build()
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
}

func TestBuildDoesNotMutateSource(t *testing.T) {
	rows := []row{{Name: "b"}, {Name: "a"}}
	_ = newTable(rows).SortBy("name").Build()
	assert.Equal(t, "b", rows[0].Name)
}
