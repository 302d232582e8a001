package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterDefaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{})
	assert.Equal(t, DefaultLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 0, f.Offset)
	assert.True(t, f.WithPagination)
	assert.Empty(t, f.Search)
}

func TestParseFilterPaging(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"page": {"3"}, "limit": {"20"}})
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 40, f.Offset)
}

func TestParseFilterLimitCap(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"9000"}})
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestParseFilterSortAndFilter(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{
		"search":           {"maria"},
		"sort[full_name]":  {"DESC"},
		"sort[bogus]":      {"sideways"},
		"filter[category]": {"Tuno"},
	})
	assert.Equal(t, "maria", f.Search)
	assert.Equal(t, "desc", f.Sort["full_name"])
	_, hasBogus := f.Sort["bogus"]
	assert.False(t, hasBogus, "invalid direction must be dropped")
	assert.Equal(t, "Tuno", f.Filter["category"])
}

func TestParseFilterWithoutPagination(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"withPagination": {"false"}})
	assert.False(t, f.WithPagination)
}
