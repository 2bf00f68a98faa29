package docstratum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortParams_Valid(t *testing.T) {
	t.Parallel()

	sortableBy := []string{"created", "composite_score"}

	tests := []struct {
		name   string
		params SortParams
		want   bool
	}{
		{"empty", SortParams{}, true},
		{"sortable column", SortParams{By: "created", Order: SortOrderAsc}, true},
		{"sortable column with limit", SortParams{By: "composite_score", Order: SortOrderDesc, Limit: 5}, true},
		{"unknown column", SortParams{By: "name"}, false},
		{"injection attempt", SortParams{By: "created; drop table source"}, false},
		{"negative limit", SortParams{Limit: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.params.Valid(sortableBy))
		})
	}
}

func TestSortParams_SQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params SortParams
		want   string
	}{
		{"empty", SortParams{}, ""},
		{"by only", SortParams{By: "created"}, " order by created"},
		{"by and order", SortParams{By: "created", Order: SortOrderDesc}, " order by created desc"},
		{"limit only", SortParams{Limit: 3}, " limit 3"},
		{"full", SortParams{By: "composite_score", Order: SortOrderDesc, Limit: 3}, " order by composite_score desc limit 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.params.SQL())
		})
	}
}

func TestSortParams_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, SortParams{}.Empty())
	assert.False(t, SortParams{By: "created"}.Empty())
	assert.False(t, SortParams{Limit: 1}.Empty())
}
