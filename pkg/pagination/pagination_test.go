package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: -2, PerPage: 500, Search: "  Maria "}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, "Maria", p.Search)
	assert.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 3}
	p.Validate()
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 15, 31)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := NewPagination(1, 15, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestMap(t *testing.T) {
	page := NewPaginatedResult([]int{1, 2}, NewPagination(1, 15, 2))
	got := Map(page, strconv.Itoa)

	assert.Equal(t, []string{"1", "2"}, got.Items)
	assert.Same(t, page.Pagination, got.Pagination)
	assert.NotNil(t, NewPaginatedResult[int](nil, nil).Items)
}
