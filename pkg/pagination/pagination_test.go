package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_ClampsToLastPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	res := Paginate(items, &PaginationParams{Page: 5, PerPage: MenuPageSize})

	assert.Equal(t, 2, res.Pagination.CurrentPage)
	assert.Equal(t, 2, res.Pagination.TotalPages)
	assert.Equal(t, []int{9, 10}, res.Items)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
}

func TestPaginate_EmptyListHasOnePage(t *testing.T) {
	res := Paginate([]string{}, nil)

	assert.Equal(t, 1, res.Pagination.CurrentPage)
	assert.Equal(t, 1, res.Pagination.TotalPages)
	assert.Empty(t, res.Items)
}

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: -3, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}
