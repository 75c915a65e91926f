package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Run("defaults on empty input", func(t *testing.T) {
		p := ParsePagination("", "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
	})

	t.Run("defaults on garbage input", func(t *testing.T) {
		p := ParsePagination("abc", "-5")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
	})

	t.Run("zero falls back to defaults", func(t *testing.T) {
		p := ParsePagination("0", "0")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PageSize)
	})

	t.Run("page size clamped to 100", func(t *testing.T) {
		p := ParsePagination("2", "500")
		assert.Equal(t, 2, p.Page)
		assert.Equal(t, 100, p.PageSize)
	})

	t.Run("valid values pass through", func(t *testing.T) {
		p := ParsePagination("3", "50")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 50, p.PageSize)
	})
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 20}
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 20, p.Limit())

	p = Pagination{Page: 3, PageSize: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 20, p.From())
	assert.Equal(t, 29, p.To())
}
