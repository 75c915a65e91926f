package entity

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// ParsePagination normalizes raw query values. Missing or garbage input
// falls back to page 1, size 20; size is clamped to [1, 100].
func ParsePagination(page, pageSize string) Pagination {
	p := Pagination{Page: DefaultPage, PageSize: DefaultPageSize}

	if n, err := strconv.Atoi(page); err == nil && n >= 1 {
		p.Page = n
	}
	if n, err := strconv.Atoi(pageSize); err == nil && n >= 1 {
		p.PageSize = n
		if p.PageSize > MaxPageSize {
			p.PageSize = MaxPageSize
		}
	}
	return p
}

func (p Pagination) Offset() int { return (p.Page - 1) * p.PageSize }
func (p Pagination) Limit() int  { return p.PageSize }

// From and To are the inclusive offset range covered by this page.
func (p Pagination) From() int { return p.Offset() }
func (p Pagination) To() int   { return p.Offset() + p.PageSize - 1 }
