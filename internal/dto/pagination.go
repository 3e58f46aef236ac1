package dto

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PageQuery is a journal page request resolved to a row window.
type PageQuery struct {
	Page     int
	PageSize int
	Offset   int
}

// ParsePageQuery reads page and page_size. Non-numeric or non-positive
// values are rejected; page_size is capped at MaxPageSize.
func ParsePageQuery(c *gin.Context) (PageQuery, error) {
	page, err := positiveQuery(c, "page", 1)
	if err != nil {
		return PageQuery{}, err
	}
	size, err := positiveQuery(c, "page_size", DefaultPageSize)
	if err != nil {
		return PageQuery{}, err
	}
	size = min(size, MaxPageSize)

	return PageQuery{Page: page, PageSize: size, Offset: (page - 1) * size}, nil
}

func positiveQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, raw)
	}
	return n, nil
}

func (q PageQuery) Pagination(totalItems int) Pagination {
	return Pagination{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: totalItems,
		TotalPages: (totalItems + q.PageSize - 1) / q.PageSize,
	}
}
