package dto

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageQueryFor(t *testing.T, rawQuery string) (PageQuery, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/api/v1/quotes?"+rawQuery, nil)
	require.NoError(t, err)
	c.Request = req
	return ParsePageQuery(c)
}

func TestParsePageQuery(t *testing.T) {
	q, err := pageQueryFor(t, "")
	require.NoError(t, err)
	assert.Equal(t, PageQuery{Page: 1, PageSize: DefaultPageSize, Offset: 0}, q)

	q, err = pageQueryFor(t, "page=3&page_size=10")
	require.NoError(t, err)
	assert.Equal(t, 20, q.Offset)

	q, err = pageQueryFor(t, "page_size=5000")
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, q.PageSize)

	for _, raw := range []string{"page=0", "page=-1", "page_size=abc"} {
		_, err := pageQueryFor(t, raw)
		assert.Error(t, err, raw)
	}
}

func TestPageQuery_Pagination(t *testing.T) {
	q := PageQuery{Page: 2, PageSize: 10, Offset: 10}

	assert.Equal(t, 0, q.Pagination(0).TotalPages)
	assert.Equal(t, 1, q.Pagination(10).TotalPages)
	assert.Equal(t, 3, q.Pagination(21).TotalPages)
	assert.Equal(t, 21, q.Pagination(21).TotalItems)
}
