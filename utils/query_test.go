package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func testContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestParsePagination(t *testing.T) {
	page, limit := ParsePagination(testContext(""), 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePagination(testContext("page=3&limit=50"), 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	// Out-of-range values fall back or get clamped.
	page, limit = ParsePagination(testContext("page=0&limit=500"), 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePagination(testContext("page=abc&limit=-1"), 20)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestParseSort(t *testing.T) {
	field, order := ParseSort(testContext(""), "rating", -1, "rating", "hourlyRate")
	assert.Equal(t, "rating", field)
	assert.Equal(t, -1, order)

	field, order = ParseSort(testContext("sortBy=hourlyRate&sortOrder=asc"), "rating", -1, "rating", "hourlyRate")
	assert.Equal(t, "hourlyRate", field)
	assert.Equal(t, 1, order)

	// Unknown fields fall back to the default when an allow-list is given.
	field, _ = ParseSort(testContext("sortBy=password"), "rating", -1, "rating", "hourlyRate")
	assert.Equal(t, "rating", field)

	// Without an allow-list any field goes through.
	field, order = ParseSort(testContext("sortBy=city&sortOrder=desc"), "createdAt", -1)
	assert.Equal(t, "city", field)
	assert.Equal(t, -1, order)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 5, TotalPages(100, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}
