// utils/query.go
package utils

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ParsePagination reads page/limit query params, clamping them to the
// documented bounds (page >= 1, 1 <= limit <= 100).
func ParsePagination(c echo.Context, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit

	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p >= 1 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l >= 1 {
		limit = l
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// ParseSort reads sortBy/sortOrder query params. sortBy is constrained to
// the allowed fields when a non-empty allow-list is given; unknown values
// fall back to the default. Returns the field and the Mongo sort direction.
func ParseSort(c echo.Context, defaultField string, defaultOrder int, allowed ...string) (string, int) {
	field := c.QueryParam("sortBy")
	if field == "" {
		field = defaultField
	} else if len(allowed) > 0 {
		ok := false
		for _, a := range allowed {
			if field == a {
				ok = true
				break
			}
		}
		if !ok {
			field = defaultField
		}
	}

	order := defaultOrder
	switch c.QueryParam("sortOrder") {
	case "asc":
		order = 1
	case "desc":
		order = -1
	}
	return field, order
}

// TotalPages computes ceil(total/limit) for the pagination block.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
