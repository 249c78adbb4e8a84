// middleware/request_id.go
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const RequestIDHeader = "X-Request-Id"

// RequestID attaches a UUID to every request, reusing the caller's id when
// one is already present, and echoes it on the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			c.Set("requestId", id)
			c.Response().Header().Set(RequestIDHeader, id)

			return next(c)
		}
	}
}
