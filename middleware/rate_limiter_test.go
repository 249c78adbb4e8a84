package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitedRequest(t *testing.T, limiter *RateLimiter, path string) int {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	handler := limiter.RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	limiter := NewRateLimiter()

	// The login endpoint allows a burst of 5, then blocks the IP.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, rateLimitedRequest(t, limiter, "/api/auth/login"))
	}
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(t, limiter, "/api/auth/login"))

	// Once blocked, the IP stays blocked on the next request too.
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(t, limiter, "/api/auth/login"))
}

func TestRateLimitDefaultBurst(t *testing.T) {
	limiter := NewRateLimiter()

	// Unlisted paths use the default burst of 20.
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, rateLimitedRequest(t, limiter, "/api/services"))
	}
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedRequest(t, limiter, "/api/services"))
}
