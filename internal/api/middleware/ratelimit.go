package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/api/metrics"
	"github.com/marketsquare/secure-api/internal/ratelimit"
)

// RateLimit admits at most the configured budget per client address. It is
// placed in front of the credential endpoints; rejected requests get a
// plain-text 429 and never reach a handler.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP()) {
				metrics.RateLimitedTotal.WithLabelValues(c.Path()).Inc()
				return c.String(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}
