package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/api/metrics"
	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/ports"
	"github.com/marketsquare/secure-api/internal/core/token"
)

const callerKey = "caller"

// Authenticate resolves the caller identity from the session cookie and
// attaches it to the request context. It never rejects: a missing cookie,
// an invalid or expired token, and a subject that no longer exists all
// leave the request unauthenticated, and the authorization layer decides
// whether that is acceptable for the target endpoint.
func Authenticate(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(token.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			subject, err := codec.Verify(cookie.Value, time.Now().UTC())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			// Fresh lookup: a user deleted after issuance must not resolve.
			user, err := users.FindByEmail(c.Request().Context(), subject)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(callerKey, &domain.Caller{ID: user.ID, Role: user.Role})
			return next(c)
		}
	}
}

// CallerFrom returns the caller resolved by Authenticate, or nil when the
// request is unauthenticated.
func CallerFrom(c echo.Context) *domain.Caller {
	caller, _ := c.Get(callerKey).(*domain.Caller)
	return caller
}
