package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/api/metrics"
	"github.com/marketsquare/secure-api/internal/core/authz"
	"github.com/marketsquare/secure-api/internal/core/domain"
)

// OwnerLookup fetches the current owner of the resource targeted by the
// request. It runs at decision time so ownership is never evaluated
// against a stale copy.
type OwnerLookup func(c echo.Context) (string, error)

// Authorize enforces the access policy for one endpoint class. All route
// groups go through this single middleware; the policy itself lives in
// authz.Decide. For OwnerOrAdmin a lookup must be provided, and its errors
// (typically not-found) propagate before any decision is made.
func Authorize(class authz.Class, lookup OwnerLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller := CallerFrom(c)

			ownerID := ""
			if class == authz.OwnerOrAdmin {
				// Deciding ownership needs a caller first; skip the fetch
				// for anonymous requests.
				if caller == nil {
					metrics.AuthzDenialsTotal.WithLabelValues("unauthenticated").Inc()
					return domain.ErrUnauthenticated
				}
				id, err := lookup(c)
				if err != nil {
					return err
				}
				ownerID = id
			}

			if err := authz.Decide(caller, class, ownerID); err != nil {
				reason := "forbidden"
				if err == domain.ErrUnauthenticated {
					reason = "unauthenticated"
				}
				metrics.AuthzDenialsTotal.WithLabelValues(reason).Inc()
				return err
			}
			return next(c)
		}
	}
}
