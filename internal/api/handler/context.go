package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marketsquare/secure-api/internal/api/middleware"
	"github.com/marketsquare/secure-api/internal/core/domain"
	"github.com/marketsquare/secure-api/internal/core/token"
)

// ctxCaller extracts the caller resolved by the Authenticate middleware.
// Handlers behind an Authenticated/AdminOnly/OwnerOrAdmin route can assume
// it is present; the nil check is a guard against misregistered routes.
func ctxCaller(c echo.Context) (*domain.Caller, error) {
	caller := middleware.CallerFrom(c)
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	return caller, nil
}

// sessionCookie wraps a signed session token in the cookie the browser will
// replay on every request. HttpOnly keeps it away from scripts; Secure
// keeps it off plaintext transports.
func sessionCookie(signed string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     token.CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
	}
}

// expiredSessionCookie replaces the session cookie with an empty value and
// Max-Age=0, causing immediate client-side discard. The token it replaces
// stays verifiable until its natural expiry; there is no revocation list.
func expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     token.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	}
}
