package inkpress

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	adminTokenCookie = "admin_token"
	tokenMaxAge      = 60 * 60 * 24 * 2 // 2 days
)

// clientFingerprint derives the rate-limit key for a request: a hash of
// client IP and user agent, so attempts are grouped without storing raw
// client identity.
func clientFingerprint(c echo.Context) string {
	ua := c.Request().UserAgent()
	if ua == "" {
		ua = "unknown"
	}
	sum := sha256.Sum256([]byte(c.RealIP() + ":" + ua))
	return hex.EncodeToString(sum[:])
}

// verifyCredential compares a submitted password against the expected one.
// The length check short-circuits first (revealing length inequality is an
// accepted tradeoff); equal-length inputs are compared in constant time.
func verifyCredential(submitted, expected string) bool {
	if len(submitted) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) == 1
}

// issueToken sets the admin token cookie on the response. The token is the
// configured pre-shared secret; its lifetime is the cookie's max-age, there
// is no independent expiry.
func (a *App) issueToken(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     adminTokenCookie,
		Value:    a.Config.AdminToken,
		Path:     "/",
		MaxAge:   tokenMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.Config.CookieSecure,
	})
}

// validateToken reports whether the request carries a token cookie matching
// the configured secret.
func (a *App) validateToken(c echo.Context) bool {
	if a.Config.AdminToken == "" {
		return false
	}
	cookie, err := c.Cookie(adminTokenCookie)
	if err != nil {
		return false
	}
	return cookie.Value == a.Config.AdminToken
}

// clearToken expires the admin token cookie.
func (a *App) clearToken(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     adminTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.Config.CookieSecure,
	})
}
