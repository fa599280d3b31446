package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/authz"
	"goldcosmetics/internal/model"
)

// Authorize enforces the policy table before any handler runs. It assumes
// Session already authenticated the request on non-public paths; an
// authenticated but under-privileged account is rejected, not redirected.
func Authorize(policy *authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if policy.IsPublic(path) {
				return next(c)
			}

			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			if !policy.Allows(model.Role(claims.Role), path) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

// CurrentClaims returns the session claims set by Session, or nil on public
// paths reached without a login.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get("user").(*auth.Claims)
	return claims
}
