package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"goldcosmetics/internal/auth"
	"goldcosmetics/internal/authz"
)

// errSessionReplaced marks a structurally valid token whose session is no
// longer the account's live one (a newer login replaced it, it expired, or
// the user logged out).
var errSessionReplaced = errors.New("session no longer active")

// Session authenticates requests on non-public paths. The token comes from
// the session cookie or a bearer header; besides the signature check, its
// session id must still match the account's live session in the store, so a
// second login invalidates the first immediately.
//
// Failures redirect to the login flow: no credentials at all go to /login,
// anything stale or invalid goes to /login?expired.
func Session(jwtSvc *auth.JWTService, sessions auth.SessionStoreInterface, policy *authz.Policy) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			return policy.IsPublic(c.Request().URL.Path)
		},
		TokenLookup: "cookie:" + auth.SessionCookieName + ",header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtSvc.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			current, err := sessions.Current(c.Request().Context(), claims.UserID)
			if err != nil || current != claims.ID {
				return nil, errSessionReplaced
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !hasCredentials(c) {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return c.Redirect(http.StatusSeeOther, "/login?expired")
		},
	})
}

func hasCredentials(c echo.Context) bool {
	if _, err := c.Cookie(auth.SessionCookieName); err == nil {
		return true
	}
	return c.Request().Header.Get(echo.HeaderAuthorization) != ""
}
