package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "catalog_session"

// Auth resolves the session cookie into a principal and injects it into the
// request context. Requests without a resolvable principal are redirected to
// the login page; only store failures propagate as hard errors.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			if ck, err := c.Cookie(SessionCookieName); err == nil {
				token = ck.Value
			}

			principal, err := auth.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if principal == nil {
				view.SetFlash(c, "Please log in to continue.")
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set("principal", principal)
			return next(c)
		}
	}
}
