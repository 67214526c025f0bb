package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/metrics"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// RequireMutate gates mutating routes behind the role policy. A principal
// whose role cannot mutate is bounced back to listPath with an "Access
// denied" notice rather than a hard 403.
func RequireMutate(listPath string) echo.MiddlewareFunc {
	resource := strings.Trim(listPath, "/")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := c.Get("principal").(*domain.Principal)
			if !ok {
				view.SetFlash(c, "Please log in to continue.")
				return c.Redirect(http.StatusFound, "/login")
			}

			if !principal.Role.CanMutate() {
				metrics.AccessDeniedTotal.WithLabelValues(resource).Inc()
				view.SetFlash(c, "Access denied")
				return c.Redirect(http.StatusFound, listPath)
			}

			return next(c)
		}
	}
}
