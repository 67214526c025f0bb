package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// CurrentPrincipal extracts the principal injected by the Auth middleware.
func CurrentPrincipal(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get("principal").(*domain.Principal)
	return p, ok
}

// render wraps c.Render, injecting the current principal and any pending
// flash notice so every page can show the nav bar and notices.
func render(c echo.Context, status int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if p, ok := CurrentPrincipal(c); ok {
		data["Principal"] = p
	}
	if _, ok := data["Notice"]; !ok {
		data["Notice"] = view.TakeFlash(c)
	}
	return c.Render(status, name, data)
}
