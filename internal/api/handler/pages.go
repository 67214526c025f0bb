package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Home renders the landing page behind login.
func Home(c echo.Context) error {
	return render(c, http.StatusOK, "index.html", nil)
}
