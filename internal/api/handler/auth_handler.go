package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/metrics"
	"github.com/shelfmark/library-catalog/internal/api/middleware"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// AuthHandler serves the login, registration and logout routes.
type AuthHandler struct {
	auth       ports.AuthService
	sessionTTL time.Duration
}

func NewAuthHandler(auth ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, sessionTTL: sessionTTL}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Role     string `form:"role"     validate:"required,oneof=admin editor viewer"`
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return render(c, http.StatusOK, "login.html", nil)
}

// Login verifies the submitted credentials and establishes a session. A
// failed attempt redisplays the form with a notice; only store failures
// surface as errors.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return render(c, http.StatusBadRequest, "login.html", echo.Map{"Notice": "Invalid form data."})
	}
	if err := c.Validate(&form); err != nil {
		return render(c, http.StatusBadRequest, "login.html", echo.Map{"Notice": err.Error()})
	}

	token, _, err := h.auth.Login(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return render(c, http.StatusUnauthorized, "login.html", echo.Map{"Notice": "Invalid username or password."})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return render(c, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return render(c, http.StatusBadRequest, "register.html", echo.Map{"Notice": "Invalid form data."})
	}
	if err := c.Validate(&form); err != nil {
		return render(c, http.StatusBadRequest, "register.html", echo.Map{"Notice": err.Error()})
	}

	_, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return render(c, http.StatusConflict, "register.html", echo.Map{"Notice": "User already exists."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return render(c, http.StatusBadRequest, "register.html", echo.Map{"Notice": "Invalid registration data."})
		}
		return err
	}

	view.SetFlash(c, "User registered successfully!")
	return c.Redirect(http.StatusFound, "/login")
}

// Logout tears down the current session. Calling it without a session is a
// no-op beyond the redirect.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), ck.Value); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.Redirect(http.StatusFound, "/login")
}
