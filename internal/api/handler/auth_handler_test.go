package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/middleware"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("build renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.Principal, error)
	resolveFn  func(ctx context.Context, token string) (*domain.Principal, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Principal, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.Principal, error) {
			if username != "admin" || password != "admin123" {
				t.Fatalf("unexpected credentials: %s/%s", username, password)
			}
			return "signed-token", &domain.Principal{ID: "u_1", Username: "admin", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			session = ck
		}
	}
	if session == nil || session.Value != "signed-token" {
		t.Fatalf("session cookie not set: %+v", session)
	}
	if !session.HttpOnly {
		t.Fatalf("expected session cookie to be http-only")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Principal, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password.") {
		t.Fatalf("expected invalid-credentials notice in body")
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Principal, error) {
			t.Fatalf("service should not be called on validation failure")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/login", url.Values{"username": {"admin"}})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "password is required") {
		t.Fatalf("expected missing-password notice in body")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/register", url.Values{
		"username": {"admin"},
		"password": {"pw"},
		"role":     {"viewer"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "User already exists.") {
		t.Fatalf("expected duplicate-user notice in body")
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "u_1", Username: input.Username, Role: domain.Role(input.Role)}, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/register", url.Values{
		"username": {"newbie"},
		"password": {"pw"},
		"role":     {"editor"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	assertFlashContains(t, rec, "User registered successfully!")
}

func TestAuthHandler_Register_BadRole(t *testing.T) {
	e := newTestEcho(t)

	auth := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("service should not be called on validation failure")
			return nil, nil
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := formRequest(http.MethodPost, "/register", url.Values{
		"username": {"newbie"},
		"password": {"pw"},
		"role":     {"superuser"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho(t)

	loggedOut := ""
	auth := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			loggedOut = token
			return nil
		},
	}
	h := NewAuthHandler(auth, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if loggedOut != "tok-1" {
		t.Fatalf("expected session teardown with tok-1, got %q", loggedOut)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName && ck.MaxAge >= 0 {
			t.Fatalf("expected session cookie to be expired, got MaxAge=%d", ck.MaxAge)
		}
	}
}
