package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

type stubAuthService struct {
	resolveFn func(ctx context.Context, token string) (*domain.Principal, error)
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*domain.User, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.Principal, error) {
	return "", nil, nil
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func TestAuth_RedirectsWithoutSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubAuthService{
		resolveFn: func(_ context.Context, token string) (*domain.Principal, error) {
			if token != "" {
				t.Fatalf("expected empty token, got %q", token)
			}
			return nil, nil
		},
	}

	handler := Auth(stub)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestAuth_InjectsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubAuthService{
		resolveFn: func(_ context.Context, token string) (*domain.Principal, error) {
			if token != "tok-123" {
				t.Fatalf("unexpected token: %q", token)
			}
			return &domain.Principal{ID: "u_1", Username: "alice", Role: domain.RoleViewer}, nil
		},
	}

	called := false
	handler := Auth(stub)(func(c echo.Context) error {
		called = true
		p, ok := c.Get("principal").(*domain.Principal)
		if !ok || p.Username != "alice" {
			t.Fatalf("principal not injected: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
