package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

type stubBookService struct {
	listFn   func(ctx context.Context) ([]*domain.Book, error)
	getFn    func(ctx context.Context, id string) (*domain.Book, error)
	createFn func(ctx context.Context, input ports.BookInput) (*domain.Book, error)
	updateFn func(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.listFn(ctx)
}

func (s *stubBookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	return s.createFn(ctx, input)
}

func (s *stubBookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubBookService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubAuthorService struct {
	listFn   func(ctx context.Context) ([]*domain.Author, error)
	getFn    func(ctx context.Context, id string) (*domain.Author, error)
	createFn func(ctx context.Context, input ports.AuthorInput) (*domain.Author, error)
	updateFn func(ctx context.Context, id string, input ports.AuthorInput) (*domain.Author, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubAuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	return s.listFn(ctx)
}

func (s *stubAuthorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	return s.getFn(ctx, id)
}

func (s *stubAuthorService) Create(ctx context.Context, input ports.AuthorInput) (*domain.Author, error) {
	return s.createFn(ctx, input)
}

func (s *stubAuthorService) Update(ctx context.Context, id string, input ports.AuthorInput) (*domain.Author, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubAuthorService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func noAuthors() *stubAuthorService {
	return &stubAuthorService{
		listFn: func(context.Context) ([]*domain.Author, error) {
			return nil, nil
		},
	}
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestBookHandler_List(t *testing.T) {
	e := newTestEcho(t)

	books := &stubBookService{
		listFn: func(context.Context) ([]*domain.Book, error) {
			return []*domain.Book{
				{ID: "1", Title: "The Hobbit", Author: "J.R.R. Tolkien", PublishedYear: 1937},
				{ID: "2", Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965},
			}, nil
		},
	}
	h := NewBookHandler(books, noAuthors())

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", &domain.Principal{ID: "u_1", Username: "alice", Role: domain.RoleViewer})

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"The Hobbit", "Dune", "1937"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q", want)
		}
	}
}

func TestBookHandler_Add_ValidationRedisplays(t *testing.T) {
	e := newTestEcho(t)

	books := &stubBookService{
		createFn: func(_ context.Context, input ports.BookInput) (*domain.Book, error) {
			return nil, &domain.ValidationError{Field: "published_year", Message: "published_year must be a number"}
		},
	}
	h := NewBookHandler(books, noAuthors())

	req := formRequest(http.MethodPost, "/books/add", url.Values{
		"title":          {"Some Title"},
		"author":         {"Some Author"},
		"published_year": {"abc"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Add(c); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "published_year must be a number") {
		t.Fatalf("expected validation notice in body")
	}
	// Entered values survive the redisplay.
	if !strings.Contains(body, "Some Title") || !strings.Contains(body, "abc") {
		t.Fatalf("expected submitted values to be preserved")
	}
}

func TestBookHandler_Add_Success(t *testing.T) {
	e := newTestEcho(t)

	var gotInput ports.BookInput
	books := &stubBookService{
		createFn: func(_ context.Context, input ports.BookInput) (*domain.Book, error) {
			gotInput = input
			return &domain.Book{ID: "bk_1", Title: input.Title}, nil
		},
	}
	h := NewBookHandler(books, noAuthors())

	req := formRequest(http.MethodPost, "/books/add", url.Values{
		"title":          {"Neuromancer"},
		"author":         {"William Gibson"},
		"published_year": {"1984"},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Add(c); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/books" {
		t.Fatalf("expected redirect to /books, got %q", loc)
	}
	if gotInput.Title != "Neuromancer" || gotInput.PublishedYear != "1984" {
		t.Fatalf("unexpected input passed to service: %+v", gotInput)
	}
}

func TestBookHandler_ShowEdit_InvalidID(t *testing.T) {
	e := newTestEcho(t)

	books := &stubBookService{
		getFn: func(_ context.Context, id string) (*domain.Book, error) {
			return nil, domain.ErrInvalidID
		},
	}
	h := NewBookHandler(books, noAuthors())

	req := httptest.NewRequest(http.MethodGet, "/books/edit/garbage", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("garbage")

	if err := h.ShowEdit(c); err != nil {
		t.Fatalf("ShowEdit returned error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/books" {
		t.Fatalf("expected redirect to /books, got %q", loc)
	}
	assertFlashContains(t, rec, "Invalid book ID")
}

func TestBookHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho(t)

	books := &stubBookService{
		deleteFn: func(_ context.Context, id string) error {
			return domain.ErrBookNotFound
		},
	}
	h := NewBookHandler(books, noAuthors())

	req := formRequest(http.MethodPost, "/books/delete/bk_404", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("bk_404")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if loc := rec.Header().Get("Location"); loc != "/books" {
		t.Fatalf("expected redirect to /books, got %q", loc)
	}
	assertFlashContains(t, rec, "Book not found")
}

func assertFlashContains(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name != "catalog_notice" {
			continue
		}
		value, err := url.QueryUnescape(ck.Value)
		if err != nil {
			t.Fatalf("unescape flash cookie: %v", err)
		}
		if !strings.Contains(value, want) {
			t.Fatalf("flash cookie %q does not contain %q", value, want)
		}
		return
	}
	t.Fatalf("flash cookie not set")
}
