package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/metrics"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// BookHandler serves the book list and the role-gated mutation routes.
type BookHandler struct {
	books   ports.BookService
	authors ports.AuthorService
}

func NewBookHandler(books ports.BookService, authors ports.AuthorService) *BookHandler {
	return &BookHandler{books: books, authors: authors}
}

type bookForm struct {
	Title         string `form:"title"`
	Author        string `form:"author"`
	PublishedYear string `form:"published_year"`
}

func (f bookForm) input() ports.BookInput {
	return ports.BookInput{Title: f.Title, Author: f.Author, PublishedYear: f.PublishedYear}
}

func (h *BookHandler) List(c echo.Context) error {
	books, err := h.books.List(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "book_list.html", echo.Map{"Books": books})
}

func (h *BookHandler) ShowAdd(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "Add book", "/books/add", bookForm{}, "")
}

func (h *BookHandler) Add(c echo.Context) error {
	var form bookForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, "Add book", "/books/add", form, "Invalid form data.")
	}

	_, err := h.books.Create(c.Request().Context(), form.input())
	if err != nil {
		if domain.IsValidation(err) {
			return h.renderForm(c, http.StatusBadRequest, "Add book", "/books/add", form, err.Error())
		}
		return err
	}

	metrics.RecordMutationsTotal.WithLabelValues("books", "create").Inc()
	return c.Redirect(http.StatusFound, "/books")
}

func (h *BookHandler) ShowEdit(c echo.Context) error {
	id := c.Param("id")

	book, err := h.books.Get(c.Request().Context(), id)
	if err != nil {
		return h.softFail(c, err)
	}

	form := bookForm{
		Title:         book.Title,
		Author:        book.Author,
		PublishedYear: strconv.Itoa(book.PublishedYear),
	}
	return h.renderForm(c, http.StatusOK, "Edit book", "/books/edit/"+id, form, "")
}

func (h *BookHandler) Edit(c echo.Context) error {
	id := c.Param("id")

	var form bookForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, "Edit book", "/books/edit/"+id, form, "Invalid form data.")
	}

	_, err := h.books.Update(c.Request().Context(), id, form.input())
	if err != nil {
		if domain.IsValidation(err) {
			return h.renderForm(c, http.StatusBadRequest, "Edit book", "/books/edit/"+id, form, err.Error())
		}
		return h.softFail(c, err)
	}

	metrics.RecordMutationsTotal.WithLabelValues("books", "update").Inc()
	return c.Redirect(http.StatusFound, "/books")
}

func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.books.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.softFail(c, err)
	}

	metrics.RecordMutationsTotal.WithLabelValues("books", "delete").Inc()
	return c.Redirect(http.StatusFound, "/books")
}

// renderForm shows the add/edit form, listing existing authors for selection.
func (h *BookHandler) renderForm(c echo.Context, status int, title, action string, form bookForm, notice string) error {
	authors, err := h.authors.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := echo.Map{
		"FormTitle": title,
		"Action":    action,
		"Form":      form,
		"Authors":   authors,
	}
	if notice != "" {
		data["Notice"] = notice
	}
	return render(c, status, "book_form.html", data)
}

// softFail recovers id-based lookup failures into a redirect to the list
// view with a notice. Malformed ids never reach the store.
func (h *BookHandler) softFail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		view.SetFlash(c, "Invalid book ID")
	case errors.Is(err, domain.ErrBookNotFound):
		view.SetFlash(c, "Book not found")
	default:
		return err
	}
	return c.Redirect(http.StatusFound, "/books")
}
