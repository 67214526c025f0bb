package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/library-catalog/internal/api/metrics"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// AuthorHandler serves the author list and the role-gated mutation routes.
type AuthorHandler struct {
	authors ports.AuthorService
}

func NewAuthorHandler(authors ports.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

type authorForm struct {
	Name string `form:"name"`
}

func (h *AuthorHandler) List(c echo.Context) error {
	authors, err := h.authors.List(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, "author_list.html", echo.Map{"Authors": authors})
}

func (h *AuthorHandler) ShowAdd(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "Add author", "/authors/add", authorForm{}, "")
}

func (h *AuthorHandler) Add(c echo.Context) error {
	var form authorForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, "Add author", "/authors/add", form, "Invalid form data.")
	}

	_, err := h.authors.Create(c.Request().Context(), ports.AuthorInput{Name: form.Name})
	if err != nil {
		if domain.IsValidation(err) {
			return h.renderForm(c, http.StatusBadRequest, "Add author", "/authors/add", form, err.Error())
		}
		return err
	}

	metrics.RecordMutationsTotal.WithLabelValues("authors", "create").Inc()
	return c.Redirect(http.StatusFound, "/authors")
}

func (h *AuthorHandler) ShowEdit(c echo.Context) error {
	id := c.Param("id")

	author, err := h.authors.Get(c.Request().Context(), id)
	if err != nil {
		return h.softFail(c, err)
	}

	return h.renderForm(c, http.StatusOK, "Edit author", "/authors/edit/"+id, authorForm{Name: author.Name}, "")
}

func (h *AuthorHandler) Edit(c echo.Context) error {
	id := c.Param("id")

	var form authorForm
	if err := c.Bind(&form); err != nil {
		return h.renderForm(c, http.StatusBadRequest, "Edit author", "/authors/edit/"+id, form, "Invalid form data.")
	}

	_, err := h.authors.Update(c.Request().Context(), id, ports.AuthorInput{Name: form.Name})
	if err != nil {
		if domain.IsValidation(err) {
			return h.renderForm(c, http.StatusBadRequest, "Edit author", "/authors/edit/"+id, form, err.Error())
		}
		return h.softFail(c, err)
	}

	metrics.RecordMutationsTotal.WithLabelValues("authors", "update").Inc()
	return c.Redirect(http.StatusFound, "/authors")
}

// Delete removes an author. Books referencing the author's name are left
// untouched; the dangling reference is accepted.
func (h *AuthorHandler) Delete(c echo.Context) error {
	if err := h.authors.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.softFail(c, err)
	}

	metrics.RecordMutationsTotal.WithLabelValues("authors", "delete").Inc()
	return c.Redirect(http.StatusFound, "/authors")
}

func (h *AuthorHandler) renderForm(c echo.Context, status int, title, action string, form authorForm, notice string) error {
	data := echo.Map{
		"FormTitle": title,
		"Action":    action,
		"Form":      form,
	}
	if notice != "" {
		data["Notice"] = notice
	}
	return render(c, status, "author_form.html", data)
}

func (h *AuthorHandler) softFail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		view.SetFlash(c, "Invalid author ID")
	case errors.Is(err, domain.ErrAuthorNotFound):
		view.SetFlash(c, "Author not found")
	default:
		return err
	}
	return c.Redirect(http.StatusFound, "/authors")
}
