package ports

import (
	"context"

	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// BookInput carries the raw book form fields. PublishedYear arrives as the
// submitted string and is parsed by the service.
type BookInput struct {
	Title         string `validate:"required"`
	Author        string `validate:"required"`
	PublishedYear string `validate:"required"`
}

// BookService defines the validation and CRUD operations for books.
type BookService interface {
	List(ctx context.Context) ([]*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, input BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}

// AuthorInput carries the raw author form fields.
type AuthorInput struct {
	Name string `validate:"required"`
}

// AuthorService defines the validation and CRUD operations for authors.
type AuthorService interface {
	List(ctx context.Context) ([]*domain.Author, error)
	Get(ctx context.Context, id string) (*domain.Author, error)
	Create(ctx context.Context, input AuthorInput) (*domain.Author, error)
	Update(ctx context.Context, id string, input AuthorInput) (*domain.Author, error)
	Delete(ctx context.Context, id string) error
}
