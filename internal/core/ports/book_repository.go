package ports

import (
	"context"

	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// BookRepository defines persistence for the books collection. Implementations
// validate id well-formedness before any lookup and return domain.ErrInvalidID
// for malformed ids.
type BookRepository interface {
	// List returns all books in store order.
	List(ctx context.Context) ([]*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	// Insert stores a new book and returns it with the assigned id.
	Insert(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// Update replaces all mutable fields of the book with the given id.
	Update(ctx context.Context, id string, book *domain.Book) error
	// Delete removes the book. Deleting a nonexistent id reports
	// domain.ErrBookNotFound rather than silently succeeding.
	Delete(ctx context.Context, id string) error
}

// AuthorRepository defines persistence for the authors collection, with the
// same id semantics as BookRepository.
type AuthorRepository interface {
	List(ctx context.Context) ([]*domain.Author, error)
	FindByID(ctx context.Context, id string) (*domain.Author, error)
	Insert(ctx context.Context, author *domain.Author) (*domain.Author, error)
	Update(ctx context.Context, id string, author *domain.Author) error
	Delete(ctx context.Context, id string) error
}
