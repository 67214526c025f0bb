package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// BookService validates book input and performs CRUD against the store.
type BookService struct {
	repo     ports.BookRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, validate: validator.New(), log: log}
}

func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	return s.repo.List(ctx)
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	book, err := s.buildBook(input)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, book)
	if err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to insert book")
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

// Update replaces all mutable fields of the book; it is a full overwrite of
// the field set, not a partial merge.
func (s *BookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	book, err := s.buildBook(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, book); err != nil {
		return nil, err
	}

	book.ID = id
	s.log.Info().Str("id", id).Str("title", book.Title).Msg("book updated")
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("book deleted")
	return nil
}

// buildBook checks required fields and parses published_year.
func (s *BookService) buildBook(input ports.BookInput) (*domain.Book, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(input.PublishedYear))
	if err != nil {
		return nil, &domain.ValidationError{Field: "published_year", Message: "published_year must be a number"}
	}

	return &domain.Book{
		Title:         input.Title,
		Author:        input.Author,
		PublishedYear: year,
	}, nil
}

// asValidationError converts a validator error into the domain type with a
// message safe to redisplay on the form.
func asValidationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := snakeField(ve[0].Field())
		return &domain.ValidationError{Field: field, Message: field + " is required"}
	}
	return err
}

// snakeField maps struct field names to their form field names.
func snakeField(name string) string {
	switch name {
	case "PublishedYear":
		return "published_year"
	default:
		return strings.ToLower(name)
	}
}
