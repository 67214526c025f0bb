package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/ports"
)

// AuthorService validates author input and performs CRUD against the store.
// Deleting an author never cascades: books reference authors by name only,
// and dangling references are accepted.
type AuthorService struct {
	repo     ports.AuthorRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthorService(repo ports.AuthorRepository, log zerolog.Logger) *AuthorService {
	return &AuthorService{repo: repo, validate: validator.New(), log: log}
}

func (s *AuthorService) List(ctx context.Context) ([]*domain.Author, error) {
	return s.repo.List(ctx)
}

func (s *AuthorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthorService) Create(ctx context.Context, input ports.AuthorInput) (*domain.Author, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	created, err := s.repo.Insert(ctx, &domain.Author{Name: input.Name})
	if err != nil {
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to insert author")
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("name", created.Name).Msg("author created")
	return created, nil
}

func (s *AuthorService) Update(ctx context.Context, id string, input ports.AuthorInput) (*domain.Author, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, asValidationError(err)
	}

	author := &domain.Author{ID: id, Name: input.Name}
	if err := s.repo.Update(ctx, id, author); err != nil {
		return nil, err
	}

	s.log.Info().Str("id", id).Str("name", author.Name).Msg("author updated")
	return author, nil
}

func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("author deleted")
	return nil
}
