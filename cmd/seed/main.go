// Command seed provisions the demo accounts and sample catalog records.
// Safe to run repeatedly: existing users are left alone and sample records
// are only inserted into empty collections.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"

	"github.com/shelfmark/library-catalog/internal/core/domain"
	"github.com/shelfmark/library-catalog/internal/core/service"
	"github.com/shelfmark/library-catalog/internal/infrastructure/config"
	mongodb "github.com/shelfmark/library-catalog/internal/infrastructure/db/mongo"
	"github.com/shelfmark/library-catalog/pkg/logger"
)

var seedUsers = []struct {
	username string
	password string
	role     domain.Role
}{
	{"admin", "admin123", domain.RoleAdmin},
	{"editor", "editor123", domain.RoleEditor},
	{"viewer", "viewer123", domain.RoleViewer},
}

var seedAuthors = []string{
	"J.K. Rowling",
	"J.R.R. Tolkien",
	"George R.R. Martin",
}

var seedBooks = []domain.Book{
	{Title: "Harry Potter and the Sorcerer's Stone", Author: "J.K. Rowling", PublishedYear: 1997},
	{Title: "The Hobbit", Author: "J.R.R. Tolkien", PublishedYear: 1937},
	{Title: "A Game of Thrones", Author: "George R.R. Martin", PublishedYear: 1996},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	for _, u := range seedUsers {
		hash, err := service.HashPassword(u.password)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		_, err = users.Create(ctx, &domain.User{
			Username:     u.username,
			PasswordHash: hash,
			Role:         u.role,
			CreatedAt:    time.Now().UTC(),
		})
		switch {
		case err == nil:
			log.Info().Str("username", u.username).Str("role", string(u.role)).Msg("user created")
		case errors.Is(err, domain.ErrUserExists):
			log.Info().Str("username", u.username).Msg("user already present, skipping")
		default:
			log.Fatal().Err(err).Str("username", u.username).Msg("failed to create user")
		}
	}

	authors := mongodb.NewAuthorRepository(db)
	existingAuthors, err := authors.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list authors")
	}
	if len(existingAuthors) == 0 {
		for _, name := range seedAuthors {
			if _, err := authors.Insert(ctx, &domain.Author{Name: name}); err != nil {
				log.Fatal().Err(err).Str("name", name).Msg("failed to insert author")
			}
		}
		log.Info().Int("count", len(seedAuthors)).Msg("authors seeded")
	}

	books := mongodb.NewBookRepository(db)
	existingBooks, err := books.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list books")
	}
	if len(existingBooks) == 0 {
		for i := range seedBooks {
			if _, err := books.Insert(ctx, &seedBooks[i]); err != nil {
				log.Fatal().Err(err).Str("title", seedBooks[i].Title).Msg("failed to insert book")
			}
		}
		log.Info().Int("count", len(seedBooks)).Msg("books seeded")
	}

	log.Info().Msg("seeding complete")
}
