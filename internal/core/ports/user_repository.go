package ports

import (
	"context"

	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// UserRepository defines persistence for the users collection.
type UserRepository interface {
	// Create inserts a new user and returns it with the store-assigned id.
	// Returns domain.ErrUserExists when the username is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername looks up a user by exact, case-sensitive username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByID looks up a user by its store id. Returns domain.ErrInvalidID
	// when id is not a well-formed identifier for the store.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
