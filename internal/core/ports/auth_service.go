package ports

import (
	"context"

	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// RegisterInput carries the fields of the registration form.
type RegisterInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	Role     string `validate:"required,oneof=admin editor viewer"`
}

// AuthService implements registration, login and session identity.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials, establishes a session and returns the
	// signed session token together with the principal snapshot.
	Login(ctx context.Context, username, password string) (string, *domain.Principal, error)
	// Resolve reconstructs the principal from a session token. It returns
	// (nil, nil) when the token is absent, invalid, expired, or the
	// referenced user no longer exists. All of those read as logged out.
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
	// Logout destroys the session the token refers to. Idempotent.
	Logout(ctx context.Context, token string) error
}
