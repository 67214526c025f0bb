package ports

import (
	"context"

	"github.com/shelfmark/library-catalog/internal/core/domain"
)

// SessionStore keeps server-side session records for the lifetime of a login.
type SessionStore interface {
	// Put stores the session under its id with the configured TTL.
	Put(ctx context.Context, sess *domain.Session) error
	// Get returns the session for sid, or (nil, nil) when no such session
	// exists (expired, deleted, or never established).
	Get(ctx context.Context, sid string) (*domain.Session, error)
	// Delete tears down the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, sid string) error
}
