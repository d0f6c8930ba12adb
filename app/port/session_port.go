package port

import (
	"context"

	"dashboard-gateway/app/domain"

	"github.com/google/uuid"
)

// SessionUsecase defines session management business logic interface
type SessionUsecase interface {
	// Create issues a new session for the user and returns it, token
	// included. Every call produces an independent session.
	Create(ctx context.Context, userID uuid.UUID) (*domain.Session, error)
	// Resolve maps a presented token to the owning user. Absent, expired
	// and malformed tokens all fail with domain.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (*domain.User, error)
	// Destroy removes the session unconditionally. Destroying an absent
	// session is not an error.
	Destroy(ctx context.Context, token string) error
}

// SessionStore defines session data access interface
type SessionStore interface {
	Create(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}
