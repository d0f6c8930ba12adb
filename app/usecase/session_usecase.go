package usecase

import (
	"context"
	"log/slog"
	"time"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"

	"github.com/google/uuid"
)

// SessionUsecase implements server-side session management on top of an
// injected SessionStore.
type SessionUsecase struct {
	sessions port.SessionStore
	users    port.UserRepository
	duration time.Duration
	logger   *slog.Logger
}

// NewSessionUsecase creates a new SessionUsecase instance
func NewSessionUsecase(sessions port.SessionStore, users port.UserRepository, duration time.Duration, logger *slog.Logger) *SessionUsecase {
	if duration <= 0 {
		duration = domain.DefaultSessionDuration
	}
	return &SessionUsecase{
		sessions: sessions,
		users:    users,
		duration: duration,
		logger:   logger.With("component", "session_usecase"),
	}
}

// Create issues a fresh session for the user. Tokens are generated from
// crypto/rand; nothing about the user id or prior sessions feeds into them.
func (uc *SessionUsecase) Create(ctx context.Context, userID uuid.UUID) (*domain.Session, error) {
	session, err := domain.NewSession(userID, uc.duration)
	if err != nil {
		uc.logger.Error("failed to create session", "error", err)
		return nil, domain.ErrInternal
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		uc.logger.Error("failed to store session", "error", err)
		return nil, domain.ErrInternal
	}

	uc.logger.Info("session created", "user_id", userID, "expires_at", session.ExpiresAt)
	return session, nil
}

// Resolve maps a token to its user. Unknown, expired and malformed tokens
// all come back as domain.ErrUnauthenticated with no further detail.
func (uc *SessionUsecase) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	if session.IsExpired() {
		// Lazy expiry: treat like an absent session and drop the record.
		if err := uc.sessions.Delete(ctx, token); err != nil {
			uc.logger.Warn("failed to drop expired session", "error", err)
		}
		return nil, domain.ErrUnauthenticated
	}

	user, err := uc.users.GetUserByID(ctx, session.UserID.String())
	if err != nil {
		uc.logger.Warn("session references unknown user", "user_id", session.UserID)
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

// Destroy removes the session. Already-absent sessions are not an error.
func (uc *SessionUsecase) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := uc.sessions.Delete(ctx, token); err != nil {
		uc.logger.Error("failed to destroy session", "error", err)
		return domain.ErrInternal
	}

	return nil
}
