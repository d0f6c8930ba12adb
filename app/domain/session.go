package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionDuration is how long a session stays valid after login.
const DefaultSessionDuration = 24 * time.Hour

// sessionTokenBytes is the entropy of a session token before hex encoding.
const sessionTokenBytes = 32

// Session binds an opaque, unguessable token to a user for a bounded
// lifetime. The token is the only thing the client ever holds; the record
// itself lives server-side.
type Session struct {
	Token     string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates a session for the given user with a freshly generated
// random token. Each call yields an independent token, so concurrent logins
// for one account produce distinct sessions.
func NewSession(userID uuid.UUID, duration time.Duration) (*Session, error) {
	if userID == (uuid.UUID{}) {
		return nil, fmt.Errorf("user ID is required")
	}

	if duration <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()

	session := &Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}

	return session, nil
}

// GenerateSessionToken returns a cryptographically random hex token.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsExpired returns true if the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid returns true if the session can still authenticate requests.
func (s *Session) IsValid() bool {
	return !s.IsExpired()
}

// RemainingTime returns the time left until expiry, zero if expired.
func (s *Session) RemainingTime() time.Duration {
	if s.IsExpired() {
		return 0
	}
	return time.Until(s.ExpiresAt)
}
