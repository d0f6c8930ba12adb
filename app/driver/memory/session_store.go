package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dashboard-gateway/app/domain"
)

// sweepInterval is how often the background sweep drops expired sessions.
const sweepInterval = 1 * time.Minute

// SessionStore provides thread-safe in-memory session storage keyed by
// token. Implements port.SessionStore. Lookups are a plain map access, so
// a miss behaves identically for unknown and malformed tokens.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	logger   *slog.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore creates a session store and starts its expiry sweep.
func NewSessionStore(logger *slog.Logger) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]domain.Session),
		logger:   logger.With("component", "session_store"),
		stop:     make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// Create stores a session record under its token.
func (s *SessionStore) Create(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.Token] = *session
	return nil
}

// Get retrieves a session by token. Expired records may still be returned;
// the caller decides what expiry means.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, found := s.sessions[token]
	if !found {
		return nil, domain.ErrUnauthenticated
	}
	return &session, nil
}

// Delete removes a session. Deleting an absent token is a no-op, which
// makes logout idempotent.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions and reports how many.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweep.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// sweepLoop runs periodic cleanup of expired sessions.
func (s *SessionStore) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed, _ := s.DeleteExpired(context.Background()); removed > 0 {
				s.logger.Debug("swept expired sessions", "removed", removed)
			}
		case <-s.stop:
			return
		}
	}
}
