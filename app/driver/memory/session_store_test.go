package memory

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard-gateway/app/domain"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store := NewSessionStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(store.Close)
	return store
}

func newTestSession(t *testing.T, duration time.Duration) *domain.Session {
	t.Helper()
	session, err := domain.NewSession(uuid.New(), duration)
	require.NoError(t, err)
	return session
}

func TestSessionStore_CreateGetDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := newTestSession(t, time.Hour)
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.Token, got.Token)

	require.NoError(t, store.Delete(ctx, session.Token))

	_, err = store.Get(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionStore_GetUnknownToken(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Delete(ctx, "absent"))
	assert.NoError(t, store.Delete(ctx, "absent"))
}

func TestSessionStore_DeleteExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	expired := newTestSession(t, time.Millisecond)
	live := newTestSession(t, time.Hour)

	require.NoError(t, store.Create(ctx, expired))
	require.NoError(t, store.Create(ctx, live))

	time.Sleep(5 * time.Millisecond)

	removed, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, live.Token)
	assert.NoError(t, err)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 20

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := newTestSession(t, time.Hour)
			if !assert.NoError(t, store.Create(ctx, session)) {
				return
			}
			_, err := store.Get(ctx, session.Token)
			assert.NoError(t, err)
			assert.NoError(t, store.Delete(ctx, session.Token))
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}
