package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/driver/memory"
)

func newSessionFixture(t *testing.T) (*SessionUsecase, *MockUserRepository, *domain.User) {
	t.Helper()

	user, err := domain.NewUser("Ann", "ann@x.com", "$2a$10$hash")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("GetUserByID", mock.Anything, user.ID.String()).Return(user, nil).Maybe()

	store := memory.NewSessionStore(testLogger())
	t.Cleanup(store.Close)

	uc := NewSessionUsecase(store, repo, time.Hour, testLogger())
	return uc, repo, user
}

func TestSessionUsecase_CreateAndResolve(t *testing.T) {
	uc, _, user := newSessionFixture(t)
	ctx := context.Background()

	session, err := uc.Create(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)

	resolved, err := uc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestSessionUsecase_ResolveUnknownToken(t *testing.T) {
	uc, _, _ := newSessionFixture(t)
	ctx := context.Background()

	_, err := uc.Resolve(ctx, "never-issued-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Malformed tokens read the same as unknown ones.
	_, err = uc.Resolve(ctx, "\x00\xff not even hex")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestSessionUsecase_ResolveExpiredSession(t *testing.T) {
	user, err := domain.NewUser("Ann", "ann@x.com", "$2a$10$hash")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	store := memory.NewSessionStore(testLogger())
	t.Cleanup(store.Close)

	uc := NewSessionUsecase(store, repo, time.Hour, testLogger())
	ctx := context.Background()

	session, err := domain.NewSession(user.ID, time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, store.Create(ctx, session))

	time.Sleep(5 * time.Millisecond)

	_, err = uc.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Lazy expiry drops the record.
	_, err = store.Get(ctx, session.Token)
	assert.Error(t, err)
}

func TestSessionUsecase_Destroy(t *testing.T) {
	uc, _, user := newSessionFixture(t)
	ctx := context.Background()

	session, err := uc.Create(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, uc.Destroy(ctx, session.Token))

	_, err = uc.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Destroy is idempotent.
	assert.NoError(t, uc.Destroy(ctx, session.Token))
	assert.NoError(t, uc.Destroy(ctx, ""))
}

func TestSessionUsecase_ConcurrentLoginsYieldIndependentSessions(t *testing.T) {
	uc, _, user := newSessionFixture(t)
	ctx := context.Background()

	const logins = 10

	var wg sync.WaitGroup
	tokens := make([]string, logins)

	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := uc.Create(ctx, user.ID)
			if assert.NoError(t, err) {
				tokens[i] = session.Token
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, token := range tokens {
		require.NotEmpty(t, token)
		assert.False(t, seen[token])
		seen[token] = true

		resolved, err := uc.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, resolved.ID)
	}
}
