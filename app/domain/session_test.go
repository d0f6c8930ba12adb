package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	userID := uuid.New()

	session, err := NewSession(userID, DefaultSessionDuration)
	require.NoError(t, err)

	assert.Equal(t, userID, session.UserID)
	assert.Len(t, session.Token, 64) // 32 random bytes, hex encoded
	assert.False(t, session.IsExpired())
	assert.True(t, session.IsValid())
	assert.WithinDuration(t, time.Now().Add(DefaultSessionDuration), session.ExpiresAt, time.Minute)
}

func TestNewSession_InvalidInputs(t *testing.T) {
	_, err := NewSession(uuid.UUID{}, DefaultSessionDuration)
	assert.Error(t, err)

	_, err = NewSession(uuid.New(), 0)
	assert.Error(t, err)

	_, err = NewSession(uuid.New(), -time.Hour)
	assert.Error(t, err)
}

func TestNewSession_TokensAreUnique(t *testing.T) {
	userID := uuid.New()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		session, err := NewSession(userID, time.Hour)
		require.NoError(t, err)
		assert.False(t, seen[session.Token], "token reuse across login events")
		seen[session.Token] = true
	}
}

func TestSession_Expiry(t *testing.T) {
	session, err := NewSession(uuid.New(), time.Hour)
	require.NoError(t, err)

	session.ExpiresAt = time.Now().Add(-time.Second)

	assert.True(t, session.IsExpired())
	assert.False(t, session.IsValid())
	assert.Equal(t, time.Duration(0), session.RemainingTime())
}

func TestSession_TokenNotSerialized(t *testing.T) {
	session, err := NewSession(uuid.New(), time.Hour)
	require.NoError(t, err)

	data, err := json.Marshal(session)
	require.NoError(t, err)

	assert.NotContains(t, string(data), session.Token)
}
