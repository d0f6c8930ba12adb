package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"dashboard-gateway/app/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test user repository with mocked database
func createTestUserRepository(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := NewUserRepository(mockDB, testLogger).(*UserRepository)

	return repo, mockDB
}

// Helper function to create a test user
func createTestUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Ann", "ann@x.com", "$2a$10$hash")
	require.NoError(t, err)

	return user
}

func TestUserRepository_CreateUser(t *testing.T) {
	tests := []struct {
		name    string
		setupDB func(pgxmock.PgxPoolIface, *domain.User)
		wantErr error
	}{
		{
			name: "successful user creation",
			setupDB: func(mockDB pgxmock.PgxPoolIface, user *domain.User) {
				mockDB.ExpectExec("INSERT INTO users").
					WithArgs(
						user.ID,
						user.Name,
						user.Email,
						user.PasswordHash,
						user.CreatedAt,
						user.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantErr: nil,
		},
		{
			name: "duplicate email conflicts without inserting",
			setupDB: func(mockDB pgxmock.PgxPoolIface, user *domain.User) {
				mockDB.ExpectExec("INSERT INTO users").
					WithArgs(
						user.ID,
						user.Name,
						user.Email,
						user.PasswordHash,
						user.CreatedAt,
						user.UpdatedAt,
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
			wantErr: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mockDB := createTestUserRepository(t)
			user := createTestUser(t)
			tt.setupDB(mockDB, user)

			err := repo.CreateUser(context.Background(), user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mockDB.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	user := createTestUser(t)

	rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	mockDB.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs(user.Email).
		WillReturnRows(rows)

	got, err := repo.GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)

	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail_NotFound(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)

	mockDB.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("nobody@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}))

	_, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.Error(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	user := createTestUser(t)

	rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	mockDB.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs(user.ID).
		WillReturnRows(rows)

	got, err := repo.GetUserByID(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestUserRepository_GetUserByID_InvalidID(t *testing.T) {
	repo, _ := createTestUserRepository(t)

	_, err := repo.GetUserByID(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}

func TestUserRepository_TimestampsRoundTrip(t *testing.T) {
	repo, mockDB := createTestUserRepository(t)
	user := createTestUser(t)
	user.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user.UpdatedAt = user.CreatedAt

	rows := pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	mockDB.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs(user.Email).
		WillReturnRows(rows)

	got, err := repo.GetUserByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(user.CreatedAt))
}
