package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements port.UserRepository for PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// CreateUser persists a user. The insert relies on ON CONFLICT so the
// uniqueness check and the write are a single atomic statement.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, name, email, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (email) DO NOTHING`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return fmt.Errorf("failed to insert user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrEmailTaken
	}

	r.logger.Info("user created", "user_id", user.ID)
	return nil
}

// GetUserByEmail looks up a user by normalized email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// GetUserByID looks up a user by ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRow(ctx, query, userID))
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found")
		}
		r.logger.Error("failed to scan user", "error", err)
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}
