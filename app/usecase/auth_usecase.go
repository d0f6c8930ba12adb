package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"
)

// AuthUsecase implements password-based authentication. It is one concrete
// implementation of port.AuthUsecase; alternative strategies plug in as
// further implementations of the same interface.
type AuthUsecase struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	logger *slog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance
func NewAuthUsecase(users port.UserRepository, hasher port.PasswordHasher, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Signup registers a new user. The plaintext password exists only for the
// duration of this call; it is hashed before anything is persisted and is
// never logged.
func (uc *AuthUsecase) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		uc.logger.Error("password hashing failed", "error", err)
		return nil, domain.ErrInternal
	}

	user, err := domain.NewUser(name, email, hash)
	if err != nil {
		return nil, err
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			uc.logger.Info("signup rejected, email already registered", "email", user.Email)
			return nil, domain.ErrEmailTaken
		}
		uc.logger.Error("failed to create user", "error", err)
		return nil, domain.ErrInternal
	}

	uc.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies an email/password pair. An unknown email and a wrong
// password return the identical error so callers cannot tell which was
// wrong.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		uc.logger.Info("login failed", "reason", "unknown email")
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		uc.logger.Info("login failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	uc.logger.Info("login succeeded", "user_id", user.ID)
	return user, nil
}
