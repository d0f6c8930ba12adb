package port

import (
	"context"

	"dashboard-gateway/app/domain"
)

// AuthUsecase defines authentication business logic interface
type AuthUsecase interface {
	// Signup registers a new user. The password is stored only as a hash.
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns the matching user. Unknown
	// email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*domain.User, error)
}

// UserRepository defines credential store data access interface
type UserRepository interface {
	// CreateUser persists a user, failing with domain.ErrEmailTaken if the
	// email is already registered. The check and the insert are atomic.
	CreateUser(ctx context.Context, user *domain.User) error
	// GetUserByEmail looks up a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetUserByID looks up a user by ID.
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// PasswordHasher abstracts the one-way password hash used by signup/login.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
