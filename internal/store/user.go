package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// UserStore defines the interface for account persistence.
type UserStore interface {
	// Create saves a new user. The implementation validates the domain
	// User and hashes the plaintext password before writing; the caller
	// never handles the hash.
	// Returns ErrEmailExists when the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. The plaintext password is never
	// populated on the way out.
	// Returns ErrUserNotFound if no such user exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email address, for login.
	// Returns ErrUserNotFound if no such user exists.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// WithTx returns a UserStore bound to tx, so creating the user can
	// join a larger unit of work (registration writes the user and the
	// learner profile together).
	WithTx(tx *sql.Tx) UserStore
}
