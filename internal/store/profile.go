package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// ProfileStore defines the interface for learner profile persistence.
// A profile shares its ID with the owning user.
type ProfileStore interface {
	// Create saves a new learner profile.
	// It handles domain validation internally.
	// Returns ErrDuplicate if a profile already exists for the user.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by the owning user's ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// GetForUpdate retrieves a profile with a row-level lock using SELECT FOR UPDATE.
	// It must be called within a transaction; the lock serializes concurrent
	// review submissions for the same learner.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// Update persists a modified profile, typically after a level promotion.
	// Returns ErrProfileNotFound if the profile does not exist.
	// Returns validation errors from the domain Profile if data is invalid.
	Update(ctx context.Context, profile *domain.Profile) error

	// WithTx returns a ProfileStore bound to tx. A review submission
	// updates the profile alongside progress and log rows in one
	// transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
