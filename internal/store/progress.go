package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// ProgressStore defines the interface for card progress persistence.
// Progress rows are keyed by (user ID, card ID).
type ProgressStore interface {
	// Create saves a new progress row for a card's first review.
	// It handles domain validation internally.
	// Returns ErrDuplicate if progress already exists for the pair.
	// Returns ErrInvalidEntity if the user or card does not exist.
	Create(ctx context.Context, progress *domain.CardProgress) error

	// Get retrieves progress for the given user and card.
	// Returns ErrProgressNotFound if the row does not exist.
	Get(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error)

	// Update persists a modified progress row after a review.
	// Returns ErrProgressNotFound if the row does not exist.
	// Returns validation errors from the domain CardProgress if data is invalid.
	Update(ctx context.Context, progress *domain.CardProgress) error

	// FindDue retrieves the progress row with the earliest next review at or
	// before now for the given user.
	// Returns ErrProgressNotFound if nothing is due.
	FindDue(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.CardProgress, error)

	// CountCreatedSince returns how many progress rows the user created at or
	// after the given instant. Because a row is created exactly when a card is
	// first reviewed, this counts cards started in the window.
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CountMasteredByLevel returns how many of the user's progress rows for
	// cards in the given level have a stability watermark at or above the
	// threshold.
	CountMasteredByLevel(ctx context.Context, userID uuid.UUID, levelID int, threshold float64) (int, error)

	// CountScheduledBeyond returns how many of the user's progress rows for
	// cards in the given level have their next review after the cutoff.
	CountScheduledBeyond(ctx context.Context, userID uuid.UUID, levelID int, cutoff time.Time) (int, error)

	// DeleteForUser removes all progress rows for the user and reports how
	// many were deleted. Deleting nothing is not an error.
	DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a ProgressStore bound to tx.
	WithTx(tx *sql.Tx) ProgressStore
}
