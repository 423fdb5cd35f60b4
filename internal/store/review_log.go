package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// DailyReviewCount is one UTC day's review total for a user, used for
// streak calculations.
type DailyReviewCount struct {
	Day   time.Time
	Count int
}

// ReviewLogStore defines the interface for the append-only review history.
type ReviewLogStore interface {
	// Create appends a review log entry.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the user or card does not exist.
	Create(ctx context.Context, log *domain.ReviewLog) error

	// CountSince returns how many reviews the user logged at or after the
	// given instant.
	CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CountTotal returns the user's all-time review count.
	CountTotal(ctx context.Context, userID uuid.UUID) (int, error)

	// CountByDay returns per-UTC-day review totals for the user since the
	// given instant, ordered by day ascending. Days with no reviews are
	// absent from the result.
	CountByDay(ctx context.Context, userID uuid.UUID, since time.Time) ([]DailyReviewCount, error)

	// DeleteForUser removes all review logs for the user and reports how
	// many were deleted. Deleting nothing is not an error.
	DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a ReviewLogStore bound to tx, so the log entry lands
	// in the same transaction as the progress update it records.
	WithTx(tx *sql.Tx) ReviewLogStore
}
