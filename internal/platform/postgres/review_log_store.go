package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend. Review logs are
// append-only; nothing updates them after insertion.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the ReviewLogStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create
// It appends a review log entry, handling domain validation.
// Returns store.ErrInvalidEntity if the user or card doesn't exist (foreign key violation).
func (s *PostgresReviewLogStore) Create(ctx context.Context, reviewLog *domain.ReviewLog) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate review log data
	if err := reviewLog.Validate(); err != nil {
		log.Warn("review log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_log_id", reviewLog.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_logs (id, user_id, card_id, rating, reviewed_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reviewLog.ID,
		reviewLog.UserID,
		reviewLog.CardID,
		reviewLog.Rating,
		reviewLog.ReviewedAt,
		nullableBytes(reviewLog.Payload),
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review log creation",
				slog.String("error", err.Error()),
				slog.String("user_id", reviewLog.UserID.String()),
				slog.String("card_id", reviewLog.CardID))
			return fmt.Errorf("%w: user %s or card %s not found",
				store.ErrInvalidEntity, reviewLog.UserID, reviewLog.CardID)
		}

		log.Error("failed to create review log",
			slog.String("error", err.Error()),
			slog.String("user_id", reviewLog.UserID.String()),
			slog.String("card_id", reviewLog.CardID))
		return MapError(err)
	}

	log.Debug("review log created",
		slog.String("user_id", reviewLog.UserID.String()),
		slog.String("card_id", reviewLog.CardID),
		slog.Int("rating", reviewLog.Rating))
	return nil
}

// CountSince implements store.ReviewLogStore.CountSince
// It returns how many reviews the user logged at or after the given instant.
func (s *PostgresReviewLogStore) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM review_logs
		WHERE user_id = $1 AND reviewed_at >= $2
	`
	return s.count(ctx, "count reviews since", query, userID, since)
}

// CountTotal implements store.ReviewLogStore.CountTotal
// It returns the user's all-time review count.
func (s *PostgresReviewLogStore) CountTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM review_logs
		WHERE user_id = $1
	`
	return s.count(ctx, "count total reviews", query, userID)
}

// CountByDay implements store.ReviewLogStore.CountByDay
// It returns per-UTC-day review totals for the user since the given instant,
// ordered by day ascending. Days with no reviews are absent from the result.
func (s *PostgresReviewLogStore) CountByDay(ctx context.Context, userID uuid.UUID, since time.Time) ([]store.DailyReviewCount, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("counting reviews by day", slog.String("user_id", userID.String()))

	query := `
		SELECT date_trunc('day', reviewed_at AT TIME ZONE 'UTC') AS day, COUNT(*)
		FROM review_logs
		WHERE user_id = $1 AND reviewed_at >= $2
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		log.Error("failed to count reviews by day",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var counts []store.DailyReviewCount
	for rows.Next() {
		var dc store.DailyReviewCount

		err := rows.Scan(&dc.Day, &dc.Count)
		if err != nil {
			log.Error("failed to scan daily count row",
				slog.String("error", err.Error()))
			return nil, err
		}

		dc.Day = dc.Day.UTC()
		counts = append(counts, dc)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no reviews found
	if counts == nil {
		counts = []store.DailyReviewCount{}
	}

	return counts, nil
}

// DeleteForUser implements store.ReviewLogStore.DeleteForUser
// It removes all review logs for the user and reports how many were deleted.
// Deleting nothing is not an error.
func (s *PostgresReviewLogStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM review_logs
		WHERE user_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete review logs",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, err
	}

	log.Info("review logs deleted for user",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// WithTx implements store.ReviewLogStore.WithTx
// It returns a new ReviewLogStore that runs its statements on the given transaction.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// count runs a single-value COUNT query and logs failures under op.
func (s *PostgresReviewLogStore) count(ctx context.Context, op, query string, args ...any) (int, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		log.Error("failed to "+op, slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return count, nil
}

// nullableBytes converts an optional JSON payload to its SQL representation,
// storing NULL rather than an empty byte string.
func nullableBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
