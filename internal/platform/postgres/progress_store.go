package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend. The scheduler state is
// stored as an opaque JSONB column; this store never inspects it.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Create implements store.ProgressStore.Create
// It saves a new progress row for a card's first review, handling domain validation.
// Returns store.ErrDuplicate if progress already exists for the (user, card) pair.
// Returns store.ErrInvalidEntity if the user or card doesn't exist (foreign key violation).
func (s *PostgresProgressStore) Create(ctx context.Context, progress *domain.CardProgress) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate progress data
	if err := progress.Validate(); err != nil {
		log.Warn("card progress validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return err
	}

	query := `
		INSERT INTO card_progress (user_id, card_id, fsrs_state, next_review,
			last_review, highest_stability, mastered_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.UserID,
		progress.CardID,
		[]byte(progress.State),
		progress.NextReview,
		nullableTime(progress.LastReview),
		progress.HighestStability,
		nullableTime(progress.MasteredAt),
		progress.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("card progress already exists",
				slog.String("user_id", progress.UserID.String()),
				slog.String("card_id", progress.CardID))
			return MapUniqueViolation(err, "card progress", "", nil)
		}

		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during card progress creation",
				slog.String("error", err.Error()),
				slog.String("user_id", progress.UserID.String()),
				slog.String("card_id", progress.CardID))
			return fmt.Errorf("%w: user %s or card %s not found",
				store.ErrInvalidEntity, progress.UserID, progress.CardID)
		}

		log.Error("failed to create card progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return MapError(err)
	}

	log.Info("card progress created successfully",
		slog.String("user_id", progress.UserID.String()),
		slog.String("card_id", progress.CardID))
	return nil
}

// Get implements store.ProgressStore.Get
// It retrieves progress for the given user and card.
// Returns store.ErrProgressNotFound if the row does not exist.
func (s *PostgresProgressStore) Get(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card progress",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID))

	query := `
		SELECT user_id, card_id, fsrs_state, next_review,
			last_review, highest_stability, mastered_at, created_at
		FROM card_progress
		WHERE user_id = $1 AND card_id = $2
	`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, cardID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card progress not found",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get card progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID))
		return nil, MapError(err)
	}

	return progress, nil
}

// Update implements store.ProgressStore.Update
// It persists a modified progress row after a review.
// Returns store.ErrProgressNotFound if the row does not exist.
// Returns validation errors from the domain CardProgress if data is invalid.
func (s *PostgresProgressStore) Update(ctx context.Context, progress *domain.CardProgress) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate progress data
	if err := progress.Validate(); err != nil {
		log.Warn("card progress validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return err
	}

	query := `
		UPDATE card_progress
		SET fsrs_state = $1, next_review = $2, last_review = $3,
			highest_stability = $4, mastered_at = $5
		WHERE user_id = $6 AND card_id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		[]byte(progress.State),
		progress.NextReview,
		nullableTime(progress.LastReview),
		progress.HighestStability,
		nullableTime(progress.MasteredAt),
		progress.UserID,
		progress.CardID,
	)

	if err != nil {
		log.Error("failed to update card progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()),
			slog.String("card_id", progress.CardID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProgressNotFound); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("card progress not found for update",
				slog.String("user_id", progress.UserID.String()),
				slog.String("card_id", progress.CardID))
		} else {
			log.Error("failed to check rows affected",
				slog.String("error", err.Error()),
				slog.String("user_id", progress.UserID.String()),
				slog.String("card_id", progress.CardID))
		}
		return err
	}

	log.Debug("card progress updated successfully",
		slog.String("user_id", progress.UserID.String()),
		slog.String("card_id", progress.CardID))
	return nil
}

// FindDue implements store.ProgressStore.FindDue
// It retrieves the progress row with the earliest next review at or before
// now for the given user.
// Returns store.ErrProgressNotFound if nothing is due.
func (s *PostgresProgressStore) FindDue(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.CardProgress, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding due card progress", slog.String("user_id", userID.String()))

	query := `
		SELECT user_id, card_id, fsrs_state, next_review,
			last_review, highest_stability, mastered_at, created_at
		FROM card_progress
		WHERE user_id = $1 AND next_review <= $2
		ORDER BY next_review ASC
		LIMIT 1
	`

	progress, err := scanProgress(s.db.QueryRowContext(ctx, query, userID, now))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no card progress due", slog.String("user_id", userID.String()))
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to find due card progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Debug("found due card progress",
		slog.String("user_id", userID.String()),
		slog.String("card_id", progress.CardID))
	return progress, nil
}

// CountCreatedSince implements store.ProgressStore.CountCreatedSince
// It returns how many progress rows the user created at or after the given
// instant. A row is created exactly when a card is first reviewed, so this
// counts cards started in the window.
func (s *PostgresProgressStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM card_progress
		WHERE user_id = $1 AND created_at >= $2
	`
	return s.count(ctx, "count created progress", query, userID, since)
}

// CountMasteredByLevel implements store.ProgressStore.CountMasteredByLevel
// It returns how many of the user's progress rows for cards in the given
// level have a stability watermark at or above the threshold.
func (s *PostgresProgressStore) CountMasteredByLevel(ctx context.Context, userID uuid.UUID, levelID int, threshold float64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM card_progress cp
		JOIN cards c ON c.id = cp.card_id
		WHERE cp.user_id = $1 AND c.level_id = $2 AND cp.highest_stability >= $3
	`
	return s.count(ctx, "count mastered progress", query, userID, levelID, threshold)
}

// CountScheduledBeyond implements store.ProgressStore.CountScheduledBeyond
// It returns how many of the user's progress rows for cards in the given
// level have their next review after the cutoff.
func (s *PostgresProgressStore) CountScheduledBeyond(ctx context.Context, userID uuid.UUID, levelID int, cutoff time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM card_progress cp
		JOIN cards c ON c.id = cp.card_id
		WHERE cp.user_id = $1 AND c.level_id = $2 AND cp.next_review > $3
	`
	return s.count(ctx, "count scheduled progress", query, userID, levelID, cutoff)
}

// DeleteForUser implements store.ProgressStore.DeleteForUser
// It removes all progress rows for the user and reports how many were
// deleted. Deleting nothing is not an error.
func (s *PostgresProgressStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM card_progress
		WHERE user_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete card progress",
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

	log.Info("card progress deleted for user",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// WithTx implements store.ProgressStore.WithTx
// It returns a new ProgressStore that runs its statements on the given transaction.
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// count runs a single-value COUNT query and logs failures under op.
func (s *PostgresProgressStore) count(ctx context.Context, op, query string, args ...any) (int, error) {
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

// scanProgress reads one card_progress row, converting nullable timestamps
// and the raw JSONB state.
func scanProgress(row rowScanner) (*domain.CardProgress, error) {
	var progress domain.CardProgress
	var state []byte
	var lastReview, masteredAt sql.NullTime

	err := row.Scan(
		&progress.UserID,
		&progress.CardID,
		&state,
		&progress.NextReview,
		&lastReview,
		&progress.HighestStability,
		&masteredAt,
		&progress.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	progress.State = state
	if lastReview.Valid {
		progress.LastReview = &lastReview.Time
	}
	if masteredAt.Valid {
		progress.MasteredAt = &masteredAt.Time
	}

	return &progress, nil
}

// nullableTime converts an optional timestamp to its SQL representation.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
