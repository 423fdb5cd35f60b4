package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend. The cards table is
// seeded by migration and read-only at runtime.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// GetByID implements store.CardStore.GetByID
// It retrieves a card by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card by ID", slog.String("card_id", id))

	query := `
		SELECT id, level_id, content, content_type, image_url, audio_url, created_at
		FROM cards
		WHERE id = $1
	`

	card, err := s.scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.String("card_id", id))
		return nil, MapError(err)
	}

	return card, nil
}

// FindUnseen implements store.CardStore.FindUnseen
// It retrieves the next card the user has never started, limited to levels up
// to and including maxLevel. Cards are ordered by level then by ID, so the
// curriculum is introduced in a stable sequence.
// Returns store.ErrCardNotFound if every eligible card has been started.
func (s *PostgresCardStore) FindUnseen(ctx context.Context, userID uuid.UUID, maxLevel int) (*domain.Card, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding unseen card",
		slog.String("user_id", userID.String()),
		slog.Int("max_level", maxLevel))

	query := `
		SELECT id, level_id, content, content_type, image_url, audio_url, created_at
		FROM cards
		WHERE level_id <= $2
		  AND id NOT IN (
			SELECT card_id FROM card_progress WHERE user_id = $1
		  )
		ORDER BY level_id ASC, id ASC
		LIMIT 1
	`

	card, err := s.scanCard(s.db.QueryRowContext(ctx, query, userID, maxLevel))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no unseen cards available",
				slog.String("user_id", userID.String()),
				slog.Int("max_level", maxLevel))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to find unseen card",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	log.Debug("found unseen card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID),
		slog.Int("level_id", card.LevelID))
	return card, nil
}

// CountByLevel implements store.CardStore.CountByLevel
// It returns the number of cards in the given level.
func (s *PostgresCardStore) CountByLevel(ctx context.Context, levelID int) (int, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM cards
		WHERE level_id = $1
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, levelID).Scan(&count)
	if err != nil {
		log.Error("failed to count cards by level",
			slog.String("error", err.Error()),
			slog.Int("level_id", levelID))
		return 0, MapError(err)
	}

	return count, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared card scan.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard reads one card row, converting nullable media columns.
func (s *PostgresCardStore) scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var contentType string
	var imageURL, audioURL sql.NullString

	err := row.Scan(
		&card.ID,
		&card.LevelID,
		&card.Content,
		&contentType,
		&imageURL,
		&audioURL,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.ContentType = domain.ContentType(contentType)
	if imageURL.Valid {
		card.ImageURL = &imageURL.String
	}
	if audioURL.Valid {
		card.AudioURL = &audioURL.String
	}

	return &card, nil
}
