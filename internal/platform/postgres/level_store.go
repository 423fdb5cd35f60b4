package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgresLevelStore implements the store.LevelStore interface
// using a PostgreSQL database as the storage backend. The levels table is
// seeded by migration and read-only at runtime.
type PostgresLevelStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLevelStore creates a new PostgreSQL implementation of the LevelStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLevelStore(db store.DBTX, logger *slog.Logger) *PostgresLevelStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLevelStore{
		db:     db,
		logger: logger.With(slog.String("component", "level_store")),
	}
}

// Ensure PostgresLevelStore implements store.LevelStore interface
var _ store.LevelStore = (*PostgresLevelStore)(nil)

// GetByID implements store.LevelStore.GetByID
// It retrieves a level by its ID.
// Returns store.ErrLevelNotFound if the level does not exist.
func (s *PostgresLevelStore) GetByID(ctx context.Context, id int) (*domain.Level, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving level by ID", slog.Int("level_id", id))

	query := `
		SELECT id, name, description, mastery_threshold
		FROM levels
		WHERE id = $1
	`

	var level domain.Level

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&level.ID,
		&level.Name,
		&level.Description,
		&level.MasteryThreshold,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("level not found", slog.Int("level_id", id))
			return nil, store.ErrLevelNotFound
		}
		log.Error("failed to get level by ID",
			slog.String("error", err.Error()),
			slog.Int("level_id", id))
		return nil, MapError(err)
	}

	return &level, nil
}

// List implements store.LevelStore.List
// It retrieves all levels ordered by ID ascending.
func (s *PostgresLevelStore) List(ctx context.Context) ([]*domain.Level, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing levels")

	query := `
		SELECT id, name, description, mastery_threshold
		FROM levels
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query levels", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var levels []*domain.Level
	for rows.Next() {
		var level domain.Level

		err := rows.Scan(
			&level.ID,
			&level.Name,
			&level.Description,
			&level.MasteryThreshold,
		)
		if err != nil {
			log.Error("failed to scan level row",
				slog.String("error", err.Error()))
			return nil, err
		}

		levels = append(levels, &level)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no levels found
	if levels == nil {
		levels = []*domain.Level{}
	}

	log.Debug("listed levels", slog.Int("count", len(levels)))
	return levels, nil
}
