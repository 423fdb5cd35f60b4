package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the ProfileStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create
// It saves a new learner profile, handling domain validation.
// Returns store.ErrDuplicate if a profile already exists for the user.
// Returns store.ErrInvalidEntity if the owning user doesn't exist (foreign key violation).
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate profile data
	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (id, name, current_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Name,
		profile.CurrentLevel,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("profile already exists",
				slog.String("profile_id", profile.ID.String()))
			return MapUniqueViolation(err, "profile", "", nil)
		}

		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during profile creation",
				slog.String("error", err.Error()),
				slog.String("profile_id", profile.ID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, profile.ID)
		}

		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.Int("current_level", profile.CurrentLevel))
	return nil
}

// GetByID implements store.ProfileStore.GetByID
// It retrieves a profile by the owning user's ID.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, name, current_level, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return s.get(ctx, query, id)
}

// GetForUpdate implements store.ProfileStore.GetForUpdate
// It retrieves a profile with a row-level lock. Must be called within a
// transaction; the lock is held until the transaction ends and serializes
// concurrent review submissions for the same learner.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *PostgresProfileStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, name, current_level, created_at, updated_at
		FROM profiles
		WHERE id = $1
		FOR UPDATE
	`
	return s.get(ctx, query, id)
}

// get runs one of the single-row profile queries and maps the result.
func (s *PostgresProfileStore) get(ctx context.Context, query string, id uuid.UUID) (*domain.Profile, error) {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving profile", slog.String("profile_id", id.String()))

	var profile domain.Profile

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.Name,
		&profile.CurrentLevel,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, MapError(err)
	}

	return &profile, nil
}

// Update implements store.ProfileStore.Update
// It persists a modified profile, typically after a level promotion.
// Returns store.ErrProfileNotFound if the profile does not exist.
// Returns validation errors from the domain Profile if data is invalid.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	// Get the logger from context or use default
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Validate profile data
	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		UPDATE profiles
		SET name = $1, current_level = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.Name,
		profile.CurrentLevel,
		profile.UpdatedAt,
		profile.ID,
	)

	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrProfileNotFound); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("profile not found for update",
				slog.String("profile_id", profile.ID.String()))
		} else {
			log.Error("failed to check rows affected",
				slog.String("error", err.Error()),
				slog.String("profile_id", profile.ID.String()))
		}
		return err
	}

	log.Info("profile updated successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.Int("current_level", profile.CurrentLevel))
	return nil
}

// WithTx implements store.ProfileStore.WithTx
// It returns a new ProfileStore that runs its statements on the given transaction.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
