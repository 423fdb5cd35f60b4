// Package mocks provides simple function-field implementations of the store
// interfaces for testing services and handlers. Fields left nil fall back to
// harmless zero-value behavior; WithTx returns the mock itself so
// transactional code paths can be exercised without a database.
package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/store"
)

// Compile-time interface checks.
var (
	_ store.UserStore      = (*UserStore)(nil)
	_ store.ProfileStore   = (*ProfileStore)(nil)
	_ store.LevelStore     = (*LevelStore)(nil)
	_ store.CardStore      = (*CardStore)(nil)
	_ store.ProgressStore  = (*ProgressStore)(nil)
	_ store.ReviewLogStore = (*ReviewLogStore)(nil)
)

// UserStore is a simple implementation of the store.UserStore interface.
type UserStore struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	WithTxFunc     func(tx *sql.Tx) store.UserStore
}

// Create saves a new user to the store.
func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

// GetByID retrieves a user by their unique ID.
func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// GetByEmail retrieves a user by their email address.
func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

// WithTx returns a store bound to the given transaction.
func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(tx)
	}
	return m
}

// ProfileStore is a simple implementation of the store.ProfileStore interface.
type ProfileStore struct {
	CreateFunc       func(ctx context.Context, profile *domain.Profile) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpdateFunc       func(ctx context.Context, profile *domain.Profile) error
	WithTxFunc       func(tx *sql.Tx) store.ProfileStore
}

// Create saves a new learner profile.
func (m *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, profile)
	}
	return nil
}

// GetByID retrieves a profile by the owning user's ID.
func (m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// GetForUpdate retrieves a profile with a row-level lock.
func (m *ProfileStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, id)
	}
	return nil, nil
}

// Update persists a modified profile.
func (m *ProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, profile)
	}
	return nil
}

// WithTx returns a store bound to the given transaction.
func (m *ProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(tx)
	}
	return m
}

// LevelStore is a simple implementation of the store.LevelStore interface.
type LevelStore struct {
	GetByIDFunc func(ctx context.Context, id int) (*domain.Level, error)
	ListFunc    func(ctx context.Context) ([]*domain.Level, error)
}

// GetByID retrieves a level by its ID.
func (m *LevelStore) GetByID(ctx context.Context, id int) (*domain.Level, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// List retrieves all levels ordered by ID ascending.
func (m *LevelStore) List(ctx context.Context) ([]*domain.Level, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// CardStore is a simple implementation of the store.CardStore interface.
type CardStore struct {
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Card, error)
	FindUnseenFunc   func(ctx context.Context, userID uuid.UUID, maxLevel int) (*domain.Card, error)
	CountByLevelFunc func(ctx context.Context, levelID int) (int, error)
}

// GetByID retrieves a card by its unique ID.
func (m *CardStore) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// FindUnseen retrieves the next card the user has never started.
func (m *CardStore) FindUnseen(ctx context.Context, userID uuid.UUID, maxLevel int) (*domain.Card, error) {
	if m.FindUnseenFunc != nil {
		return m.FindUnseenFunc(ctx, userID, maxLevel)
	}
	return nil, nil
}

// CountByLevel returns the number of cards in the given level.
func (m *CardStore) CountByLevel(ctx context.Context, levelID int) (int, error) {
	if m.CountByLevelFunc != nil {
		return m.CountByLevelFunc(ctx, levelID)
	}
	return 0, nil
}

// ProgressStore is a simple implementation of the store.ProgressStore interface.
type ProgressStore struct {
	CreateFunc               func(ctx context.Context, progress *domain.CardProgress) error
	GetFunc                  func(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error)
	UpdateFunc               func(ctx context.Context, progress *domain.CardProgress) error
	FindDueFunc              func(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.CardProgress, error)
	CountCreatedSinceFunc    func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountMasteredByLevelFunc func(ctx context.Context, userID uuid.UUID, levelID int, threshold float64) (int, error)
	CountScheduledBeyondFunc func(ctx context.Context, userID uuid.UUID, levelID int, cutoff time.Time) (int, error)
	DeleteForUserFunc        func(ctx context.Context, userID uuid.UUID) (int64, error)
	WithTxFunc               func(tx *sql.Tx) store.ProgressStore
}

// Create saves a new progress row.
func (m *ProgressStore) Create(ctx context.Context, progress *domain.CardProgress) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, progress)
	}
	return nil
}

// Get retrieves progress for the given user and card.
func (m *ProgressStore) Get(ctx context.Context, userID uuid.UUID, cardID string) (*domain.CardProgress, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, cardID)
	}
	return nil, nil
}

// Update persists a modified progress row.
func (m *ProgressStore) Update(ctx context.Context, progress *domain.CardProgress) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, progress)
	}
	return nil
}

// FindDue retrieves the progress row with the earliest due review.
func (m *ProgressStore) FindDue(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.CardProgress, error) {
	if m.FindDueFunc != nil {
		return m.FindDueFunc(ctx, userID, now)
	}
	return nil, nil
}

// CountCreatedSince counts progress rows created at or after the given instant.
func (m *ProgressStore) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if m.CountCreatedSinceFunc != nil {
		return m.CountCreatedSinceFunc(ctx, userID, since)
	}
	return 0, nil
}

// CountMasteredByLevel counts progress rows past the stability threshold.
func (m *ProgressStore) CountMasteredByLevel(
	ctx context.Context,
	userID uuid.UUID,
	levelID int,
	threshold float64,
) (int, error) {
	if m.CountMasteredByLevelFunc != nil {
		return m.CountMasteredByLevelFunc(ctx, userID, levelID, threshold)
	}
	return 0, nil
}

// CountScheduledBeyond counts progress rows with next review after the cutoff.
func (m *ProgressStore) CountScheduledBeyond(
	ctx context.Context,
	userID uuid.UUID,
	levelID int,
	cutoff time.Time,
) (int, error) {
	if m.CountScheduledBeyondFunc != nil {
		return m.CountScheduledBeyondFunc(ctx, userID, levelID, cutoff)
	}
	return 0, nil
}

// DeleteForUser removes all progress rows for the user.
func (m *ProgressStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteForUserFunc != nil {
		return m.DeleteForUserFunc(ctx, userID)
	}
	return 0, nil
}

// WithTx returns a store bound to the given transaction.
func (m *ProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(tx)
	}
	return m
}

// ReviewLogStore is a simple implementation of the store.ReviewLogStore interface.
type ReviewLogStore struct {
	CreateFunc        func(ctx context.Context, log *domain.ReviewLog) error
	CountSinceFunc    func(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CountTotalFunc    func(ctx context.Context, userID uuid.UUID) (int, error)
	CountByDayFunc    func(ctx context.Context, userID uuid.UUID, since time.Time) ([]store.DailyReviewCount, error)
	DeleteForUserFunc func(ctx context.Context, userID uuid.UUID) (int64, error)
	WithTxFunc        func(tx *sql.Tx) store.ReviewLogStore
}

// Create appends a review log entry.
func (m *ReviewLogStore) Create(ctx context.Context, log *domain.ReviewLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return nil
}

// CountSince counts reviews logged at or after the given instant.
func (m *ReviewLogStore) CountSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	if m.CountSinceFunc != nil {
		return m.CountSinceFunc(ctx, userID, since)
	}
	return 0, nil
}

// CountTotal returns the user's all-time review count.
func (m *ReviewLogStore) CountTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx, userID)
	}
	return 0, nil
}

// CountByDay returns per-UTC-day review totals for the user.
func (m *ReviewLogStore) CountByDay(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]store.DailyReviewCount, error) {
	if m.CountByDayFunc != nil {
		return m.CountByDayFunc(ctx, userID, since)
	}
	return nil, nil
}

// DeleteForUser removes all review logs for the user.
func (m *ReviewLogStore) DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteForUserFunc != nil {
		return m.DeleteForUserFunc(ctx, userID)
	}
	return 0, nil
}

// WithTx returns a store bound to the given transaction.
func (m *ReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(tx)
	}
	return m
}
