package progression

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

// Verify interface compliance at compile time
var _ Tracker = (*trackerImpl)(nil)

// trackerImpl implements the Tracker interface.
type trackerImpl struct {
	profileStore  store.ProfileStore
	levelStore    store.LevelStore
	cardStore     store.CardStore
	progressStore store.ProgressStore
	logger        *slog.Logger
}

// NewTracker creates a Tracker over the given stores.
func NewTracker(
	profileStore store.ProfileStore,
	levelStore store.LevelStore,
	cardStore store.CardStore,
	progressStore store.ProgressStore,
	logger *slog.Logger,
) Tracker {
	// Validate inputs
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if levelStore == nil {
		panic("levelStore cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &trackerImpl{
		profileStore:  profileStore,
		levelStore:    levelStore,
		cardStore:     cardStore,
		progressStore: progressStore,
		logger:        logger.With(slog.String("component", "promotion_tracker")),
	}
}

// WithTx implements Tracker.WithTx.
// The level and card catalogs are immutable after seeding, so their reads do
// not need to join the transaction.
func (t *trackerImpl) WithTx(tx *sql.Tx) Tracker {
	return &trackerImpl{
		profileStore:  t.profileStore.WithTx(tx),
		levelStore:    t.levelStore,
		cardStore:     t.cardStore,
		progressStore: t.progressStore.WithTx(tx),
		logger:        t.logger,
	}
}

// CheckAndPromote implements Tracker.CheckAndPromote.
func (t *trackerImpl) CheckAndPromote(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	profile, err := t.profileStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Error("profile not found during promotion check",
				slog.String("user_id", userID.String()))
			return false, nil
		}
		return false, fmt.Errorf("failed to get profile: %w", err)
	}

	// Nothing above the final level to promote into.
	if profile.CurrentLevel >= domain.MaxLevel {
		return false, nil
	}

	level, err := t.levelStore.GetByID(ctx, profile.CurrentLevel)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Error("level configuration not found during promotion check",
				slog.Int("level_id", profile.CurrentLevel))
			return false, nil
		}
		return false, fmt.Errorf("failed to get level %d: %w", profile.CurrentLevel, err)
	}

	totalCards, err := t.cardStore.CountByLevel(ctx, profile.CurrentLevel)
	if err != nil {
		return false, fmt.Errorf("failed to count cards in level %d: %w", profile.CurrentLevel, err)
	}

	if totalCards == 0 {
		log.Warn("no cards found for level during promotion check",
			slog.Int("level_id", profile.CurrentLevel))
		return false, nil
	}

	masteredCards, err := t.progressStore.CountMasteredByLevel(
		ctx, userID, profile.CurrentLevel, domain.MasteryStabilityDays)
	if err != nil {
		return false, fmt.Errorf("failed to count mastered cards in level %d: %w", profile.CurrentLevel, err)
	}

	masteredShare := float64(masteredCards) / float64(totalCards)

	if masteredShare < level.MasteryThreshold {
		log.Debug("level mastery below promotion threshold",
			slog.String("user_id", userID.String()),
			slog.Int("level_id", profile.CurrentLevel),
			slog.Int("mastered_cards", masteredCards),
			slog.Int("total_cards", totalCards),
			slog.Float64("threshold", level.MasteryThreshold))
		return false, nil
	}

	oldLevel := profile.CurrentLevel
	if err := profile.Promote(now); err != nil {
		return false, fmt.Errorf("failed to promote profile: %w", err)
	}

	if err := t.profileStore.Update(ctx, profile); err != nil {
		return false, fmt.Errorf("failed to save promoted profile: %w", err)
	}

	log.Info("learner promoted to next level",
		slog.String("user_id", userID.String()),
		slog.Int("old_level", oldLevel),
		slog.Int("new_level", profile.CurrentLevel),
		slog.Int("mastered_cards", masteredCards),
		slog.Int("total_cards", totalCards))

	return true, nil
}
