package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/store"
)

// Verify interface compliance at compile time
var _ Enforcer = (*enforcerImpl)(nil)

// enforcerImpl implements the Enforcer interface by counting persisted rows.
type enforcerImpl struct {
	progressStore     store.ProgressStore
	reviewLogStore    store.ReviewLogStore
	maxReviewsPerDay  int
	maxNewCardsPerDay int
	logger            *slog.Logger
}

// NewEnforcer creates an Enforcer with the given daily limits.
func NewEnforcer(
	progressStore store.ProgressStore,
	reviewLogStore store.ReviewLogStore,
	maxReviewsPerDay int,
	maxNewCardsPerDay int,
	logger *slog.Logger,
) Enforcer {
	// Validate inputs
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if reviewLogStore == nil {
		panic("reviewLogStore cannot be nil")
	}
	if maxReviewsPerDay <= 0 {
		panic("maxReviewsPerDay must be positive")
	}
	if maxNewCardsPerDay <= 0 {
		panic("maxNewCardsPerDay must be positive")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &enforcerImpl{
		progressStore:     progressStore,
		reviewLogStore:    reviewLogStore,
		maxReviewsPerDay:  maxReviewsPerDay,
		maxNewCardsPerDay: maxNewCardsPerDay,
		logger:            logger.With(slog.String("component", "quota_enforcer")),
	}
}

// CanReview implements Enforcer.CanReview.
func (e *enforcerImpl) CanReview(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	reviews, err := e.reviewLogStore.CountSince(ctx, userID, DayStart(now))
	if err != nil {
		log.Error("failed to count today's reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return false, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	if reviews >= e.maxReviewsPerDay {
		log.Debug("daily review limit reached",
			slog.String("user_id", userID.String()),
			slog.Int("reviews_today", reviews),
			slog.Int("limit", e.maxReviewsPerDay))
		return false, nil
	}

	return true, nil
}

// CanStartNewCard implements Enforcer.CanStartNewCard.
func (e *enforcerImpl) CanStartNewCard(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	newCards, err := e.progressStore.CountCreatedSince(ctx, userID, DayStart(now))
	if err != nil {
		log.Error("failed to count today's new cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return false, fmt.Errorf("failed to count today's new cards: %w", err)
	}

	if newCards >= e.maxNewCardsPerDay {
		log.Debug("daily new card limit reached",
			slog.String("user_id", userID.String()),
			slog.Int("new_cards_today", newCards),
			slog.Int("limit", e.maxNewCardsPerDay))
		return false, nil
	}

	return true, nil
}

// CountsToday implements Enforcer.CountsToday.
func (e *enforcerImpl) CountsToday(ctx context.Context, userID uuid.UUID, now time.Time) (Counts, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	since := DayStart(now)

	reviews, err := e.reviewLogStore.CountSince(ctx, userID, since)
	if err != nil {
		log.Error("failed to count today's reviews",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return Counts{}, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	newCards, err := e.progressStore.CountCreatedSince(ctx, userID, since)
	if err != nil {
		log.Error("failed to count today's new cards",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return Counts{}, fmt.Errorf("failed to count today's new cards: %w", err)
	}

	return Counts{Reviews: reviews, NewCards: newCards}, nil
}
