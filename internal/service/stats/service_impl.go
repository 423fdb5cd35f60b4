package stats

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/service/quota"
	"github.com/repaso-app/repaso-api/internal/store"
)

// masteryProxyHorizon is how far out a card's next review must be scheduled
// for the card to count as mastered in displayed progress. This is a display
// heuristic over the live schedule; level promotion uses the permanent
// stability watermark instead, so the two figures can disagree.
const masteryProxyHorizon = 7 * 24 * time.Hour

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	profileStore   store.ProfileStore
	levelStore     store.LevelStore
	cardStore      store.CardStore
	progressStore  store.ProgressStore
	reviewLogStore store.ReviewLogStore
	quotas         quota.Enforcer
	logger         *slog.Logger
}

// NewService creates a statistics service over the given collaborators.
func NewService(
	profileStore store.ProfileStore,
	levelStore store.LevelStore,
	cardStore store.CardStore,
	progressStore store.ProgressStore,
	reviewLogStore store.ReviewLogStore,
	quotas quota.Enforcer,
	logger *slog.Logger,
) Service {
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
	if reviewLogStore == nil {
		panic("reviewLogStore cannot be nil")
	}
	if quotas == nil {
		panic("quotas cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		profileStore:   profileStore,
		levelStore:     levelStore,
		cardStore:      cardStore,
		progressStore:  progressStore,
		reviewLogStore: reviewLogStore,
		quotas:         quotas,
		logger:         logger.With(slog.String("component", "stats_service")),
	}
}

// GetTodayStats implements Service.GetTodayStats.
func (s *serviceImpl) GetTodayStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*TodayStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	counts, err := s.quotas.CountsToday(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's activity: %w", err)
	}

	log.Debug("computed today's stats",
		slog.String("user_id", userID.String()),
		slog.Int("new_cards", counts.NewCards),
		slog.Int("reviews", counts.Reviews))

	return &TodayStats{
		NewCardsToday:     counts.NewCards,
		TotalReviewsToday: counts.Reviews,
	}, nil
}

// GetUserStats implements Service.GetUserStats.
func (s *serviceImpl) GetUserStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("profile not found for stats",
				slog.String("user_id", userID.String()))
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	todayReviews, err := s.reviewLogStore.CountSince(ctx, userID, quota.DayStart(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's reviews: %w", err)
	}

	totalReviews, err := s.reviewLogStore.CountTotal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count total reviews: %w", err)
	}

	streak, err := s.currentStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	levelProgress, err := s.levelProgress(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	log.Debug("computed user stats",
		slog.String("user_id", userID.String()),
		slog.Int("today_reviews", todayReviews),
		slog.Int("total_reviews", totalReviews),
		slog.Int("current_streak", streak))

	return &UserStats{
		TodayReviews:  todayReviews,
		TotalReviews:  totalReviews,
		CurrentStreak: streak,
		// The true historical maximum is not reconstructed; the current
		// streak is reported for both.
		LongestStreak: streak,
		LevelProgress: levelProgress,
		CurrentLevel:  profile.CurrentLevel,
	}, nil
}

// GetLevels implements Service.GetLevels.
// A level is unlocked when its ID is at or below the learner's current
// level; progress uses the same displayed mastery proxy as GetUserStats.
func (s *serviceImpl) GetLevels(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]LevelOverview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("profile not found for level overview",
				slog.String("user_id", userID.String()))
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	levels, err := s.levelStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	cutoff := now.UTC().Add(masteryProxyHorizon)
	overview := make([]LevelOverview, 0, len(levels))

	for _, level := range levels {
		totalCards, err := s.cardStore.CountByLevel(ctx, level.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count cards in level %d: %w", level.ID, err)
		}

		masteredCards, err := s.progressStore.CountScheduledBeyond(ctx, userID, level.ID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to count mastered cards in level %d: %w", level.ID, err)
		}

		percentage := 0.0
		if totalCards > 0 {
			percentage = roundToOneDecimal(float64(masteredCards) / float64(totalCards) * 100)
		}

		overview = append(overview, LevelOverview{
			ID:                 level.ID,
			Name:               level.Name,
			Description:        level.Description,
			MasteryThreshold:   level.MasteryThreshold,
			IsUnlocked:         level.ID <= profile.CurrentLevel,
			ProgressPercentage: percentage,
		})
	}

	return overview, nil
}

// currentStreak counts consecutive UTC days with at least one review,
// walking backwards from the day containing now. A day without reviews ends
// the streak, including today.
func (s *serviceImpl) currentStreak(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	today := quota.DayStart(now)
	since := today.AddDate(0, 0, -(StreakLookbackDays - 1))

	days, err := s.reviewLogStore.CountByDay(ctx, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews by day: %w", err)
	}

	reviewed := make(map[string]bool, len(days))
	for _, day := range days {
		if day.Count > 0 {
			reviewed[day.Day.Format(time.DateOnly)] = true
		}
	}

	streak := 0
	for day := today; streak < StreakLookbackDays && reviewed[day.Format(time.DateOnly)]; day = day.AddDate(0, 0, -1) {
		streak++
	}

	return streak, nil
}

// levelProgress computes the displayed completion state for every level in
// the curriculum, whether or not the learner has reached it.
func (s *serviceImpl) levelProgress(ctx context.Context, userID uuid.UUID, now time.Time) ([]LevelProgress, error) {
	levels, err := s.levelStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	cutoff := now.UTC().Add(masteryProxyHorizon)
	progress := make([]LevelProgress, 0, len(levels))

	for _, level := range levels {
		totalCards, err := s.cardStore.CountByLevel(ctx, level.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count cards in level %d: %w", level.ID, err)
		}

		masteredCards, err := s.progressStore.CountScheduledBeyond(ctx, userID, level.ID, cutoff)
		if err != nil {
			return nil, fmt.Errorf("failed to count mastered cards in level %d: %w", level.ID, err)
		}

		percentage := 0.0
		if totalCards > 0 {
			percentage = roundToOneDecimal(float64(masteredCards) / float64(totalCards) * 100)
		}

		progress = append(progress, LevelProgress{
			LevelID:            level.ID,
			LevelName:          level.Name,
			TotalCards:         totalCards,
			MasteredCards:      masteredCards,
			ProgressPercentage: percentage,
		})
	}

	return progress, nil
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
