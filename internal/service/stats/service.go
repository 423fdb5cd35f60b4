// Package stats computes learner statistics on demand from review logs and
// progress rows. Nothing is denormalized or cached; every figure is an
// aggregate over the append-only review history, so a progress reset or a
// replayed log always yields consistent numbers.
package stats

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StreakLookbackDays bounds how far back the streak calculation reaches.
// The per-day counts for this window are fetched in one query and walked in
// memory, so a streak can never report more than this many days.
const StreakLookbackDays = 365

// ErrProfileNotFound indicates that the learner has no profile.
var ErrProfileNotFound = errors.New("profile not found")

// TodayStats is the lightweight per-session counter pair shown during a
// review session.
type TodayStats struct {
	NewCardsToday     int `json:"new_cards_today"`
	TotalReviewsToday int `json:"total_reviews_today"`
}

// LevelProgress is one level's displayed completion state.
type LevelProgress struct {
	LevelID            int     `json:"level_id"`
	LevelName          string  `json:"level_name"`
	TotalCards         int     `json:"total_cards"`
	MasteredCards      int     `json:"mastered_cards"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// UserStats aggregates a learner's full statistics view.
type UserStats struct {
	TodayReviews  int             `json:"today_reviews"`
	TotalReviews  int             `json:"total_reviews"`
	CurrentStreak int             `json:"current_streak"`
	LongestStreak int             `json:"longest_streak"`
	LevelProgress []LevelProgress `json:"level_progress"`
	CurrentLevel  int             `json:"current_level"`
}

// LevelOverview is one level of the curriculum map: the level's static
// description plus whether the learner has unlocked it and how far along
// they are.
type LevelOverview struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	MasteryThreshold   float64 `json:"mastery_threshold"`
	IsUnlocked         bool    `json:"is_unlocked"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// Service provides learner statistics.
type Service interface {
	// GetTodayStats returns the learner's review and new-card counts for the
	// current UTC day. It does not require a profile to exist.
	GetTodayStats(ctx context.Context, userID uuid.UUID, now time.Time) (*TodayStats, error)

	// GetUserStats returns the learner's aggregated statistics: today's and
	// all-time review counts, streaks, and per-level progress.
	// Returns ErrProfileNotFound if the learner has no profile.
	GetUserStats(ctx context.Context, userID uuid.UUID, now time.Time) (*UserStats, error)

	// GetLevels returns every curriculum level with the learner's unlock
	// state and displayed progress, ordered by level ID.
	// Returns ErrProfileNotFound if the learner has no profile.
	GetLevels(ctx context.Context, userID uuid.UUID, now time.Time) ([]LevelOverview, error)
}
