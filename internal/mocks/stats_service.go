package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/service/stats"
)

// MockStatsService implements stats.Service for testing
type MockStatsService struct {
	// GetTodayStatsFn allows test cases to mock the GetTodayStats behavior
	GetTodayStatsFn func(ctx context.Context, userID uuid.UUID, now time.Time) (*stats.TodayStats, error)

	// GetUserStatsFn allows test cases to mock the GetUserStats behavior
	GetUserStatsFn func(ctx context.Context, userID uuid.UUID, now time.Time) (*stats.UserStats, error)

	// GetLevelsFn allows test cases to mock the GetLevels behavior
	GetLevelsFn func(ctx context.Context, userID uuid.UUID, now time.Time) ([]stats.LevelOverview, error)
}

// GetTodayStats implements the stats.Service interface
func (m *MockStatsService) GetTodayStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*stats.TodayStats, error) {
	if m.GetTodayStatsFn != nil {
		return m.GetTodayStatsFn(ctx, userID, now)
	}
	return &stats.TodayStats{}, nil
}

// GetUserStats implements the stats.Service interface
func (m *MockStatsService) GetUserStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*stats.UserStats, error) {
	if m.GetUserStatsFn != nil {
		return m.GetUserStatsFn(ctx, userID, now)
	}
	return &stats.UserStats{}, nil
}

// GetLevels implements the stats.Service interface
func (m *MockStatsService) GetLevels(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) ([]stats.LevelOverview, error) {
	if m.GetLevelsFn != nil {
		return m.GetLevelsFn(ctx, userID, now)
	}
	return nil, nil
}
