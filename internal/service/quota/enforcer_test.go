package quota_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/service/quota"
	"github.com/repaso-app/repaso-api/internal/store/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDayStart(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "utc afternoon",
			now:  time.Date(2026, 3, 1, 15, 42, 7, 123, time.UTC),
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly midnight",
			now:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local zone evening crosses into next utc day",
			now:  time.Date(2026, 3, 1, 20, 0, 0, 0, time.FixedZone("PST", -8*3600)),
			want: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local zone morning lands in previous utc day",
			now:  time.Date(2026, 3, 1, 3, 0, 0, 0, time.FixedZone("JST", 9*3600)),
			want: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := quota.DayStart(tc.now)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNewEnforcerValidation(t *testing.T) {
	t.Parallel()

	progress := &mocks.ProgressStore{}
	reviewLogs := &mocks.ReviewLogStore{}

	assert.Panics(t, func() {
		quota.NewEnforcer(nil, reviewLogs, 20, 10, testLogger())
	})
	assert.Panics(t, func() {
		quota.NewEnforcer(progress, nil, 20, 10, testLogger())
	})
	assert.Panics(t, func() {
		quota.NewEnforcer(progress, reviewLogs, 0, 10, testLogger())
	})
	assert.Panics(t, func() {
		quota.NewEnforcer(progress, reviewLogs, 20, -1, testLogger())
	})

	assert.NotPanics(t, func() {
		enforcer := quota.NewEnforcer(progress, reviewLogs, 20, 10, nil)
		assert.NotNil(t, enforcer)
	})
}

func TestCanReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		reviews     int
		countErr    error
		wantAllowed bool
		wantErr     bool
	}{
		{name: "no reviews yet", reviews: 0, wantAllowed: true},
		{name: "under the limit", reviews: 19, wantAllowed: true},
		{name: "at the limit", reviews: 20, wantAllowed: false},
		{name: "over the limit", reviews: 25, wantAllowed: false},
		{name: "count fails", countErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotSince time.Time
			reviewLogs := &mocks.ReviewLogStore{
				CountSinceFunc: func(_ context.Context, id uuid.UUID, since time.Time) (int, error) {
					assert.Equal(t, userID, id)
					gotSince = since
					return tc.reviews, tc.countErr
				},
			}

			enforcer := quota.NewEnforcer(&mocks.ProgressStore{}, reviewLogs, 20, 10, testLogger())

			allowed, err := enforcer.CanReview(context.Background(), userID, now)
			if tc.wantErr {
				require.Error(t, err)
				assert.False(t, allowed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantAllowed, allowed)
			assert.True(t, gotSince.Equal(quota.DayStart(now)),
				"count window should start at UTC midnight, got %v", gotSince)
		})
	}
}

func TestCanStartNewCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		newCards    int
		countErr    error
		wantAllowed bool
		wantErr     bool
	}{
		{name: "no new cards yet", newCards: 0, wantAllowed: true},
		{name: "under the limit", newCards: 9, wantAllowed: true},
		{name: "at the limit", newCards: 10, wantAllowed: false},
		{name: "count fails", countErr: errors.New("connection refused"), wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotSince time.Time
			progress := &mocks.ProgressStore{
				CountCreatedSinceFunc: func(_ context.Context, id uuid.UUID, since time.Time) (int, error) {
					assert.Equal(t, userID, id)
					gotSince = since
					return tc.newCards, tc.countErr
				},
			}

			enforcer := quota.NewEnforcer(progress, &mocks.ReviewLogStore{}, 20, 10, testLogger())

			allowed, err := enforcer.CanStartNewCard(context.Background(), userID, now)
			if tc.wantErr {
				require.Error(t, err)
				assert.False(t, allowed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantAllowed, allowed)
			assert.True(t, gotSince.Equal(quota.DayStart(now)),
				"count window should start at UTC midnight, got %v", gotSince)
		})
	}
}

func TestCountsToday(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	t.Run("returns both counts", func(t *testing.T) {
		t.Parallel()

		reviewLogs := &mocks.ReviewLogStore{
			CountSinceFunc: func(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
				return 14, nil
			},
		}
		progress := &mocks.ProgressStore{
			CountCreatedSinceFunc: func(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
				return 3, nil
			},
		}

		enforcer := quota.NewEnforcer(progress, reviewLogs, 20, 10, testLogger())

		counts, err := enforcer.CountsToday(context.Background(), userID, now)
		require.NoError(t, err)
		assert.Equal(t, quota.Counts{Reviews: 14, NewCards: 3}, counts)
	})

	t.Run("review count failure", func(t *testing.T) {
		t.Parallel()

		reviewLogs := &mocks.ReviewLogStore{
			CountSinceFunc: func(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
				return 0, errors.New("connection refused")
			},
		}

		enforcer := quota.NewEnforcer(&mocks.ProgressStore{}, reviewLogs, 20, 10, testLogger())

		_, err := enforcer.CountsToday(context.Background(), userID, now)
		assert.ErrorContains(t, err, "failed to count today's reviews")
	})

	t.Run("new card count failure", func(t *testing.T) {
		t.Parallel()

		progress := &mocks.ProgressStore{
			CountCreatedSinceFunc: func(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
				return 0, errors.New("connection refused")
			},
		}

		enforcer := quota.NewEnforcer(progress, &mocks.ReviewLogStore{}, 20, 10, testLogger())

		_, err := enforcer.CountsToday(context.Background(), userID, now)
		assert.ErrorContains(t, err, "failed to count today's new cards")
	})
}
