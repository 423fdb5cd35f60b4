// Package quota bounds how much review work a learner is given per UTC
// calendar day. Early readers burn out fast, so sessions are capped at a
// fixed number of reviews and a smaller number of never-seen cards; both
// allowances reset at UTC midnight rather than rolling over a 24-hour
// window.
package quota

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Counts is a learner's consumed allowance for one UTC calendar day.
type Counts struct {
	// Reviews is how many reviews the learner submitted today.
	Reviews int

	// NewCards is how many never-seen cards the learner started today.
	NewCards int
}

// Enforcer answers whether a learner has daily allowance left. Counts come
// from persisted rows (review logs and progress creation timestamps), so the
// quota survives restarts and is consistent across devices.
type Enforcer interface {
	// CanReview reports whether the learner may submit another review today.
	CanReview(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	// CanStartNewCard reports whether the learner may start another
	// never-seen card today. Starting a card also consumes review allowance,
	// so callers should check CanReview first.
	CanStartNewCard(ctx context.Context, userID uuid.UUID, now time.Time) (bool, error)

	// CountsToday returns the learner's consumed allowance for the current
	// UTC day.
	CountsToday(ctx context.Context, userID uuid.UUID, now time.Time) (Counts, error)
}

// DayStart returns UTC midnight of the calendar day containing now.
// All daily windows are anchored here so a review at 23:59 UTC and one at
// 00:01 UTC land in different days no matter the server's local zone.
func DayStart(now time.Time) time.Time {
	utc := now.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
