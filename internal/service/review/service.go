// Package review implements the learning loop: selecting the next card a
// learner should see and grading the reviews they submit.
//
// Selection prefers overdue cards over new material and is bounded by the
// daily quotas; grading runs the scheduler and persists its outcome, the
// append-only review log, and any level promotion in one transaction
// serialized per learner.
package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// Common error types for the review service
var (
	// ErrProfileNotFound indicates the learner has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrCardNotFound indicates the reviewed card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidRating indicates a rating outside the 1..4 scale.
	ErrInvalidRating = errors.New("rating must be between 1 (again) and 4 (easy)")
)

// NextCardResult is the outcome of asking for the next card.
type NextCardResult struct {
	// Card is the card to show. It is nil when SessionComplete is true.
	Card *domain.Card

	// IsNew reports whether the learner has never reviewed this card.
	IsNew bool

	// SessionComplete is true when there is nothing left to show today:
	// the review quota is spent, or nothing is due and either the new-card
	// quota is spent or the unlocked curriculum is exhausted.
	SessionComplete bool
}

// Service drives card selection and review grading.
type Service interface {
	// NextCard picks what the learner should see next, in order of
	// preference: the most overdue due card, then the lowest-level unseen
	// card at or below the learner's current level. Quotas gate each step;
	// a learner who has nothing to do gets SessionComplete rather than an
	// error.
	NextCard(ctx context.Context, userID uuid.UUID, now time.Time) (*NextCardResult, error)

	// SubmitReview grades one card with a rating on the 1..4 scale and
	// returns when the card is due next. The first review of a card creates
	// its progress row, which is also what consumes the daily new-card
	// allowance.
	//
	// Returns ErrInvalidRating, ErrProfileNotFound or ErrCardNotFound for
	// rejected submissions; anything else is an internal failure.
	SubmitReview(ctx context.Context, userID uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error)
}
