package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review ratings, matching the four-button grading scale the scheduler
// consumes.
const (
	RatingAgain = 1
	RatingHard  = 2
	RatingGood  = 3
	RatingEasy  = 4
)

// ReviewLog-specific validation errors
var (
	// ErrReviewLogIDEmpty is returned when a review log ID is empty or nil.
	ErrReviewLogIDEmpty = errors.New("review log ID cannot be empty")

	// ErrReviewUserIDEmpty is returned when a review log's user ID is empty or nil.
	ErrReviewUserIDEmpty = errors.New("review log user ID cannot be empty")

	// ErrReviewCardIDEmpty is returned when a review log's card ID is empty.
	ErrReviewCardIDEmpty = errors.New("review log card ID cannot be empty")

	// ErrReviewRatingInvalid is returned when a rating is outside the 1..4 scale.
	ErrReviewRatingInvalid = errors.New("review rating must be between 1 (again) and 4 (easy)")
)

// ReviewLog is the append-only record of a single graded review. Daily
// quotas and streaks are computed by counting these rows, so logs are never
// updated or deleted outside an explicit full progress reset.
type ReviewLog struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	CardID     string          `json:"card_id"`
	Rating     int             `json:"rating"`
	ReviewedAt time.Time       `json:"reviewed_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// NewReviewLog creates a log entry for a review graded at the given moment.
// Payload carries the scheduler's own log record for the review and may be
// nil. Returns an error if validation fails.
func NewReviewLog(userID uuid.UUID, cardID string, rating int, payload json.RawMessage, now time.Time) (*ReviewLog, error) {
	log := &ReviewLog{
		ID:         uuid.New(),
		UserID:     userID,
		CardID:     cardID,
		Rating:     rating,
		ReviewedAt: now.UTC(),
		Payload:    payload,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ReviewLog has valid data.
// Returns an error if any field fails validation.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrReviewLogIDEmpty
	}

	if l.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}

	if l.CardID == "" {
		return ErrReviewCardIDEmpty
	}

	if l.Rating < RatingAgain || l.Rating > RatingEasy {
		return ErrReviewRatingInvalid
	}

	return nil
}

// ValidRating reports whether rating is on the accepted 1..4 scale.
func ValidRating(rating int) bool {
	return rating >= RatingAgain && rating <= RatingEasy
}
