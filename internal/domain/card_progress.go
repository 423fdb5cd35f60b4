package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// MasteryStabilityDays is the scheduler stability (in days) a card must
// reach, at least once, to count as mastered. Mastery is permanent: it is
// recorded against the highest stability ever achieved, not the current one,
// so later forgetting never takes it away.
const MasteryStabilityDays = 7.0

// CardProgress-specific validation errors
var (
	// ErrProgressUserIDEmpty is returned when a progress row's user ID is empty or nil.
	ErrProgressUserIDEmpty = errors.New("card progress user ID cannot be empty")

	// ErrProgressCardIDEmpty is returned when a progress row's card ID is empty.
	ErrProgressCardIDEmpty = errors.New("card progress card ID cannot be empty")

	// ErrProgressStateEmpty is returned when a progress row has no scheduler state.
	ErrProgressStateEmpty = errors.New("card progress scheduler state cannot be empty")

	// ErrProgressStabilityNegative is returned when the stability watermark is negative.
	ErrProgressStabilityNegative = errors.New("card progress highest stability cannot be negative")
)

// CardProgress tracks one learner's memory of one card. The scheduler state
// is an opaque JSONB blob owned by the scheduler adapter; this entity only
// reads the derived stability value to maintain the mastery watermark.
//
// A progress row is created lazily at the card's first review and is unique
// per (user, card). CreatedAt therefore doubles as "when the learner started
// this card", which is what the daily new-card quota counts.
type CardProgress struct {
	UserID           uuid.UUID       `json:"user_id"`
	CardID           string          `json:"card_id"`
	State            json.RawMessage `json:"fsrs_state"`
	NextReview       time.Time       `json:"next_review"`
	LastReview       *time.Time      `json:"last_review,omitempty"`
	HighestStability float64         `json:"highest_stability"`
	MasteredAt       *time.Time      `json:"mastered_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewCardProgress creates the progress row for a card's first review. The
// next-review timestamp is set to now so the just-started card is
// immediately reviewable.
// Returns an error if validation fails.
func NewCardProgress(userID uuid.UUID, cardID string, state json.RawMessage, now time.Time) (*CardProgress, error) {
	progress := &CardProgress{
		UserID:           userID,
		CardID:           cardID,
		State:            state,
		NextReview:       now.UTC(),
		HighestStability: 0.0,
		CreatedAt:        now.UTC(),
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the CardProgress has valid data.
// Returns an error if any field fails validation.
func (p *CardProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProgressUserIDEmpty
	}

	if p.CardID == "" {
		return ErrProgressCardIDEmpty
	}

	if len(p.State) == 0 {
		return ErrProgressStateEmpty
	}

	if p.HighestStability < 0 {
		return ErrProgressStabilityNegative
	}

	return nil
}

// ApplyReview stores the scheduler's output for a completed review: the new
// opaque state, the next due time, and the review moment.
func (p *CardProgress) ApplyReview(state json.RawMessage, nextReview, now time.Time) {
	reviewedAt := now.UTC()
	p.State = state
	p.NextReview = nextReview.UTC()
	p.LastReview = &reviewedAt
}

// RecordStability raises the highest-stability watermark if the given
// stability exceeds it. When the watermark first reaches
// MasteryStabilityDays the card is marked mastered with the given timestamp;
// the mark is never cleared, even if stability later drops.
func (p *CardProgress) RecordStability(stability float64, now time.Time) {
	if stability <= p.HighestStability {
		return
	}

	p.HighestStability = stability

	if p.MasteredAt == nil && stability >= MasteryStabilityDays {
		masteredAt := now.UTC()
		p.MasteredAt = &masteredAt
	}
}

// Mastered reports whether this card has ever crossed the mastery
// stability threshold.
func (p *CardProgress) Mastered() bool {
	return p.MasteredAt != nil
}
