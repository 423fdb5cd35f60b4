package srs

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sky-flux/flux"
)

// Common errors
var (
	// ErrInvalidRating is returned when a rating is outside the 1..4 scale.
	ErrInvalidRating = errors.New("rating must be between 1 (again) and 4 (easy)")

	// ErrEmptyState is returned when a scheduler state blob is empty.
	ErrEmptyState = errors.New("scheduler state cannot be empty")

	// ErrMalformedState is returned when a stored state blob cannot be decoded.
	ErrMalformedState = errors.New("malformed scheduler state")
)

// ReviewResult is the scheduler's output for a single graded review.
type ReviewResult struct {
	// State is the updated opaque state blob to persist.
	State json.RawMessage

	// Due is when the card should next be shown.
	Due time.Time

	// Stability is the card's memory stability, in days, after this review.
	Stability float64

	// Log is the scheduler's own record of the review, kept alongside the
	// application-level review log for later re-optimization.
	Log json.RawMessage
}

// Service defines the interface for spaced-repetition scheduling operations.
// State blobs are opaque to callers; only this package reads or writes them.
type Service interface {
	// NewCardState produces the state blob for a card that has never been
	// reviewed, due immediately.
	NewCardState(now time.Time) (json.RawMessage, error)

	// ReviewCard applies a graded review to the given state and returns the
	// updated state plus derived scheduling values. The input is not mutated.
	ReviewCard(state json.RawMessage, rating int, now time.Time) (*ReviewResult, error)
}

// fluxService implements Service on top of the FSRS scheduler.
type fluxService struct {
	scheduler *flux.Scheduler
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) (Service, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler params: %w", err)
	}

	// Fuzzing is disabled so identical review histories always produce
	// identical schedules.
	scheduler, err := flux.NewScheduler(flux.SchedulerConfig{
		DesiredRetention: params.DesiredRetention,
		LearningSteps:    params.learningSteps(),
		MaximumInterval:  params.MaximumIntervalDays,
		DisableFuzzing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &fluxService{scheduler: scheduler}, nil
}

// NewCardState implements the Service interface.
func (s *fluxService) NewCardState(now time.Time) (json.RawMessage, error) {
	// The embedded numeric card ID only needs to be unique within a single
	// progress row's history, so a millisecond timestamp is enough.
	card := flux.NewCard(now.UnixMilli())
	card.Due = now.UTC()

	return encodeCardState(card, nil)
}

// ReviewCard implements the Service interface.
func (s *fluxService) ReviewCard(state json.RawMessage, rating int, now time.Time) (*ReviewResult, error) {
	fluxRating := flux.Rating(rating)
	if !fluxRating.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, rating)
	}

	card, envelope, err := decodeCardState(state)
	if err != nil {
		return nil, err
	}

	reviewedAt := now.UTC()
	updated, log := s.scheduler.ReviewCard(card, fluxRating, reviewedAt)

	newState, err := encodeCardState(updated, envelope)
	if err != nil {
		return nil, err
	}

	logJSON, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("failed to encode review log: %w", err)
	}

	var stability float64
	if updated.Stability != nil {
		stability = *updated.Stability
	}

	return &ReviewResult{
		State:     newState,
		Due:       updated.Due.UTC(),
		Stability: stability,
		Log:       logJSON,
	}, nil
}
