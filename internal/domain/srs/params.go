package srs

import (
	"errors"
	"time"
)

// Params validation errors
var (
	ErrInvalidRetention = errors.New("desired retention must be between 0 and 1 exclusive")
	ErrNoLearningSteps  = errors.New("at least one learning step is required")
	ErrInvalidStep      = errors.New("learning steps must be positive minutes")
	ErrInvalidInterval  = errors.New("maximum interval must be at least one day")
)

// Params defines the tunable knobs for the scheduling algorithm. The
// algorithm's 21 model weights are not exposed here; the library defaults
// are used until per-user optimization becomes worthwhile.
type Params struct {
	// DesiredRetention is the recall probability the scheduler aims for
	// when spacing reviews. Higher values mean shorter intervals.
	DesiredRetention float64

	// LearningStepMinutes are the intra-day steps a new card moves through
	// before graduating to long-term review.
	LearningStepMinutes []int

	// MaximumIntervalDays caps how far out a single review can be pushed.
	MaximumIntervalDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		DesiredRetention:    0.9,
		LearningStepMinutes: []int{1, 5},
		MaximumIntervalDays: 365,
	}
}

// Validate checks that the parameters are usable.
// Returns an error describing the first problem found.
func (p *Params) Validate() error {
	if p.DesiredRetention <= 0 || p.DesiredRetention >= 1 {
		return ErrInvalidRetention
	}

	if len(p.LearningStepMinutes) == 0 {
		return ErrNoLearningSteps
	}

	for _, minutes := range p.LearningStepMinutes {
		if minutes <= 0 {
			return ErrInvalidStep
		}
	}

	if p.MaximumIntervalDays < 1 {
		return ErrInvalidInterval
	}

	return nil
}

// learningSteps converts the configured minutes into durations.
func (p *Params) learningSteps() []time.Duration {
	steps := make([]time.Duration, len(p.LearningStepMinutes))
	for i, minutes := range p.LearningStepMinutes {
		steps[i] = time.Duration(minutes) * time.Minute
	}
	return steps
}
