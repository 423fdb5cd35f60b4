package domain

import "errors"

// Curriculum bounds. The reading curriculum is a fixed ladder of ten levels,
// from vowel recognition up to diphthongs and advanced spelling patterns.
const (
	MinLevel = 1
	MaxLevel = 10
)

// DefaultMasteryThreshold is the fraction of a level's cards a learner must
// master before the next level unlocks, unless the level overrides it.
const DefaultMasteryThreshold = 0.8

// Level-specific validation errors
var (
	// ErrLevelIDInvalid is returned when a level ID is outside the curriculum range.
	ErrLevelIDInvalid = errors.New("level ID must be between 1 and 10")

	// ErrLevelNameEmpty is returned when a level's name is empty.
	ErrLevelNameEmpty = errors.New("level name cannot be empty")

	// ErrLevelThresholdInvalid is returned when a mastery threshold is outside [0, 1].
	ErrLevelThresholdInvalid = errors.New("level mastery threshold must be between 0.0 and 1.0")
)

// Level represents one step of the reading curriculum. Levels are ordered by
// ID and immutable after seeding.
type Level struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	MasteryThreshold float64 `json:"mastery_threshold"`
}

// NewLevel creates a new Level with the given data.
// Returns an error if validation fails.
func NewLevel(id int, name, description string, masteryThreshold float64) (*Level, error) {
	level := &Level{
		ID:               id,
		Name:             name,
		Description:      description,
		MasteryThreshold: masteryThreshold,
	}

	if err := level.Validate(); err != nil {
		return nil, err
	}

	return level, nil
}

// Validate checks if the Level has valid data.
// Returns an error if any field fails validation.
func (l *Level) Validate() error {
	if l.ID < MinLevel || l.ID > MaxLevel {
		return ErrLevelIDInvalid
	}

	if l.Name == "" {
		return ErrLevelNameEmpty
	}

	if l.MasteryThreshold < 0.0 || l.MasteryThreshold > 1.0 {
		return ErrLevelThresholdInvalid
	}

	return nil
}
