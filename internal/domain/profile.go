package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile-specific validation errors
var (
	// ErrProfileIDEmpty is returned when a profile ID is empty or nil.
	ErrProfileIDEmpty = errors.New("profile ID cannot be empty")

	// ErrProfileNameEmpty is returned when a profile's display name is empty.
	ErrProfileNameEmpty = errors.New("profile name cannot be empty")

	// ErrProfileLevelInvalid is returned when a profile's current level is
	// outside the curriculum range.
	ErrProfileLevelInvalid = errors.New("profile current level must be between 1 and 10")

	// ErrProfileAtMaxLevel is returned when promoting a profile already at
	// the final level.
	ErrProfileAtMaxLevel = errors.New("profile is already at the maximum level")
)

// Profile holds a learner's curriculum position. The profile ID is the
// user's ID; one profile exists per user, created at registration.
//
// CurrentLevel only ever moves forward: promotion advances it one level at a
// time and nothing in the request path lowers it.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CurrentLevel int       `json:"current_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile creates a new Profile for the given user starting at level 1.
// Returns an error if validation fails.
func NewProfile(userID uuid.UUID, name string) (*Profile, error) {
	now := time.Now().UTC()
	profile := &Profile{
		ID:           userID,
		Name:         name,
		CurrentLevel: MinLevel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}

	if p.Name == "" {
		return ErrProfileNameEmpty
	}

	if p.CurrentLevel < MinLevel || p.CurrentLevel > MaxLevel {
		return ErrProfileLevelInvalid
	}

	return nil
}

// Promote advances the profile by exactly one level and refreshes the
// update timestamp. Returns ErrProfileAtMaxLevel if the profile is already
// at the final level; the caller decides whether that is an error or a
// no-op.
func (p *Profile) Promote(now time.Time) error {
	if p.CurrentLevel >= MaxLevel {
		return ErrProfileAtMaxLevel
	}

	p.CurrentLevel++
	p.UpdatedAt = now.UTC()
	return nil
}

// Reset returns the profile to the first level. Only the administrative
// reset tool calls this; the request path never lowers a level.
func (p *Profile) Reset(now time.Time) {
	p.CurrentLevel = MinLevel
	p.UpdatedAt = now.UTC()
}
