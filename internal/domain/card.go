package domain

import (
	"errors"
	"time"
)

// ContentType classifies what a card teaches.
type ContentType string

// Possible card content types
const (
	ContentTypeLetter     ContentType = "letter"
	ContentTypeSyllable   ContentType = "syllable"
	ContentTypeWord       ContentType = "word"
	ContentTypeProperNoun ContentType = "proper_noun"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardLevelInvalid is returned when a card's level is outside the curriculum range.
	ErrCardLevelInvalid = errors.New("card level must be between 1 and 10")

	// ErrCardContentEmpty is returned when a card's content is empty.
	ErrCardContentEmpty = errors.New("card content cannot be empty")

	// ErrCardContentTypeInvalid is returned when a card's content type is unknown.
	ErrCardContentTypeInvalid = errors.New("card content type must be letter, syllable, word or proper_noun")
)

// Card represents one immutable entry in the reading curriculum: a letter,
// syllable, word or proper noun the learner practices, with optional
// illustration and pronunciation media. Cards are created by the seed
// migration and never modified afterwards.
type Card struct {
	ID          string      `json:"id"`
	LevelID     int         `json:"level_id"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	ImageURL    *string     `json:"image_url,omitempty"`
	AudioURL    *string     `json:"audio_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewCard creates a new Card with the given identity and content.
// The ID is a stable human-readable identifier (e.g. "vowel_a_lower") chosen
// at seed time, not a generated UUID, so new-card ordering is deterministic.
// Returns an error if validation fails.
func NewCard(id string, levelID int, content string, contentType ContentType) (*Card, error) {
	card := &Card{
		ID:          id,
		LevelID:     levelID,
		Content:     content,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == "" {
		return ErrCardIDEmpty
	}

	if c.LevelID < MinLevel || c.LevelID > MaxLevel {
		return ErrCardLevelInvalid
	}

	if c.Content == "" {
		return ErrCardContentEmpty
	}

	switch c.ContentType {
	case ContentTypeLetter, ContentTypeSyllable, ContentTypeWord, ContentTypeProperNoun:
	default:
		return ErrCardContentTypeInvalid
	}

	return nil
}
