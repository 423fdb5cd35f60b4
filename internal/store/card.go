package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
)

// CardStore defines the interface for reading the curriculum card catalog.
// Cards are seeded by migration and never written at runtime, so there are
// no mutating operations.
type CardStore interface {
	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// FindUnseen retrieves the next card the user has never started, limited
	// to levels up to and including maxLevel. Cards are ordered by level then
	// by ID, so the curriculum is introduced in a stable sequence.
	// Returns ErrCardNotFound if every eligible card has been started.
	FindUnseen(ctx context.Context, userID uuid.UUID, maxLevel int) (*domain.Card, error)

	// CountByLevel returns the number of cards in the given level.
	CountByLevel(ctx context.Context, levelID int) (int, error)
}
