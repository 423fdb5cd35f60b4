package store

import (
	"context"

	"github.com/repaso-app/repaso-api/internal/domain"
)

// LevelStore defines the interface for reading the curriculum level catalog.
// Levels are seeded by migration and never written at runtime, so there are
// no mutating operations.
type LevelStore interface {
	// GetByID retrieves a level by its ID.
	// Returns ErrLevelNotFound if the level does not exist.
	GetByID(ctx context.Context, id int) (*domain.Level, error)

	// List retrieves all levels ordered by ID ascending.
	List(ctx context.Context) ([]*domain.Level, error)
}
