package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundTaxonomy(t *testing.T) {
	// Every entity-specific absence error must match the generic sentinel.
	variants := map[string]error{
		"user":     ErrUserNotFound,
		"profile":  ErrProfileNotFound,
		"level":    ErrLevelNotFound,
		"card":     ErrCardNotFound,
		"progress": ErrProgressNotFound,
	}

	for name, sentinel := range variants {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsNotFoundError(sentinel))
			assert.True(t, errors.Is(sentinel, ErrNotFound))

			wrapped := fmt.Errorf("loading %s: %w", name, sentinel)
			assert.True(t, IsNotFoundError(wrapped), "wrapping must preserve the match")
		})
	}
}

func TestNotFoundVariantsStayDistinct(t *testing.T) {
	// Matching the generic sentinel must not blur entity identity.
	assert.False(t, errors.Is(ErrUserNotFound, ErrCardNotFound))
	assert.False(t, errors.Is(ErrProfileNotFound, ErrProgressNotFound))
}

func TestIsNotFoundErrorRejectsOthers(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("some error")))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(fmt.Errorf("wrapped: %w", errors.New("some error"))))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("creating user: %w", ErrEmailExists)))

	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrNotFound))
	assert.False(t, IsDuplicateError(errors.New("some error")))
}

func TestErrTransactionFailedWraps(t *testing.T) {
	err := fmt.Errorf("%w: deadlock detected", ErrTransactionFailed)

	assert.True(t, errors.Is(err, ErrTransactionFailed))
	assert.Contains(t, err.Error(), "transaction failed")
}
