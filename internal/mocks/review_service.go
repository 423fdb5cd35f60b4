package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/service/review"
)

// MockReviewService implements review.Service for testing
type MockReviewService struct {
	// NextCardFn allows test cases to mock the NextCard behavior
	NextCardFn func(ctx context.Context, userID uuid.UUID, now time.Time) (*review.NextCardResult, error)

	// SubmitReviewFn allows test cases to mock the SubmitReview behavior
	SubmitReviewFn func(ctx context.Context, userID uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error)
}

// NextCard implements the review.Service interface
func (m *MockReviewService) NextCard(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*review.NextCardResult, error) {
	if m.NextCardFn != nil {
		return m.NextCardFn(ctx, userID, now)
	}
	return &review.NextCardResult{SessionComplete: true}, nil
}

// SubmitReview implements the review.Service interface
func (m *MockReviewService) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	cardID string,
	rating int,
	now time.Time,
) (time.Time, error) {
	if m.SubmitReviewFn != nil {
		return m.SubmitReviewFn(ctx, userID, cardID, rating, now)
	}
	return time.Time{}, nil
}
