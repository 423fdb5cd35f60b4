package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repaso-app/repaso-api/internal/api/shared"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/mocks"
	"github.com/repaso-app/repaso-api/internal/service/review"
)

// authedRequest builds a request carrying the given user ID in its context,
// as the auth middleware would.
func authedRequest(method, target string, body *bytes.Buffer, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withCardID attaches a chi route context carrying the {id} path parameter.
func withCardID(req *http.Request, cardID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", cardID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testCard() *domain.Card {
	return &domain.Card{
		ID:          "vowel_a_lower",
		LevelID:     1,
		Content:     "a",
		ContentType: domain.ContentTypeLetter,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetNextCard(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name         string
		nextCard     func(ctx context.Context, userID uuid.UUID, now time.Time) (*review.NextCardResult, error)
		wantStatus   int
		wantComplete bool
		wantIsNew    bool
		wantCardID   string
	}{
		{
			name: "due card",
			nextCard: func(ctx context.Context, id uuid.UUID, now time.Time) (*review.NextCardResult, error) {
				return &review.NextCardResult{Card: testCard(), IsNew: false}, nil
			},
			wantStatus: http.StatusOK,
			wantCardID: "vowel_a_lower",
		},
		{
			name: "new card",
			nextCard: func(ctx context.Context, id uuid.UUID, now time.Time) (*review.NextCardResult, error) {
				return &review.NextCardResult{Card: testCard(), IsNew: true}, nil
			},
			wantStatus: http.StatusOK,
			wantIsNew:  true,
			wantCardID: "vowel_a_lower",
		},
		{
			name: "session complete",
			nextCard: func(ctx context.Context, id uuid.UUID, now time.Time) (*review.NextCardResult, error) {
				return &review.NextCardResult{SessionComplete: true}, nil
			},
			wantStatus:   http.StatusOK,
			wantComplete: true,
		},
		{
			name: "profile missing",
			nextCard: func(ctx context.Context, id uuid.UUID, now time.Time) (*review.NextCardResult, error) {
				return nil, review.ErrProfileNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "service failure",
			nextCard: func(ctx context.Context, id uuid.UUID, now time.Time) (*review.NextCardResult, error) {
				return nil, errors.New("connection refused")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCardHandler(&mocks.MockReviewService{NextCardFn: tt.nextCard}, testLogger())

			req := authedRequest("GET", "/api/cards/next", nil, userID)
			recorder := httptest.NewRecorder()

			handler.GetNextCard(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp NextCardResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))

			if tt.wantComplete {
				assert.True(t, resp.SessionComplete)
				assert.Nil(t, resp.Card)
				assert.Equal(t, "Great job! You've completed today's reviews.", resp.Message)
				return
			}

			require.NotNil(t, resp.Card)
			assert.False(t, resp.SessionComplete)
			assert.Empty(t, resp.Message)
			assert.Equal(t, tt.wantCardID, resp.Card.ID)
			assert.Equal(t, "a", resp.Card.Content)
			assert.Equal(t, "letter", resp.Card.ContentType)
			assert.Equal(t, 1, resp.Card.LevelID)
			assert.Equal(t, tt.wantIsNew, resp.Card.IsNew)
		})
	}
}

func TestGetNextCardRequiresUser(t *testing.T) {
	t.Parallel()

	handler := NewCardHandler(&mocks.MockReviewService{}, testLogger())

	req := httptest.NewRequest("GET", "/api/cards/next", nil)
	recorder := httptest.NewRecorder()

	handler.GetNextCard(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	nextReview := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		cardID       string
		body         string
		submitReview func(ctx context.Context, userID uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error)
		wantStatus   int
	}{
		{
			name:   "valid review",
			cardID: "vowel_a_lower",
			body:   `{"rating": 3}`,
			submitReview: func(ctx context.Context, id uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error) {
				assert.Equal(t, "vowel_a_lower", cardID)
				assert.Equal(t, 3, rating)
				return nextReview, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "rating too high",
			cardID:     "vowel_a_lower",
			body:       `{"rating": 5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rating missing",
			cardID:     "vowel_a_lower",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			cardID:     "vowel_a_lower",
			body:       `{"rating": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown card",
			cardID: "no_such_card",
			body:   `{"rating": 3}`,
			submitReview: func(ctx context.Context, id uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error) {
				return time.Time{}, review.ErrCardNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "profile missing",
			cardID: "vowel_a_lower",
			body:   `{"rating": 3}`,
			submitReview: func(ctx context.Context, id uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error) {
				return time.Time{}, review.ErrProfileNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "service failure",
			cardID: "vowel_a_lower",
			body:   `{"rating": 3}`,
			submitReview: func(ctx context.Context, id uuid.UUID, cardID string, rating int, now time.Time) (time.Time, error) {
				return time.Time{}, errors.New("connection refused")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := NewCardHandler(
				&mocks.MockReviewService{SubmitReviewFn: tt.submitReview},
				testLogger(),
			)

			req := authedRequest(
				"POST",
				"/api/cards/"+tt.cardID+"/review",
				bytes.NewBufferString(tt.body),
				userID,
			)
			req = withCardID(req, tt.cardID)
			recorder := httptest.NewRecorder()

			handler.SubmitReview(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				var resp ReviewResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.True(t, resp.Success)
				assert.True(t, nextReview.Equal(resp.NextReview))
				assert.Equal(t, "Review submitted successfully", resp.Message)
			}
		})
	}
}

func TestSubmitReviewRequiresCardID(t *testing.T) {
	t.Parallel()

	handler := NewCardHandler(&mocks.MockReviewService{}, testLogger())

	req := authedRequest("POST", "/api/cards//review", bytes.NewBufferString(`{"rating": 3}`), uuid.New())
	req = withCardID(req, "")
	recorder := httptest.NewRecorder()

	handler.SubmitReview(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
