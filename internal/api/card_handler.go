package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/repaso-app/repaso-api/internal/api/shared"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/redact"
	"github.com/repaso-app/repaso-api/internal/service/review"
)

// sessionCompleteMessage is shown when the learner has nothing left to
// review today.
const sessionCompleteMessage = "Great job! You've completed today's reviews."

// reviewSubmittedMessage acknowledges an accepted review.
const reviewSubmittedMessage = "Review submitted successfully"

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(
	reviewService review.Service,
	logger *slog.Logger,
) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "card_handler")),
	}
}

// GetNextCard handles GET /cards/next requests.
// It returns the card the learner should see next, or a session-complete
// response when the daily quotas are spent or nothing is left to show.
func (h *CardHandler) GetNextCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	result, err := h.reviewService.NextCard(r.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err, "Failed to get next card")
		return
	}

	if result.SessionComplete {
		log.Debug("session complete", slog.String("user_id", userID.String()))
		shared.RespondWithJSON(w, r, http.StatusOK, NextCardResponse{
			Card:            nil,
			SessionComplete: true,
			Message:         sessionCompleteMessage,
		})
		return
	}

	log.Debug("selected next card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", result.Card.ID),
		slog.Bool("is_new", result.IsNew))
	shared.RespondWithJSON(w, r, http.StatusOK, NextCardResponse{
		Card:            NewCardView(result.Card, result.IsNew),
		SessionComplete: false,
	})
}

// SubmitReview handles POST /cards/{id}/review requests.
// It grades the card with the submitted rating and returns when the card is
// due next.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := getPathCardID(r)
	if !ok {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	nextReview, err := h.reviewService.SubmitReview(
		r.Context(),
		userID,
		cardID,
		req.Rating,
		time.Now().UTC(),
	)
	if err != nil {
		respondServiceError(w, r, err, "Failed to submit review")
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID),
		slog.Int("rating", req.Rating))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Success:    true,
		NextReview: nextReview,
		Message:    reviewSubmittedMessage,
	})
}
