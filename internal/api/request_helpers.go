package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/api/shared"
)

// getUserIDFromContext returns the authenticated user's ID, placed in the
// request context by the auth middleware. The second return is false when the
// request never passed through authentication or the stored value is not a
// usable UUID.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathCardID returns the card ID path parameter. Card IDs are stable
// human-readable strings chosen at seed time, so no format validation beyond
// non-emptiness applies.
func getPathCardID(r *http.Request) (string, bool) {
	cardID := chi.URLParam(r, "id")
	if cardID == "" {
		return "", false
	}
	return cardID, true
}
