package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/repaso-app/repaso-api/internal/domain"
)

// RegisterRequest is the payload for POST /auth/register. Name is the
// learner's display name, used to create their profile. The password bounds
// mirror the domain rules so obviously bad input fails before the handler
// touches the store.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
}

// LoginRequest is the payload for POST /auth/login. The password only needs
// to be non-empty here; anything else is just a failed comparison.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is returned by registration and login. The access token
// marshals under the legacy "token" key; ExpiresAt is its RFC 3339 expiry.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest is the payload for POST /auth/refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse carries the replacement token pair.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CardView is the client-facing shape of a card in the review session.
type CardView struct {
	ID          string  `json:"id"`
	Content     string  `json:"content"`
	ContentType string  `json:"content_type"`
	ImageURL    *string `json:"image_url"`
	AudioURL    *string `json:"audio_url"`
	LevelID     int     `json:"level_id"`
	IsNew       bool    `json:"is_new"`
}

// NewCardView builds a CardView from a domain card.
func NewCardView(card *domain.Card, isNew bool) *CardView {
	return &CardView{
		ID:          card.ID,
		Content:     card.Content,
		ContentType: string(card.ContentType),
		ImageURL:    card.ImageURL,
		AudioURL:    card.AudioURL,
		LevelID:     card.LevelID,
		IsNew:       isNew,
	}
}

// NextCardResponse is returned by GET /cards/next. Card is null and Message
// is set when the session is complete.
type NextCardResponse struct {
	Card            *CardView `json:"card"`
	SessionComplete bool      `json:"session_complete"`
	Message         string    `json:"message,omitempty"`
}

// ReviewRequest is the payload for review submission. Rating uses the 1..4
// scale: again, hard, good, easy.
type ReviewRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=4"`
}

// ReviewResponse acknowledges a graded review and tells the client when the
// card comes back.
type ReviewResponse struct {
	Success    bool      `json:"success"`
	NextReview time.Time `json:"next_review"`
	Message    string    `json:"message"`
}
