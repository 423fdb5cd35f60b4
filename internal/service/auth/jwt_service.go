package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService signs and validates the token pair the API hands out at
// registration and login: a short-lived access token checked on every
// authenticated request, and a longer-lived refresh token exchanged at
// /auth/refresh for a fresh pair.
type JWTService interface {
	// GenerateToken signs an access token for the given user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the signature, expiry, and token type of an
	// access token and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken signs a refresh token for the given user.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken checks the signature, expiry, and token type
	// of a refresh token and returns its claims. An access token is
	// rejected here even when it is otherwise valid.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded body of a token this service issued.
type Claims struct {
	// UserID identifies the account the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType is "access" or "refresh". Validation rejects a token
	// presented as the other kind, so a stolen refresh token cannot be
	// replayed against regular endpoints.
	TokenType string `json:"type,omitempty"`

	// Mirrors of the registered JWT claims the implementation fills in.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
