package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/repaso-app/repaso-api/internal/api/shared"
	"github.com/repaso-app/repaso-api/internal/service/auth"
	"github.com/repaso-app/repaso-api/internal/service/review"
	"github.com/repaso-app/repaso-api/internal/service/stats"
	"github.com/repaso-app/repaso-api/internal/store"
)

// isAny reports whether err matches at least one of the target sentinels.
func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MapErrorToStatusCode picks the HTTP status for an internal error. Every
// error the service and store layers can surface must map here; anything
// unrecognized is a 500 so new failure modes fail closed.
func MapErrorToStatusCode(err error) int {
	switch {
	case isAny(err, auth.ErrInvalidCredentials, auth.ErrInvalidToken, auth.ErrExpiredToken,
		auth.ErrInvalidRefreshToken, auth.ErrExpiredRefreshToken, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case isAny(err, review.ErrProfileNotFound, stats.ErrProfileNotFound, review.ErrCardNotFound) ||
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case isAny(err, review.ErrInvalidRating, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage translates an internal error into the message clients
// see. Raw error text never passes through: unknown errors collapse to a
// generic message so driver and infrastructure details stay out of responses.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case isAny(err, auth.ErrInvalidToken, auth.ErrExpiredToken):
		return "Invalid token"

	case isAny(err, auth.ErrInvalidRefreshToken, auth.ErrExpiredRefreshToken, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case isAny(err, review.ErrProfileNotFound, stats.ErrProfileNotFound, store.ErrProfileNotFound):
		return "Profile not found"

	case isAny(err, review.ErrCardNotFound, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrLevelNotFound):
		return "Level not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case store.IsDuplicateError(err):
		return "Resource already exists"

	case errors.Is(err, review.ErrInvalidRating):
		return "Rating must be between 1 and 4"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		// Wrapped infrastructure errors from the two review operations
		// carry their operation name; keep those failures identifiable.
		if strings.Contains(err.Error(), "submit review") {
			return "Failed to submit review"
		}
		if strings.Contains(err.Error(), "next card") {
			return "Failed to get next card"
		}
		return "An unexpected error occurred"
	}
}

// respondServiceError maps a service-layer error onto its status code and
// client message and writes the response. fallback, when non-empty, replaces
// the generic message on 500s so the client still learns which operation
// failed.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns a request-validation failure into a short
// client-safe message naming the first offending field. Errors that are not
// validator.ValidationErrors collapse to a generic message.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	if hint := validationTagHint(fe.Tag()); hint != "" {
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), hint)
	}
	return fmt.Sprintf("Invalid %s", fe.Field())
}

// validationTagHint describes the named validator tag in client terms. It
// returns "" for tags without a specific hint.
func validationTagHint(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "value too small"
	case "lte":
		return "value too large"
	default:
		return ""
	}
}
