package api

import (
	"errors"
	"net/http"

	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/service/card_query"
	"github.com/salescoach/srs-api/internal/service/card_review"
	"github.com/salescoach/srs-api/internal/service/category"
	"github.com/salescoach/srs-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, card_review.ErrCardNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, card_review.ErrInvalidRating),
		errors.Is(err, card_review.ErrInvalidDays),
		errors.Is(err, srs.ErrUnknownStage),
		errors.Is(err, srs.ErrUnknownDifficulty),
		errors.Is(err, srs.ErrUnknownPerformance),
		errors.Is(err, card_query.ErrUnknownStrategy),
		errors.Is(err, category.ErrEmptyName):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, card_review.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, card_review.ErrInvalidRating):
		return "Rating must be between 0 and 5"

	case errors.Is(err, card_review.ErrInvalidDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, srs.ErrUnknownStage):
		return "Unknown learning stage"

	case errors.Is(err, srs.ErrUnknownDifficulty):
		return "Unknown difficulty level"

	case errors.Is(err, srs.ErrUnknownPerformance):
		return "Unknown performance level"

	case errors.Is(err, card_query.ErrUnknownStrategy):
		return "Unknown review strategy"

	case errors.Is(err, category.ErrEmptyName):
		return "Category name cannot be empty"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid card data"

	default:
		return "An unexpected error occurred"
	}
}
