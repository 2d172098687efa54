package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salescoach/srs-api/internal/api/shared"
	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/platform/logger"
	"github.com/salescoach/srs-api/internal/service/card_review"
	"github.com/salescoach/srs-api/internal/service/navigation"
	"github.com/salescoach/srs-api/internal/store"
)

// CardHandler handles card CRUD and review HTTP requests
type CardHandler struct {
	cards             store.CardStore
	cardReviewService card_review.CardReviewService
	navigationService navigation.NavigationService
	logger            *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(
	cards store.CardStore,
	cardReviewService card_review.CardReviewService,
	navigationService navigation.NavigationService,
	logger *slog.Logger,
) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cards:             cards,
		cardReviewService: cardReviewService,
		navigationService: navigationService,
		logger:            logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCardRequest represents the request body for creating a card
type CreateCardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
	Category string `json:"category"`
}

// UpdateCardRequest represents the request body for updating a card's content
type UpdateCardRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
	Category string `json:"category"`
}

// ReviewRequest represents the request body for submitting a review.
// The rating is a pointer so an absent field fails validation instead of
// silently reading as zero.
type ReviewRequest struct {
	Rating *int `json:"rating" validate:"required,min=0,max=5"`
}

// PostponeRequest represents the request body for postponing a card
type PostponeRequest struct {
	Days int `json:"days" validate:"required,min=1"`
}

// cardIDFromRequest extracts and parses the {id} path parameter.
func cardIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// CreateCard handles POST /api/srs/cards requests
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	card, err := domain.NewCard(req.Question, req.Answer, req.Category)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid card data", err)
		return
	}

	if err := h.cards.Create(r.Context(), card); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card created", slog.Int64("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, cardToResponse(card))
}

// GetCard handles GET /api/srs/cards/{id} requests
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	card, err := h.cards.GetByID(r.Context(), cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// UpdateCard handles PUT /api/srs/cards/{id} requests. Only the content
// fields change; scheduling state is untouched.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	card, err := h.cards.GetByID(r.Context(), cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := card.UpdateContent(req.Question, req.Answer, req.Category); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid card data", err)
		return
	}

	if err := h.cards.Update(r.Context(), card); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card updated", slog.Int64("card_id", card.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// DeleteCard handles DELETE /api/srs/cards/{id} requests
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	if err := h.cards.Delete(r.Context(), cardID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card deleted", slog.Int64("card_id", cardID))
	w.WriteHeader(http.StatusNoContent)
}

// SubmitReview handles POST /api/srs/cards/{id}/review requests.
// It applies the rating to the card's schedule and records the review.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	result, err := h.cardReviewService.SubmitReview(r.Context(), cardID, *req.Rating)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit review"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("review submitted",
		slog.Int64("card_id", cardID),
		slog.Int("rating", *req.Rating))
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Card:   cardToResponse(result.Card),
		Record: recordToResponse(result.Record),
	})
}

// PreviewRatings handles GET /api/srs/cards/{id}/preview requests.
// It returns the interval each rating would produce, without side effects.
func (h *CardHandler) PreviewRatings(w http.ResponseWriter, r *http.Request) {
	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	preview, err := h.cardReviewService.PreviewRatings(r.Context(), cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// JSON object keys are strings; render the rating scale accordingly.
	intervals := make(map[string]float64, len(preview))
	for rating, interval := range preview {
		intervals[strconv.Itoa(rating)] = interval
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"card_id":   cardID,
		"intervals": intervals,
	})
}

// PostponeCard handles POST /api/srs/cards/{id}/postpone requests
func (h *CardHandler) PostponeCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.Int64("card_id", cardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Validation error", err)
		return
	}

	card, err := h.cardReviewService.PostponeCard(r.Context(), cardID, req.Days)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("card postponed",
		slog.Int64("card_id", cardID),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// Navigation handles GET /api/srs/cards/{id}/navigation requests.
// It returns the next due card, the previous card, and the card's position
// in the due queue.
func (h *CardHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	cardID, err := cardIDFromRequest(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	ctx := r.Context()
	now := requestTime(r)

	nextID, err := h.navigationService.NextDue(ctx, cardID, now)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to resolve navigation", err)
		return
	}

	prevID, err := h.navigationService.Prev(ctx, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to resolve navigation", err)
		return
	}

	position, err := h.navigationService.Position(ctx, cardID, now)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to resolve navigation", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"card_id":      cardID,
		"next_due_id":  nextID,
		"prev_id":      prevID,
		"rank":         position.Rank,
		"queue_length": position.QueueLength,
	})
}
