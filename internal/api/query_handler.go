package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salescoach/srs-api/internal/api/shared"
	"github.com/salescoach/srs-api/internal/domain"
	"github.com/salescoach/srs-api/internal/service/card_query"
)

// defaultStrategyLimit caps a strategy session when the client does not ask
// for a specific size.
const defaultStrategyLimit = 20

// QueryHandler handles card listing and review strategy HTTP requests
type QueryHandler struct {
	queryService card_query.CardQueryService
	logger       *slog.Logger
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(queryService card_query.CardQueryService, logger *slog.Logger) *QueryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for QueryHandler")
	}

	return &QueryHandler{
		queryService: queryService,
		logger:       logger.With(slog.String("component", "query_handler")),
	}
}

// ListCards handles GET /api/srs/cards requests. Exactly one filter query
// parameter selects the card set: due, stage, difficulty, performance, or
// category. Without a filter, every card is returned.
func (h *QueryHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var cards []*domain.Card
	var err error

	switch {
	case query.Get("due") != "":
		cards, err = h.queryService.Due(ctx, requestTime(r))
	case query.Get("stage") != "":
		cards, err = h.queryService.ByStage(ctx, query.Get("stage"))
	case query.Get("difficulty") != "":
		cards, err = h.queryService.ByDifficulty(ctx, query.Get("difficulty"))
	case query.Get("performance") != "":
		cards, err = h.queryService.ByPerformance(ctx, query.Get("performance"))
	case query.Get("category") != "":
		cards, err = h.queryService.ByCategory(ctx, query.Get("category"))
	default:
		cards, err = h.queryService.All(ctx)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"cards": cardsToResponse(cards),
		"count": len(cards),
	})
}

// Strategy handles GET /api/srs/strategies/{name} requests
func (h *QueryHandler) Strategy(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	limit := defaultStrategyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	cards, err := h.queryService.Strategy(r.Context(), name, limit, requestTime(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"strategy": name,
		"cards":    cardsToResponse(cards),
		"count":    len(cards),
	})
}
