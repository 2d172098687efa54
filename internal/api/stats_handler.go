package api

import (
	"log/slog"
	"net/http"

	"github.com/salescoach/srs-api/internal/api/shared"
	"github.com/salescoach/srs-api/internal/service/analytics"
)

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	analyticsService analytics.AnalyticsService
	logger           *slog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(analyticsService analytics.AnalyticsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}

	return &StatsHandler{
		analyticsService: analyticsService,
		logger:           logger.With(slog.String("component", "stats_handler")),
	}
}

// Overview handles GET /api/srs/stats requests
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.analyticsService.Overview(r.Context(), requestTime(r))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to compute statistics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, overview)
}

// Buckets handles GET /api/srs/stats/buckets requests
func (h *StatsHandler) Buckets(w http.ResponseWriter, r *http.Request) {
	counts, err := h.analyticsService.BucketCounts(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to compute statistics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, counts)
}

// Progress handles GET /api/srs/progress requests. An optional category
// query parameter narrows the aggregation.
func (h *StatsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.analyticsService.Progress(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), "Failed to compute statistics", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}
