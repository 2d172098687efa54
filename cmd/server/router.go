package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/salescoach/srs-api/internal/api"
	apiMiddleware "github.com/salescoach/srs-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	cardHandler := api.NewCardHandler(
		app.cardStore,
		app.cardReviewService,
		app.navigationService,
		app.logger,
	)
	queryHandler := api.NewQueryHandler(app.cardQueryService, app.logger)
	statsHandler := api.NewStatsHandler(app.analyticsService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/srs", func(r chi.Router) {
			// Card management
			r.Post("/cards", cardHandler.CreateCard)
			r.Get("/cards", queryHandler.ListCards)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Put("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)

			// Review flow
			r.Post("/cards/{id}/review", cardHandler.SubmitReview)
			r.Get("/cards/{id}/preview", cardHandler.PreviewRatings)
			r.Post("/cards/{id}/postpone", cardHandler.PostponeCard)
			r.Get("/cards/{id}/navigation", cardHandler.Navigation)

			// Session building
			r.Get("/strategies/{name}", queryHandler.Strategy)

			// Statistics
			r.Get("/stats", statsHandler.Overview)
			r.Get("/stats/buckets", statsHandler.Buckets)
			r.Get("/progress", statsHandler.Progress)
		})

		// Categories
		r.Get("/categories", categoryHandler.ListCategories)
		r.Post("/categories", categoryHandler.CreateCategory)
		r.Post("/categories/{name}/reassign", categoryHandler.ReassignCategory)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
