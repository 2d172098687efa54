package main

import (
	"database/sql"
	"log/slog"

	"github.com/salescoach/srs-api/internal/config"
	"github.com/salescoach/srs-api/internal/domain/srs"
	"github.com/salescoach/srs-api/internal/platform/postgres"
	"github.com/salescoach/srs-api/internal/service/analytics"
	"github.com/salescoach/srs-api/internal/service/card_query"
	"github.com/salescoach/srs-api/internal/service/card_review"
	"github.com/salescoach/srs-api/internal/service/category"
	"github.com/salescoach/srs-api/internal/service/navigation"
	"github.com/salescoach/srs-api/internal/store"
)

// application holds the dependency graph of the server: configuration, the
// database handle, and every store and service, wired once at startup.
type application struct {
	config *config.Config
	db     *sql.DB
	logger *slog.Logger

	cardStore      store.CardStore
	reviewLogStore store.ReviewLogStore

	cardReviewService card_review.CardReviewService
	cardQueryService  card_query.CardQueryService
	navigationService navigation.NavigationService
	analyticsService  analytics.AnalyticsService
	categoryService   category.CategoryService
}

// newApplication wires the stores and services on top of an open database
// connection.
func newApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) *application {
	cardStore := postgres.NewPostgresCardStore(db, logger)
	reviewLogStore := postgres.NewPostgresReviewLogStore(db, logger)

	srsService := srs.NewServiceWithParams(srs.NewParams(cfg.SRS))

	return &application{
		config:         cfg,
		db:             db,
		logger:         logger,
		cardStore:      cardStore,
		reviewLogStore: reviewLogStore,

		cardReviewService: card_review.NewCardReviewService(db, cardStore, reviewLogStore, srsService, logger),
		cardQueryService:  card_query.NewCardQueryService(cardStore, logger),
		navigationService: navigation.NewNavigationService(cardStore, logger),
		analyticsService:  analytics.NewAnalyticsService(cardStore, reviewLogStore, logger),
		categoryService:   category.NewCategoryService(cardStore, logger),
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}
