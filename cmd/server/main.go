// Package main implements the entry point for the sales coaching SRS API
// server, which schedules flashcard reviews for CRM knowledge using spaced
// repetition.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/salescoach/srs-api/internal/config"
	"github.com/salescoach/srs-api/internal/platform/logger"
	"github.com/salescoach/srs-api/internal/platform/postgres"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
	}
}

// initializeApp loads configuration and wires every application component:
// logging, the database connection, migrations, stores, and services.
func initializeApp() (*application, error) {
	// A .env file is a local development convenience; absence is normal.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.ApplyMigrations(db, appLogger); err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return newApplication(cfg, db, appLogger), nil
}
