// Package main implements the entry point for the Repaso API server,
// which schedules and grades early-reading flashcard reviews for young
// Spanish-speaking learners.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/repaso-app/repaso-api/internal/config"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"run a migration command (up, down, reset, status, version) and exit",
	)
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run loads configuration, connects to the database and either executes a
// migration command or starts the HTTP server. Split from main so errors
// flow back through a single exit point.
func run(migrateCmd string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up structured logging using the configured log level
	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Establish the database connection
	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	// Migration commands run and exit without starting the server
	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return postgres.RunMigrations(db, appLogger, migrateCmd)
	}

	// Apply pending migrations on startup so a fresh database is usable
	// without a separate deploy step
	if err := postgres.RunMigrations(db, appLogger, "up"); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Wire the application and start serving
	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(context.Background())
}
