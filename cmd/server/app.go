package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/repaso-app/repaso-api/internal/config"
	"github.com/repaso-app/repaso-api/internal/domain/srs"
	"github.com/repaso-app/repaso-api/internal/platform/postgres"
	"github.com/repaso-app/repaso-api/internal/service/auth"
	"github.com/repaso-app/repaso-api/internal/service/progression"
	"github.com/repaso-app/repaso-api/internal/service/quota"
	"github.com/repaso-app/repaso-api/internal/service/review"
	"github.com/repaso-app/repaso-api/internal/service/stats"
	"github.com/repaso-app/repaso-api/internal/store"
)

// application bundles everything the server needs at runtime, from the
// connection pool up to the HTTP-facing services, so wiring happens in one
// place and cleanup can walk the same set.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore      store.UserStore
	profileStore   store.ProfileStore
	levelStore     store.LevelStore
	cardStore      store.CardStore
	progressStore  store.ProgressStore
	reviewLogStore store.ReviewLogStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	srsService       srs.Service
	quotas           quota.Enforcer
	promotions       progression.Tracker
	reviewService    review.Service
	statsService     stats.Service
}

// newApplication wires the dependency graph bottom-up: stores over the given
// pool, then the scheduler and policy services, then the composite review and
// stats services on top of both.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.levelStore = postgres.NewPostgresLevelStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.reviewLogStore = postgres.NewPostgresReviewLogStore(db, logger)

	app.srsService, err = srs.NewServiceWithParams(&srs.Params{
		DesiredRetention:    cfg.SRS.DesiredRetention,
		LearningStepMinutes: cfg.SRS.LearningSteps,
		MaximumIntervalDays: cfg.SRS.MaximumInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}
	logger.Info("SRS scheduler initialized",
		"desired_retention", cfg.SRS.DesiredRetention,
		"maximum_interval_days", cfg.SRS.MaximumInterval)

	app.quotas = quota.NewEnforcer(
		app.progressStore,
		app.reviewLogStore,
		cfg.SRS.MaxReviewsPerDay,
		cfg.SRS.MaxNewCardsPerDay,
		logger,
	)

	app.promotions = progression.NewTracker(
		app.profileStore,
		app.levelStore,
		app.cardStore,
		app.progressStore,
		logger,
	)

	app.reviewService = review.NewService(
		app.db,
		app.profileStore,
		app.cardStore,
		app.progressStore,
		app.reviewLogStore,
		app.srsService,
		app.quotas,
		app.promotions,
		logger,
	)

	app.statsService = stats.NewService(
		app.profileStore,
		app.levelStore,
		app.cardStore,
		app.progressStore,
		app.reviewLogStore,
		app.quotas,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP until shutdown. It blocks for the lifetime of the server.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup releases resources the application owns. Safe to call with a
// partially initialized application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		} else {
			app.logger.Info("Database connection closed")
		}
	}
}
