package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/repaso-app/repaso-api/internal/api"
	apimiddleware "github.com/repaso-app/repaso-api/internal/api/middleware"
	"github.com/repaso-app/repaso-api/internal/api/shared"
)

// setupRouter builds the chi router: standard middleware, the public auth
// endpoints, and the JWT-protected review, level and stats endpoints.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.db,
		app.userStore,
		app.profileStore,
		app.jwtService,
		app.passwordVerifier,
		&app.config.Auth,
		app.logger,
	)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	cardHandler := api.NewCardHandler(app.reviewService, app.logger)
	levelHandler := api.NewLevelHandler(app.statsService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Public: session bootstrap
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Everything else requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/cards/next", cardHandler.GetNextCard)
			r.Post("/cards/{id}/review", cardHandler.SubmitReview)

			r.Get("/levels", levelHandler.GetLevels)

			r.Get("/stats", statsHandler.GetStats)
			r.Get("/stats/today", statsHandler.GetTodayStats)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
	})

	return r
}
