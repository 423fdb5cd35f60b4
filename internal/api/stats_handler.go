package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/repaso-app/repaso-api/internal/api/shared"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/service/stats"
)

// StatsHandler handles learner statistics HTTP requests.
type StatsHandler struct {
	statsService stats.Service
	logger       *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(
	statsService stats.Service,
	logger *slog.Logger,
) *StatsHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StatsHandler")
	}

	return &StatsHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "stats_handler")),
	}
}

// GetStats handles GET /stats requests.
// It returns the learner's aggregated statistics: review counts, streaks and
// per-level progress.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	userStats, err := h.statsService.GetUserStats(r.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err, "Failed to get statistics")
		return
	}

	log.Debug("stats retrieved", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, userStats)
}

// GetTodayStats handles GET /stats/today requests.
// It returns the lightweight counter pair shown during a review session.
func (h *StatsHandler) GetTodayStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	todayStats, err := h.statsService.GetTodayStats(r.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err, "Failed to get statistics")
		return
	}

	log.Debug("today stats retrieved", slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, todayStats)
}
