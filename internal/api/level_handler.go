package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/repaso-app/repaso-api/internal/api/shared"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/service/stats"
)

// LevelHandler handles curriculum level HTTP requests.
type LevelHandler struct {
	statsService stats.Service
	logger       *slog.Logger
}

// NewLevelHandler creates a new LevelHandler.
func NewLevelHandler(
	statsService stats.Service,
	logger *slog.Logger,
) *LevelHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LevelHandler")
	}

	return &LevelHandler{
		statsService: statsService,
		logger:       logger.With(slog.String("component", "level_handler")),
	}
}

// GetLevels handles GET /levels requests.
// It returns every curriculum level with the learner's unlock state and
// displayed progress, ordered by level ID.
func (h *LevelHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	levels, err := h.statsService.GetLevels(r.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(w, r, err, "Failed to get levels")
		return
	}

	log.Debug("levels retrieved",
		slog.String("user_id", userID.String()),
		slog.Int("level_count", len(levels)))
	shared.RespondWithJSON(w, r, http.StatusOK, levels)
}
