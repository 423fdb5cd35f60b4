package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/repaso-app/repaso-api/internal/domain"
	"github.com/repaso-app/repaso-api/internal/domain/srs"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/service/progression"
	"github.com/repaso-app/repaso-api/internal/service/quota"
	"github.com/repaso-app/repaso-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db             *sql.DB
	profileStore   store.ProfileStore
	cardStore      store.CardStore
	progressStore  store.ProgressStore
	reviewLogStore store.ReviewLogStore
	scheduler      srs.Service
	quotas         quota.Enforcer
	promotions     progression.Tracker
	logger         *slog.Logger
}

// NewService creates the review service over the given collaborators.
func NewService(
	db *sql.DB,
	profileStore store.ProfileStore,
	cardStore store.CardStore,
	progressStore store.ProgressStore,
	reviewLogStore store.ReviewLogStore,
	scheduler srs.Service,
	quotas quota.Enforcer,
	promotions progression.Tracker,
	logger *slog.Logger,
) Service {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if reviewLogStore == nil {
		panic("reviewLogStore cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if quotas == nil {
		panic("quotas cannot be nil")
	}
	if promotions == nil {
		panic("promotions cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		db:             db,
		profileStore:   profileStore,
		cardStore:      cardStore,
		progressStore:  progressStore,
		reviewLogStore: reviewLogStore,
		scheduler:      scheduler,
		quotas:         quotas,
		promotions:     promotions,
		logger:         logger.With(slog.String("component", "review_service")),
	}
}

// NextCard implements Service.NextCard.
func (s *serviceImpl) NextCard(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*NextCardResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	canReview, err := s.quotas.CanReview(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check review quota: %w", err)
	}
	if !canReview {
		log.Debug("daily review limit reached, session complete",
			slog.String("user_id", userID.String()))
		return &NextCardResult{SessionComplete: true}, nil
	}

	// Overdue cards always come before new material.
	due, err := s.progressStore.FindDue(ctx, userID, now)
	switch {
	case err == nil:
		card, err := s.cardStore.GetByID(ctx, due.CardID)
		if err != nil {
			return nil, fmt.Errorf("failed to get due card %s: %w", due.CardID, err)
		}
		log.Debug("selected due card",
			slog.String("user_id", userID.String()),
			slog.String("card_id", card.ID),
			slog.Time("was_due", due.NextReview))
		return &NextCardResult{Card: card, IsNew: false}, nil
	case !store.IsNotFoundError(err):
		return nil, fmt.Errorf("failed to find due card: %w", err)
	}

	canStart, err := s.quotas.CanStartNewCard(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check new card quota: %w", err)
	}
	if !canStart {
		log.Debug("daily new card limit reached, session complete",
			slog.String("user_id", userID.String()))
		return &NextCardResult{SessionComplete: true}, nil
	}

	profile, err := s.profileStore.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Without a profile there is no level ceiling to select under;
			// end the session instead of failing the request.
			log.Error("profile not found during card selection",
				slog.String("user_id", userID.String()))
			return &NextCardResult{SessionComplete: true}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	card, err := s.cardStore.FindUnseen(ctx, userID, profile.CurrentLevel)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("no new cards available, session complete",
				slog.String("user_id", userID.String()),
				slog.Int("current_level", profile.CurrentLevel))
			return &NextCardResult{SessionComplete: true}, nil
		}
		return nil, fmt.Errorf("failed to find unseen card: %w", err)
	}

	log.Debug("selected new card",
		slog.String("user_id", userID.String()),
		slog.String("card_id", card.ID),
		slog.Int("card_level", card.LevelID))
	return &NextCardResult{Card: card, IsNew: true}, nil
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	userID uuid.UUID,
	cardID string,
	rating int,
	now time.Time,
) (time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.ValidRating(rating) {
		log.Warn("invalid review rating",
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID),
			slog.Int("rating", rating))
		return time.Time{}, ErrInvalidRating
	}

	var nextReview time.Time
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		profiles := s.profileStore.WithTx(tx)
		progresses := s.progressStore.WithTx(tx)
		reviewLogs := s.reviewLogStore.WithTx(tx)

		// The profile row lock serializes concurrent submissions for the
		// same learner, keeping quota counts and promotion checks coherent.
		if _, err := profiles.GetForUpdate(ctx, userID); err != nil {
			if store.IsNotFoundError(err) {
				log.Warn("profile not found for review",
					slog.String("user_id", userID.String()))
				return ErrProfileNotFound
			}
			return fmt.Errorf("failed to lock profile: %w", err)
		}

		if _, err := s.cardStore.GetByID(ctx, cardID); err != nil {
			if store.IsNotFoundError(err) {
				log.Warn("card not found for review",
					slog.String("user_id", userID.String()),
					slog.String("card_id", cardID))
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		progress, err := progresses.Get(ctx, userID, cardID)
		firstReview := false
		if err != nil {
			if !store.IsNotFoundError(err) {
				return fmt.Errorf("failed to get card progress: %w", err)
			}

			// First review of this card: give it fresh scheduler state. The
			// progress row's creation time is what the new-card quota counts.
			state, err := s.scheduler.NewCardState(now)
			if err != nil {
				return fmt.Errorf("failed to create scheduler state: %w", err)
			}
			progress, err = domain.NewCardProgress(userID, cardID, state, now)
			if err != nil {
				return fmt.Errorf("failed to create card progress: %w", err)
			}
			firstReview = true
			log.Debug("starting new card",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID))
		}

		result, err := s.scheduler.ReviewCard(progress.State, rating, now)
		if err != nil {
			return fmt.Errorf("failed to schedule review: %w", err)
		}

		wasMastered := progress.Mastered()
		progress.ApplyReview(result.State, result.Due, now)
		progress.RecordStability(result.Stability, now)
		if !wasMastered && progress.Mastered() {
			log.Info("card mastered",
				slog.String("user_id", userID.String()),
				slog.String("card_id", cardID),
				slog.Float64("stability_days", result.Stability))
		}

		if firstReview {
			if err := progresses.Create(ctx, progress); err != nil {
				return fmt.Errorf("failed to create card progress: %w", err)
			}
		} else {
			if err := progresses.Update(ctx, progress); err != nil {
				return fmt.Errorf("failed to update card progress: %w", err)
			}
		}

		reviewLog, err := domain.NewReviewLog(userID, cardID, rating, result.Log, now)
		if err != nil {
			return fmt.Errorf("failed to create review log: %w", err)
		}
		if err := reviewLogs.Create(ctx, reviewLog); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		// Promotion is bookkeeping on top of the review; a failed check is
		// logged rather than failing the submission.
		if _, err := s.promotions.WithTx(tx).CheckAndPromote(ctx, userID, now); err != nil {
			log.Error("promotion check failed",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}

		nextReview = result.Due
		return nil
	})
	if err != nil {
		// Pass service sentinels through untouched so handlers can map them.
		if errors.Is(err, ErrProfileNotFound) ||
			errors.Is(err, ErrCardNotFound) ||
			errors.Is(err, ErrInvalidRating) {
			return time.Time{}, err
		}

		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("card_id", cardID))
		return time.Time{}, fmt.Errorf("failed to submit review: %w", err)
	}

	log.Info("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("card_id", cardID),
		slog.Int("rating", rating),
		slog.Time("next_review", nextReview))

	return nextReview, nil
}
