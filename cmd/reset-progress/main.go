// Command reset-progress wipes a learner's review history and returns their
// profile to level 1. Nothing in the API ever lowers a level or deletes
// progress, so this tool is the administrative escape hatch for learners who
// want to start over.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/repaso-app/repaso-api/internal/config"
	"github.com/repaso-app/repaso-api/internal/platform/logger"
	"github.com/repaso-app/repaso-api/internal/platform/postgres"
	"github.com/repaso-app/repaso-api/internal/store"
)

func main() {
	email := flag.String("email", "", "email of the user whose progress should be reset")
	confirm := flag.Bool("confirm", false, "acknowledge that the reset is irreversible")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: reset-progress -email <address> -confirm")
		os.Exit(2)
	}

	if !*confirm {
		fmt.Fprintf(os.Stderr,
			"This deletes ALL card progress and review history for %s and resets their profile to level 1.\n",
			*email)
		fmt.Fprintln(os.Stderr, "This cannot be undone. Re-run with -confirm to proceed.")
		os.Exit(2)
	}

	if err := run(*email); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and performs the reset.
func run(email string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	users := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, log)
	profiles := postgres.NewPostgresProfileStore(db, log)
	progress := postgres.NewPostgresProgressStore(db, log)
	reviewLogs := postgres.NewPostgresReviewLogStore(db, log)

	return resetProgress(ctx, db, users, profiles, progress, reviewLogs, email, log)
}

// resetProgress deletes the user's progress rows and review logs and resets
// their profile to level 1, all in one transaction. A missing profile is
// logged but does not fail the reset.
func resetProgress(
	ctx context.Context,
	db *sql.DB,
	users store.UserStore,
	profiles store.ProfileStore,
	progress store.ProgressStore,
	reviewLogs store.ReviewLogStore,
	email string,
	log *slog.Logger,
) error {
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("no user with email %q", email)
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	log.Info("resetting progress", "user_id", user.ID)

	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		progressDeleted, err := progress.WithTx(tx).DeleteForUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to delete card progress: %w", err)
		}
		log.Info("deleted card progress", "rows", progressDeleted)

		logsDeleted, err := reviewLogs.WithTx(tx).DeleteForUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to delete review logs: %w", err)
		}
		log.Info("deleted review logs", "rows", logsDeleted)

		txProfiles := profiles.WithTx(tx)
		profile, err := txProfiles.GetForUpdate(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrProfileNotFound) {
				log.Warn("no profile to reset", "user_id", user.ID)
				return nil
			}
			return fmt.Errorf("failed to load profile: %w", err)
		}

		profile.Reset(time.Now())
		if err := txProfiles.Update(ctx, profile); err != nil {
			return fmt.Errorf("failed to reset profile level: %w", err)
		}
		log.Info("profile returned to level 1", "user_id", user.ID)

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("progress reset complete", "user_id", user.ID)
	return nil
}
