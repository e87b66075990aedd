package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hackhub/internal/database"
	"hackhub/internal/repository"
)

// Prunes terminal refresh-token records past the retention horizon. Revoked
// and expired rows are kept for a while for reuse detection and audit, then
// dropped here. Meant to run from cron.
func main() {
	_ = godotenv.Load()

	retention := flag.Duration("retention", 30*24*time.Hour, "how long terminal tokens are kept")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	repo := repository.NewRefreshTokenRepository(db)
	cutoff := time.Now().UTC().Add(-*retention)

	deleted, err := repo.DeleteTerminalBefore(context.Background(), cutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("refresh token cleanup failed")
	}

	log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("auth cleanup completed")
}
