package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"hackhub/internal/database"
	"hackhub/internal/domain"
)

// Seeds a local database with hackathon metadata and a couple of demo
// challenges. Development helper only.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hackhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	log.Info().Msg("running AutoMigrate")
	if err := db.AutoMigrate(
		&domain.Account{},
		&domain.RefreshToken{},
		&domain.Challenge{},
		&domain.Submission{},
		&domain.TodoItem{},
		&domain.HackathonInfo{},
		&domain.EvaluationMetric{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	// Clean old demo data in FK-safe order.
	log.Info().Msg("cleaning old data")
	db.Exec("DELETE FROM todo_items")
	db.Exec("DELETE FROM submissions")
	db.Exec("DELETE FROM challenges")
	db.Exec("DELETE FROM hackathon_information")

	now := time.Now().UTC()
	start := now.Add(24 * time.Hour).Truncate(time.Hour)
	end := start.Add(48 * time.Hour)

	info := domain.HackathonInfo{
		Name:        "HackHub Spring Edition",
		Description: "48 hours, two tracks, one winner per track.",
		StartDate:   start,
		EndDate:     end,
	}
	if err := db.Create(&info).Error; err != nil {
		log.Fatal().Err(err).Msg("seeding hackathon info failed")
	}

	challenges := []domain.Challenge{
		{
			Title:       "Realtime Collaboration Track",
			Description: "Build a tool that lets a team work on the same artifact at once.",
			Rules:       "Teams of up to 4. Submissions must include source and a demo video.",
			Deadline:    end,
		},
		{
			Title:       "Data for Good Track",
			Description: "Use an open dataset to surface something actionable for a non-profit.",
			Rules:       "Solo or team. Cite every dataset you touch.",
			Deadline:    end,
		},
	}
	for i := range challenges {
		if err := db.Create(&challenges[i]).Error; err != nil {
			log.Fatal().Err(err).Msg("seeding challenges failed")
		}
	}

	log.Info().
		Int("challenges", len(challenges)).
		Time("start", start).
		Time("end", end).
		Msg("seed completed")
}
