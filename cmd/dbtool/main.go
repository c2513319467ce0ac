package main

import (
	"database/sql"
	"hotel-booking-service/internal/adapters/repositories"
	"hotel-booking-service/internal/config"
	"hotel-booking-service/internal/platform/db"
	"hotel-booking-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

func main() {
	config.Load()
	obs.Setup(config.Get("LOG_LEVEL", "info"), config.GetBool("LOG_PRETTY", false))

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "")
	if err := initAndSeed(conn, seedPath); err != nil {
		log.Fatal().Err(err).Msg("init and seed")
	}
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	log.Info().Msg("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		return err
	}
	log.Info().Msg("Schema ready.")

	log.Info().Msg("Seeding rooms...")
	if err := repositories.SeedTopology(conn, repositories.Postgres); err != nil {
		return err
	}

	if seedPath != "" {
		log.Info().Str("path", seedPath).Msg("Applying room states...")
		if err := repositories.SeedFromJSON(conn, repositories.Postgres, seedPath); err != nil {
			return err
		}
	}
	log.Info().Msg("Seeding complete.")

	return nil
}
