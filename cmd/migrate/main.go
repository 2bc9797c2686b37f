package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"albumapi/internal/config"
	"albumapi/internal/logging"
	"albumapi/internal/migrations"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate [up|down|version]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logging.SetGlobalLogger(logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}))

	switch os.Args[1] {
	case "up":
		if err := migrations.Up(cfg.Database.URL); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
		log.Info().Msg("migrations applied successfully")
	case "down":
		if err := migrations.Down(cfg.Database.URL); err != nil {
			log.Fatal().Err(err).Msg("rollback migrations")
		}
		log.Info().Msg("migrations rolled back successfully")
	case "version":
		version, dirty, err := migrations.Version(cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("read schema version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}
