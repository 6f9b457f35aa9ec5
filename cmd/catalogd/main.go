package main

import (
	"context"
	"os"
	"time"

	"github.com/blendsoftware/catalog/internal/config"
	"github.com/blendsoftware/catalog/internal/infra"
	"github.com/blendsoftware/catalog/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// catalogd bootstraps the catalog store: it loads configuration, opens the
// database, creates the schema if absent, and reports the catalog size. The
// HTTP surface lives in a separate service that consumes this module.
func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := infra.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog database")
	}

	repo := repository.NewProductRepository(db)
	products, err := repo.All(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read catalog")
	}

	log.Info().
		Str("env", cfg.Env).
		Int("products", len(products)).
		Msg("catalog store ready")
}
