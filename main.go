package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/palabrita/wordle-server/internal/account"
	"github.com/palabrita/wordle-server/internal/config"
	"github.com/palabrita/wordle-server/internal/database"
	"github.com/palabrita/wordle-server/internal/game"
	"github.com/palabrita/wordle-server/internal/httpserver"
	"github.com/palabrita/wordle-server/internal/stats"
	"github.com/palabrita/wordle-server/internal/store"
	"github.com/palabrita/wordle-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	db, err := database.Open(database.Settings{
		Driver: cfg.StoreDriver,
		URL:    cfg.StoreURL,
		Key:    cfg.StoreKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open hosted store")
	}
	defer db.Close()

	st := store.New(db)
	accounts := account.NewService(st, account.HashScheme(cfg.AuthHash))
	provider := words.NewProvider(st)
	aggregator := stats.NewAggregator(st)
	registry := game.NewRegistry()

	srv := httpserver.New(cfg, accounts, provider, aggregator, registry, st)
	log.Info().Str("port", cfg.Port).Str("driver", cfg.StoreDriver).Msg("starting wordle-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
