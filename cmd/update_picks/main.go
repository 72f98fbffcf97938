// Command update_picks forces a regeneration of the daily picks document
// and exits. Useful from cron outside the server process or after editing
// the candidate universe.
package main

import (
	"time"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/config"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/logger"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLog := logger.New(logger.Config{Level: "error"})
		errLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
	}

	today := time.Now().Format("2006-01-02")
	doc := store.RegeneratePicks(today)

	for _, pick := range doc.Picks {
		log.Info().Str("ticker", pick.Ticker).Float64("score", pick.SqueezeScore).Msg("Pick")
	}
}
