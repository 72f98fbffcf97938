package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abilityofwillity/paper-squeeze-trader/internal/config"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/jobs"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/logger"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/market"
	alpacaprovider "github.com/abilityofwillity/paper-squeeze-trader/internal/market/alpaca"
	mockprovider "github.com/abilityofwillity/paper-squeeze-trader/internal/market/mock"
	yahooprovider "github.com/abilityofwillity/paper-squeeze-trader/internal/market/yahoo"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/scheduler"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/server"
	"github.com/abilityofwillity/paper-squeeze-trader/internal/storage"
)

const staticDir = "web/static"

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
	log.Info().Str("provider", cfg.MarketProvider).Msg("Starting Paper Squeeze Trader")

	store, err := storage.New(cfg.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to open data directory")
	}

	provider := newProvider(cfg.MarketProvider)

	// Make sure today's picks exist before the first request comes in.
	store.LoadPicks(time.Now().Format("2006-01-02"))

	sched := scheduler.New(log)
	if err := sched.AddJob(cfg.PicksCron, jobs.NewRefreshPicks(store)); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.PicksCron).Msg("Failed to register picks refresh job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Log:       log,
		Store:     store,
		Provider:  provider,
		AppConfig: cfg,
		StaticDir: staticDir,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}

func newProvider(name string) market.PriceProvider {
	switch name {
	case config.ProviderAlpaca:
		return alpacaprovider.NewProvider()
	case config.ProviderMock:
		return mockprovider.NewProvider()
	default:
		return yahooprovider.NewProvider()
	}
}
