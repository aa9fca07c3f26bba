// Package main is the entry point for the fundwise contribution advisor.
// The service recommends how to distribute a cash contribution across a
// portfolio of real-estate fund holdings: underweight funds trading below
// their ceiling price are funded first, within a whole-unit budget pass.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rcastro/fundwise/internal/config"
	"github.com/rcastro/fundwise/internal/database"
	"github.com/rcastro/fundwise/internal/modules/advisor"
	advisorhandlers "github.com/rcastro/fundwise/internal/modules/advisor/handlers"
	"github.com/rcastro/fundwise/internal/modules/portfolio"
	"github.com/rcastro/fundwise/internal/modules/prices"
	"github.com/rcastro/fundwise/internal/modules/targets"
	"github.com/rcastro/fundwise/internal/server"
	"github.com/rcastro/fundwise/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting fundwise")

	db, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "fundwise.db"),
		Name: "fundwise",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	targetRepo := targets.NewRepository(db.Conn(), log)
	priceRepo := prices.NewRepository(db.Conn(), log)
	priceResolver := prices.NewResolver(priceRepo, log)

	advisorService := advisor.NewService(positionRepo, targetRepo, priceResolver, log)
	handler := advisorhandlers.NewHandler(
		advisorService,
		cfg.Advisor,
		cfg.MinContribution,
		cfg.MaxContribution,
		log,
	)

	srv := server.New(server.Config{
		Port:            cfg.Port,
		DevMode:         cfg.DevMode,
		AdvisorHandlers: handler,
		Log:             log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("fundwise stopped")
}
