// Foresight analyzes investment ideas: key financial metrics, a multi-factor
// risk assessment, and a probabilistic outcome model.
package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/database"
	"github.com/aristath/foresight/internal/modules/indicators"
	"github.com/aristath/foresight/internal/modules/metrics"
	"github.com/aristath/foresight/internal/modules/outcomes"
	"github.com/aristath/foresight/internal/modules/reports"
	"github.com/aristath/foresight/internal/modules/risk"
	"github.com/aristath/foresight/internal/server"
	"github.com/aristath/foresight/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("port", cfg.Port).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting Foresight")

	reportsDB, err := database.New(database.Config{
		Path: filepath.Join(cfg.DataDir, "reports.db"),
		Name: "reports",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open reports database")
	}
	defer reportsDB.Close()

	repo, err := reports.NewRepository(reportsDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize report repository")
	}

	service := reports.NewService(
		metrics.NewCalculator(log),
		risk.NewAssessor(log),
		outcomes.NewModeler(log, rand.NewSource(time.Now().UnixNano())),
		indicators.NewDeriver(log),
		repo,
		log,
	)

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		ReportsDB: reportsDB,
		Service:   service,
		Repo:      repo,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("HTTP server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Foresight stopped")
}
