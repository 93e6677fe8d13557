// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	logger := logging.With().Str("service", "curator").Logger()

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("history_backend", cfg.History.Backend).
		Str("catalog", cfg.Catalog.Path).
		Msg("Starting Curator with supervisor tree")

	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.ShouldWarnAboutCORS() {
		logger.Warn().Msg("============================================================")
		logger.Warn().Msg("  SECURITY WARNING: CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logger.Warn().Msg("  ")
		logger.Warn().Msg("  Any website can call the API from a visitor's browser.")
		logger.Warn().Msg("  RECOMMENDED: Set specific origins in production:")
		logger.Warn().Msg("    CORS_ORIGINS=https://kiosk.yourmuseum.org")
		logger.Warn().Msg("============================================================")
	}

	components, err := initComponents(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize components")
	}
	defer components.Close()

	tree := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfigFrom(cfg.Supervisor),
	)
	addServices(tree, components, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)
	go logSubscribed(ctx, components, logger)

	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
		stop()
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree error")
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logger.Info().Msg("Curator stopped gracefully")
}

// logSubscribed reports when the bus subscribers are attached. gochannel
// drops interactions published before that.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func logSubscribed(ctx context.Context, c *Components, logger zerolog.Logger) {
	waits := []<-chan struct{}{c.Consumer.Ready()}
	if c.Relay != nil {
		waits = append(waits, c.Relay.Ready())
	}
	timeout := time.After(10 * time.Second)
	for _, ready := range waits {
		select {
		case <-ready:
		case <-ctx.Done():
			return
		case <-timeout:
			logger.Warn().Msg("feedback subscribers not ready after 10s")
			return
		}
	}
	logger.Info().Int("subscribers", len(waits)).Msg("feedback subscribers ready")
}
