// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package main

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/api"
	"github.com/tomtom215/curator/internal/catalog"
	"github.com/tomtom215/curator/internal/config"
	"github.com/tomtom215/curator/internal/engine"
	"github.com/tomtom215/curator/internal/feedback"
	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/metrics"
	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/supervisor"
	"github.com/tomtom215/curator/internal/supervisor/services"
	ws "github.com/tomtom215/curator/internal/websocket"
)

// Components holds everything main wires together.
type Components struct {
	Engine   *engine.Engine
	History  *history.BreakerStore
	Bus      *gochannel.GoChannel
	Consumer *feedback.Consumer
	Server   *http.Server

	// Hub and Relay are nil when the live feed is disabled.
	Hub   *ws.Hub
	Relay *ws.FeedbackRelay
}

// initEngine creates the engine and loads the configured catalog.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initEngine(cfg *config.Config, logger zerolog.Logger) (*engine.Engine, error) {
	rec := recommend.Multi(
		recommend.NewLogRecorder(logger.With().Str("component", "engine").Logger()),
		metrics.NewRecorder(),
	)
	eng, err := engine.New(cfg.EngineConfig(), rec)
	if err != nil {
		return nil, err
	}

	records, source, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := eng.Initialize(records); err != nil {
		return nil, err
	}

	st := eng.Status()
	logger.Info().
		Str("source", source).
		Int("exhibits", st.ExhibitCount).
		Str("version", st.CatalogVersion).
		Msg("exhibit catalog loaded")
	return eng, nil
}

// initComponents builds the engine, history store, feedback bus and HTTP
// server.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func initComponents(cfg *config.Config, logger zerolog.Logger) (*Components, error) {
	eng, err := initEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := history.Open(cfg.History, logger.With().Str("component", "history").Logger())
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	feedbackLog := logger.With().Str("component", "feedback").Logger()
	bus := feedback.NewBus(cfg.Feedback, feedbackLog)
	publisher := feedback.NewPublisher(bus, cfg.Feedback, feedbackLog)
	consumer := feedback.NewConsumer(bus, store, cfg.Feedback.Topic, feedbackLog)

	var hub *ws.Hub
	var relay *ws.FeedbackRelay
	if cfg.Live.Enabled {
		hub = ws.NewHub()
		relay = ws.NewFeedbackRelay(bus, hub, cfg.Feedback.Topic, logger.With().Str("component", "websocket").Logger())
	}

	handler := api.NewHandler(api.HandlerConfig{
		Engine:         eng,
		History:        store,
		Publisher:      publisher,
		AnalyzeTimeout: cfg.Engine.AnalyzeTimeout,
		Hub:            hub,
		AllowedOrigins: cfg.Security.CORSOrigins,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return &Components{
		Engine:   eng,
		History:  store,
		Bus:      bus,
		Consumer: consumer,
		Server:   server,
		Hub:      hub,
		Relay:    relay,
	}, nil
}

// addServices registers the long-running services with the supervisor
// tree. History GC (badger only) goes in the data layer. The feedback
// consumer and the live feed hub and relay go in the messaging layer, and
// the HTTP server in the API layer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func addServices(tree *supervisor.SupervisorTree, c *Components, cfg *config.Config, logger zerolog.Logger) {
	if bs, ok := c.History.Unwrap().(*history.BadgerStore); ok && cfg.History.GCInterval > 0 {
		tree.AddDataService(services.NewHistoryGCService(bs, cfg.History.GCInterval, logger))
		logger.Info().Dur("interval", cfg.History.GCInterval).Msg("history GC service added")
	}

	tree.AddMessagingService(c.Consumer)
	if c.Hub != nil {
		tree.AddMessagingService(services.NewWebSocketHubService(c.Hub))
		tree.AddMessagingService(c.Relay)
		logger.Info().Msg("live feed services added")
	}

	tree.AddAPIService(services.NewHTTPServerService(c.Server, cfg.Server.ShutdownTimeout))
	logger.Info().Str("addr", c.Server.Addr).Msg("HTTP server service added")
}

// Close releases the bus and the history store.
func (c *Components) Close() {
	if err := c.Bus.Close(); err != nil {
		logging.Err(err).Msg("error closing feedback bus")
	}
	if err := c.History.Close(); err != nil {
		logging.Err(err).Msg("error closing history store")
	}
}
