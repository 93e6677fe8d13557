// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"context"
	"time"

	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/recommend"
	ws "github.com/tomtom215/curator/internal/websocket"
)

// DefaultAnalyzeTimeout bounds one analysis when HandlerConfig leaves it unset.
const DefaultAnalyzeTimeout = 10 * time.Second

// Engine is the recommendation pipeline. Satisfied by *engine.Engine.
type Engine interface {
	Status() recommend.Status
	Catalog() *recommend.Catalog
	Analyze(ctx context.Context, sel *recommend.UserSelections, history []recommend.InteractionEvent, opts *recommend.Options) (*recommend.AnalysisResult, error)
}

// InteractionPublisher accepts interaction events for asynchronous storage.
// Satisfied by *feedback.Publisher.
type InteractionPublisher interface {
	Publish(ctx context.Context, sessionID string, ev recommend.InteractionEvent) (string, error)
}

// HandlerConfig holds the Handler's dependencies.
type HandlerConfig struct {
	Engine    Engine
	History   history.Store
	Publisher InteractionPublisher

	// AnalyzeTimeout bounds the engine call of POST /analyze.
	AnalyzeTimeout time.Duration

	// Hub serves GET /live and receives analysis summaries. Nil disables
	// the live feed.
	Hub *ws.Hub

	// AllowedOrigins are the browser origins accepted for /live; "*" allows any.
	AllowedOrigins []string
}

// Handler serves the curator HTTP API.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness, status
//   - handlers_exhibits.go: catalog browsing
//   - handlers_analyze.go: recommendations and tour planning
//   - handlers_interactions.go: session interaction history
//   - handlers_live.go: websocket live feed
type Handler struct {
	engine         Engine
	history        history.Store
	publisher      InteractionPublisher
	analyzeTimeout time.Duration
	hub            *ws.Hub
	allowedOrigins []string
	startTime      time.Time
	now            func() time.Time
}

// NewHandler creates a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	timeout := cfg.AnalyzeTimeout
	if timeout <= 0 {
		timeout = DefaultAnalyzeTimeout
	}
	return &Handler{
		engine:         cfg.Engine,
		history:        cfg.History,
		publisher:      cfg.Publisher,
		analyzeTimeout: timeout,
		hub:            cfg.Hub,
		allowedOrigins: cfg.AllowedOrigins,
		startTime:      time.Now(),
		now:            time.Now,
	}
}
