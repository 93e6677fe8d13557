// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/curator/internal/middleware"
)

// NewRouter configures all HTTP routes on a chi router.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)    // X-Request-ID header + logging context
	r.Use(chimiddleware.RealIP)    // Extract real IP from X-Forwarded-For
	r.Use(middleware.AccessLog)    // One structured line per request
	r.Use(chimiddleware.Recoverer) // Recover from panics
	r.Use(mw.CORS())               // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethod, "Method not allowed", nil)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Health checks stay outside the rate limiter so probes never see 429.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(APISecurityHeaders())

		r.Get("/status", h.Status)
		r.Get("/exhibits", h.ListExhibits)
		r.Get("/exhibits/{id}", h.GetExhibit)

		r.With(mw.RateLimitWrite()).Post("/analyze", h.Analyze)

		r.With(mw.RateLimitWrite()).Post("/sessions/{sessionID}/interactions", h.RecordInteraction)
		r.Get("/sessions/{sessionID}/interactions", h.ListInteractions)
		r.Delete("/sessions/{sessionID}/interactions", h.ClearInteractions)

		r.Get("/live", h.Live)
	})

	return r
}
