// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curator/internal/recommend"
)

// HealthLive handles GET /api/v1/health/live. It answers 200 whenever the
// process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, h.now())
}

// HealthReady handles GET /api/v1/health/ready. Ready means a catalog is
// loaded; otherwise 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()

	status := http.StatusOK
	state := "ready"
	if !st.Initialized {
		status = http.StatusServiceUnavailable
		state = "not_ready"
	}

	respondJSON(w, status, &APIResponse{
		Status: state,
		Data: map[string]interface{}{
			"catalog_loaded": st.Initialized,
			"exhibit_count":  st.ExhibitCount,
			"uptime":         time.Since(h.startTime).Seconds(),
		},
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	})
}

// StatusResponse is the data of GET /api/v1/status.
type StatusResponse struct {
	Engine        recommend.Status `json:"engine"`
	UptimeSeconds float64          `json:"uptime_seconds"`

	// HistoryState is the history circuit breaker state.
	HistoryState string `json:"history_state,omitempty"`
}

// breakerStater is implemented by history stores guarded by a breaker.
type breakerStater interface {
	StateName() string
}

// Status handles GET /api/v1/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	resp := StatusResponse{
		Engine:        h.engine.Status(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if bs, ok := h.history.(breakerStater); ok {
		resp.HistoryState = bs.StateName()
	}
	respondData(w, r, http.StatusOK, resp, start)
}
