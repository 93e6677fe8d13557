// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/curator/internal/logging"
	ws "github.com/tomtom215/curator/internal/websocket"
)

const liveJoinTimeout = 5 * time.Second

// getUpgrader returns an upgrader with origin checking and a handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts browsers from the configured CORS origins.
// A missing Origin is rejected: browsers always send one.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("live connection rejected: missing Origin header")
		return false
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", origin).Msg("live connection rejected: origin not allowed")
	return false
}

// Live handles GET /api/v1/live, upgrading to a websocket that streams
// interaction and analysis messages.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "Live feed is disabled", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		logging.Debug().Err(err).Msg("live upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn)
	ctx, cancel := context.WithTimeout(context.Background(), liveJoinTimeout)
	defer cancel()
	if err := h.hub.Join(ctx, client); err != nil {
		logging.Warn().Err(err).Msg("live hub not accepting clients")
		_ = conn.Close()
		return
	}
	client.Start()
}
