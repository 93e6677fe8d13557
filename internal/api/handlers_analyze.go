// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/metrics"
	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
	ws "github.com/tomtom215/curator/internal/websocket"
)

// Where the history of an analysis came from.
const (
	HistoryNone        = "none"
	HistoryInline      = "inline"
	HistoryStored      = "stored"
	HistoryUnavailable = "unavailable"
)

// Analysis outcomes recorded in curator_analyses_total.
const (
	outcomeSuccess        = "success"
	outcomeInvalid        = "invalid"
	outcomeNotInitialized = "not_initialized"
	outcomeError          = "error"
)

// AnalyzeResponse is the data of POST /api/v1/analyze.
type AnalyzeResponse struct {
	*recommend.AnalysisResult

	SessionID     string `json:"session_id,omitempty"`
	HistorySource string `json:"history_source"`
	HistoryEvents int    `json:"history_events"`
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.RecordAnalysis(outcomeInvalid)
		respondDecodeError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordAnalysis(outcomeInvalid)
		respondValidation(w, r, verr)
		return
	}

	ctx := r.Context()
	if req.SessionID != "" {
		ctx = logging.ContextWithSessionID(ctx, req.SessionID)
	}
	events, source := h.loadHistory(ctx, &req)

	ctx, cancel := context.WithTimeout(ctx, h.analyzeTimeout)
	defer cancel()

	result, err := h.engine.Analyze(ctx, req.Selections, events, req.Options)
	if err != nil {
		metrics.RecordAnalysis(analysisOutcome(err))
		respondDomainError(w, r.WithContext(ctx), err)
		return
	}
	metrics.RecordAnalysis(outcomeSuccess)

	logging.Ctx(ctx).Debug().
		Str("profile_id", result.Profile.ID).
		Int("recommendations", len(result.Recommendations)).
		Int("tour_stops", len(result.Tour.Stops)).
		Str("history_source", source).
		Msg("analysis served")

	if h.hub != nil {
		h.hub.BroadcastAnalysis(ws.SummarizeAnalysis(req.SessionID, source, result, h.now()))
	}

	respondData(w, r, http.StatusOK, AnalyzeResponse{
		AnalysisResult: result,
		SessionID:      req.SessionID,
		HistorySource:  source,
		HistoryEvents:  len(events),
	}, start)
}

// loadHistory picks the interaction history for an analysis. Inline
// history wins; otherwise a session's stored events are used. A store
// failure degrades to no history rather than failing the analysis.
func (h *Handler) loadHistory(ctx context.Context, req *AnalyzeRequest) ([]recommend.InteractionEvent, string) {
	if req.History != nil {
		return req.History, HistoryInline
	}
	if req.SessionID == "" || h.history == nil {
		return nil, HistoryNone
	}

	events, err := h.history.List(ctx, req.SessionID)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("interaction history unavailable, analyzing without it")
		return nil, HistoryUnavailable
	}
	return events, HistoryStored
}

func analysisOutcome(err error) string {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		return outcomeInvalid
	case errors.Is(err, recommend.ErrNotInitialized):
		return outcomeNotInitialized
	default:
		return outcomeError
	}
}

// respondDecodeError answers a body that could not be read or parsed.
func respondDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		respondError(w, r, http.StatusRequestEntityTooLarge, ErrCodeInvalidJSON, "Request body too large", err)
		return
	}
	respondError(w, r, http.StatusBadRequest, ErrCodeInvalidJSON, "Request body must be a valid JSON object", err)
}
