// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curator/internal/feedback"
	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/logging"
	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

// InteractionAccepted is the data of a 202 from POST .../interactions.
type InteractionAccepted struct {
	MessageID string                     `json:"message_id,omitempty"`
	SessionID string                     `json:"session_id"`
	Event     recommend.InteractionEvent `json:"event"`

	// Duplicate is set when the event repeated one accepted moments earlier
	// and was not published again.
	Duplicate bool `json:"duplicate,omitempty"`
}

// InteractionList is the data of GET .../interactions.
type InteractionList struct {
	SessionID string                       `json:"session_id"`
	Events    []recommend.InteractionEvent `json:"events"`
	Count     int                          `json:"count"`
}

// InteractionsCleared is the data of DELETE .../interactions.
type InteractionsCleared struct {
	SessionID string `json:"session_id"`
	Deleted   int    `json:"deleted"`
}

// sessionParam returns the validated {sessionID} path parameter. On
// failure it has already written a 400.
func sessionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if verr := validation.ValidateVar("session_id", sessionID, "required,sessionid"); verr != nil {
		respondValidation(w, r, verr)
		return "", false
	}
	return sessionID, true
}

// RecordInteraction handles POST /api/v1/sessions/{sessionID}/interactions.
// The event is published on the feedback bus and stored asynchronously, so
// the response is 202. Exhibits must exist in the loaded catalog.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}
	if h.publisher == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "Interaction ingestion is disabled", nil)
		return
	}

	var req InteractionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondDecodeError(w, r, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}
	if cat := h.engine.Catalog(); cat != nil && !cat.Has(req.ExhibitID) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Exhibit not found", nil)
		return
	}

	ev := recommend.InteractionEvent{
		ExhibitID: req.ExhibitID,
		Kind:      req.Kind,
		Timestamp: h.now().UTC(),
	}
	if req.Timestamp != nil {
		ev.Timestamp = req.Timestamp.UTC()
	}

	ctx := logging.ContextWithSessionID(r.Context(), sessionID)
	messageID, err := h.publisher.Publish(ctx, sessionID, ev)
	duplicate := errors.Is(err, feedback.ErrDuplicate)
	if err != nil && !duplicate {
		respondDomainError(w, r.WithContext(ctx), err)
		return
	}

	respondData(w, r, http.StatusAccepted, InteractionAccepted{
		MessageID: messageID,
		SessionID: sessionID,
		Event:     ev,
		Duplicate: duplicate,
	}, start)
}

// ListInteractions handles GET /api/v1/sessions/{sessionID}/interactions.
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		respondDomainError(w, r, history.ErrUnavailable)
		return
	}

	events, err := h.history.List(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, InteractionList{
		SessionID: sessionID,
		Events:    events,
		Count:     len(events),
	}, start)
}

// ClearInteractions handles DELETE /api/v1/sessions/{sessionID}/interactions.
func (h *Handler) ClearInteractions(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	sessionID, ok := sessionParam(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		respondDomainError(w, r, history.ErrUnavailable)
		return
	}

	n, err := h.history.Clear(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	logging.Ctx(logging.ContextWithSessionID(r.Context(), sessionID)).Info().
		Int("deleted", n).
		Msg("session interactions cleared")

	respondData(w, r, http.StatusOK, InteractionsCleared{SessionID: sessionID, Deleted: n}, start)
}
