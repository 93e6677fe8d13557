// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/curator/internal/feedback"
	"github.com/tomtom215/curator/internal/history"
	"github.com/tomtom215/curator/internal/recommend"
)

// ErrBodyTooLarge is reported when a request body exceeds maxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// respondDomainError maps engine, history and feedback errors onto HTTP
// statuses. Anything unrecognized is a 500.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		respondValidation(w, r, err)
	case errors.Is(err, recommend.ErrNotInitialized):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeNotInitialized, "No exhibit catalog is loaded", err)
	case errors.Is(err, history.ErrUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "Interaction history is temporarily unavailable", err)
	case errors.Is(err, feedback.ErrRateLimited):
		respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimited, "Too many interactions for this session", err)
	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}
