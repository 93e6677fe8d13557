// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/recommend"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// AnalyzeRequest is the body of POST /api/v1/analyze.
//
// When SessionID is set and History is nil, the session's stored
// interactions are used. An explicit empty History disables that lookup.
type AnalyzeRequest struct {
	Selections *recommend.UserSelections    `json:"selections" validate:"required"`
	SessionID  string                       `json:"session_id,omitempty" validate:"omitempty,sessionid"`
	History    []recommend.InteractionEvent `json:"history,omitempty" validate:"max=1000,dive"`
	Options    *recommend.Options           `json:"options,omitempty"`
}

// InteractionRequest is the body of POST /api/v1/sessions/{sessionID}/interactions.
// Timestamp defaults to the server time.
type InteractionRequest struct {
	ExhibitID string                 `json:"exhibit_id" validate:"required,max=128"`
	Kind      recommend.FeedbackKind `json:"kind" validate:"required,oneof=viewed liked skipped"`
	Timestamp *time.Time             `json:"timestamp,omitempty"`
}

// ExhibitFilter holds the query parameters of GET /api/v1/exhibits.
type ExhibitFilter struct {
	Category   recommend.Category `validate:"omitempty,max=64"`
	Tag        string             `validate:"omitempty,max=64"`
	Accessible *bool
	Limit      int `validate:"gte=1,lte=500"`
	Offset     int `validate:"gte=0"`
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("request body is empty")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// getIntParam returns an integer query parameter, or defaultValue when it
// is missing or malformed.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getBoolParam returns nil when the parameter is absent or not a boolean.
func getBoolParam(r *http.Request, key string) *bool {
	value := r.URL.Query().Get(key)
	if value == "" {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &b
}

func parseExhibitFilter(r *http.Request) ExhibitFilter {
	q := r.URL.Query()
	return ExhibitFilter{
		Category:   recommend.Category(strings.ToLower(strings.TrimSpace(q.Get("category")))),
		Tag:        strings.ToLower(strings.TrimSpace(q.Get("tag"))),
		Accessible: getBoolParam(r, "accessible"),
		Limit:      getIntParam(r, "limit", 100),
		Offset:     getIntParam(r, "offset", 0),
	}
}

// matches reports whether e passes every set filter.
//
//nolint:gocritic // hugeParam: filter is read-only
func (f ExhibitFilter) matches(e *recommend.ExhibitRecord) bool {
	if f.Category != "" && !strings.EqualFold(string(e.Category), string(f.Category)) {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	if f.Accessible != nil && e.Accessible != *f.Accessible {
		return false
	}
	return true
}
