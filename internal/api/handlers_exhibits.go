// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

// ExhibitListResponse is the data of GET /api/v1/exhibits.
type ExhibitListResponse struct {
	Exhibits       []recommend.ExhibitRecord `json:"exhibits"`
	Total          int                       `json:"total"`
	Count          int                       `json:"count"`
	Limit          int                       `json:"limit"`
	Offset         int                       `json:"offset"`
	HasMore        bool                      `json:"has_more"`
	Categories     []recommend.Category      `json:"categories"`
	CatalogVersion string                    `json:"catalog_version"`
}

// ListExhibits handles GET /api/v1/exhibits.
//
// Query parameters: category, tag, accessible (bool), limit (1-500,
// default 100), offset. Exhibits keep catalog order.
func (h *Handler) ListExhibits(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	filter := parseExhibitFilter(r)
	if verr := validation.ValidateStruct(&filter); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	cat := h.engine.Catalog()
	if cat == nil {
		respondDomainError(w, r, recommend.ErrNotInitialized)
		return
	}

	matched := make([]recommend.ExhibitRecord, 0, cat.Len())
	for _, rec := range cat.Records() {
		if filter.matches(&rec) {
			matched = append(matched, rec)
		}
	}

	page := []recommend.ExhibitRecord{}
	if filter.Offset < len(matched) {
		end := min(filter.Offset+filter.Limit, len(matched))
		page = matched[filter.Offset:end]
	}

	respondData(w, r, http.StatusOK, ExhibitListResponse{
		Exhibits:       page,
		Total:          len(matched),
		Count:          len(page),
		Limit:          filter.Limit,
		Offset:         filter.Offset,
		HasMore:        filter.Offset+len(page) < len(matched),
		Categories:     cat.Categories(),
		CatalogVersion: cat.Version(),
	}, start)
}

// GetExhibit handles GET /api/v1/exhibits/{id}.
func (h *Handler) GetExhibit(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	id := chi.URLParam(r, "id")

	cat := h.engine.Catalog()
	if cat == nil {
		respondDomainError(w, r, recommend.ErrNotInitialized)
		return
	}

	rec, ok := cat.Get(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Exhibit not found", nil)
		return
	}
	respondData(w, r, http.StatusOK, rec, start)
}
