// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the validator library in a thread-safe singleton and
// translates field errors into messages and the VALIDATION_ERROR response
// format used by the HTTP API.
//
// # Overview
//
//   - Singleton validator (initialized once, cached struct info)
//   - Field names reported by their JSON name (age_group, not AgeGroup)
//   - Custom "sessionid" tag for visitor session identifiers
//   - APIError conversion for handlers
//
// # Quick Start
//
//	if verr := validation.ValidateStruct(&selections); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// Catalog records, visitor selections, interaction events and analysis
// options all carry validate tags and pass through ValidateStruct at the
// boundary where they enter the system.
//
// # Error Message Translation
//
//	required   -> "age_group is required"
//	oneof=a b  -> "time_slot must be one of: morning afternoon full-day"
//	gt=0       -> "duration_minutes must be greater than 0"
//	max=64     -> "tags must have at most 64 items"
//	sessionid  -> "session_id must be 1-128 characters of letters, digits, '-' or '_'"
//
// # Thread Safety
//
// GetValidator, ValidateStruct and ValidateVar are safe for concurrent use.
package validation
