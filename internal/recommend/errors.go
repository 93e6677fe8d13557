// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import "errors"

// Sentinel errors shared by the engine stages. Callers match them with errors.Is;
// stage errors wrap them with additional context.
var (
	// ErrInvalidInput reports missing or malformed selections. Fatal to the call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyCatalog reports that there is nothing to score. Not fatal:
	// downstream stages degrade to empty results with zero confidence.
	ErrEmptyCatalog = errors.New("empty catalog")

	// ErrNotInitialized is returned when analyzing before a catalog was loaded.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrInvalidCatalog reports a catalog record that failed validation.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
