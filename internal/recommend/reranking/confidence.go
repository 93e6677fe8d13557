// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"github.com/tomtom215/curator/internal/recommend"
)

// Confidence model constants.
const (
	// confidenceFloor is the score below which a top pick earns no confidence.
	// It doubles as the stand-in runner-up score when nothing was left unselected.
	confidenceFloor = 0.3

	// separationSpan is the top-to-runner-up gap that counts as fully separated.
	separationSpan = 0.2
)

// Confidence summarizes how trustworthy a recommendation set is:
//
//	strength   = clamp((top - 0.3) / 0.7)
//	separation = clamp((top - next) / 0.2)
//	coverage   = min(1, pool / k)
//	confidence = strength * (0.5 + 0.5*separation) * coverage
//
// top is the best selected score, next the best unselected score (0.3 when
// there is none), pool the number of eligible candidates and k the requested
// size. An empty selection has zero confidence.
func Confidence(top float64, next *float64, pool, k int) float64 {
	if pool <= 0 || k <= 0 {
		return 0
	}

	strength := recommend.Clamp01((top - confidenceFloor) / (1 - confidenceFloor))

	runnerUp := confidenceFloor
	if next != nil {
		runnerUp = *next
	}
	separation := recommend.Clamp01((top - runnerUp) / separationSpan)

	coverage := float64(pool) / float64(k)
	if coverage > 1 {
		coverage = 1
	}

	return recommend.Clamp01(strength * (0.5 + 0.5*separation) * coverage)
}
