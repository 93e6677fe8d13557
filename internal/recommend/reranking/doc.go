// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package reranking turns ranked match candidates into the final
// recommendation set.
//
// # Pipeline
//
//	Matching -> Feedback adjustment -> Category diversity -> Confidence
//	(scores)    (liked/skipped/viewed)  (greedy, capped)     (strength x separation x coverage)
//
// # Feedback
//
// Interaction events are weighted by recency relative to the newest event,
// with a configurable half-life. Liked categories are boosted, skipped
// exhibits decay and are removed after repeated skips, and viewed exhibits
// lose a little novelty. Events for unknown exhibits are dropped and
// reported through the recorder.
//
// # Diversity
//
// Diversifier is a greedy reranker in the spirit of Maximal Marginal
// Relevance, with category equality standing in for item similarity:
// after each pick, remaining exhibits of the picked category are penalized
// by the diversity factor.
//
// Reference:
// Carbonell, J., & Goldstein, J. (1998). "The Use of MMR, Diversity-Based
// Reranking for Reordering Documents and Producing Summaries." SIGIR 1998.
//
// # Thread Safety
//
// Recommender and Diversifier hold only configuration and are safe for
// concurrent use.
package reranking
