// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package recommend holds the domain model shared by the exhibit
// recommendation and tour planning stages.
//
// # Architecture
//
// A single analysis runs four stages, each in its own subpackage:
//
//   - profile: raw visitor selections to a weighted UserProfile
//   - matching: profile and catalog to ranked ScoredCandidates
//   - reranking: feedback, category diversity and confidence
//   - tour: genetic search for a walkable, time-bounded visit order
//
// The engine package wires them together behind Initialize, Analyze and
// Status.
//
// # Design Principles
//
//   - Deterministic: identical inputs and seed produce identical outputs
//   - Pure: stages perform no I/O; observable events go through a Recorder
//   - Table driven: scoring constants live in tables.go keyed by enumerations
//
// # Usage
//
//	cat, err := recommend.NewCatalog(records)
//	if err != nil {
//	    return err
//	}
//	prof, err := profile.NewAnalyzer(rec).Analyze(&selections, cat)
//
// # Thread Safety
//
// Catalog and Config values are immutable after construction and may be
// shared between goroutines. Stages keep no state between calls.
package recommend
