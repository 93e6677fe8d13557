// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"math"
	"time"

	"github.com/tomtom215/curator/internal/recommend"
)

// feedbackSignals aggregates an interaction history.
type feedbackSignals struct {
	// likedCategory is the recency-weighted like mass per category.
	likedCategory map[recommend.Category]float64
	liked         map[string]bool
	viewed        map[string]bool
	skipWeight    map[string]float64
	skipCount     map[string]int
	dropped       int
}

// collectSignals weights every usable event by recency. Age is measured from
// the newest event, not the wall clock, so the same history always yields the
// same weights:
//
//	w(e) = 0.5 ^ ((newest - t(e)) / halfLife)
//
// Events for exhibits not in byID, or with an unknown kind, are dropped.
func collectSignals(history []recommend.InteractionEvent, byID map[string]*recommend.ExhibitRecord, halfLife time.Duration, rec recommend.Recorder) feedbackSignals {
	s := feedbackSignals{
		likedCategory: make(map[recommend.Category]float64),
		liked:         make(map[string]bool),
		viewed:        make(map[string]bool),
		skipWeight:    make(map[string]float64),
		skipCount:     make(map[string]int),
	}

	usable := make([]recommend.InteractionEvent, 0, len(history))
	var newest time.Time
	for _, ev := range history {
		_, known := byID[ev.ExhibitID]
		switch {
		case !known:
			s.dropped++
			rec.Record(recommend.Event{
				Name:     "feedback.dropped",
				Severity: recommend.SeverityWarn,
				Fields:   map[string]any{"exhibit_id": ev.ExhibitID, "reason": "unknown exhibit"},
			})
			continue
		case ev.Kind != recommend.FeedbackViewed && ev.Kind != recommend.FeedbackLiked && ev.Kind != recommend.FeedbackSkipped:
			s.dropped++
			rec.Record(recommend.Event{
				Name:     "feedback.dropped",
				Severity: recommend.SeverityWarn,
				Fields:   map[string]any{"exhibit_id": ev.ExhibitID, "reason": "unknown kind", "kind": string(ev.Kind)},
			})
			continue
		}
		if ev.Timestamp.After(newest) {
			newest = ev.Timestamp
		}
		usable = append(usable, ev)
	}

	for _, ev := range usable {
		w := recencyWeight(newest.Sub(ev.Timestamp), halfLife)
		switch ev.Kind {
		case recommend.FeedbackLiked:
			s.liked[ev.ExhibitID] = true
			s.likedCategory[byID[ev.ExhibitID].Category] += w
		case recommend.FeedbackSkipped:
			s.skipWeight[ev.ExhibitID] += w
			s.skipCount[ev.ExhibitID]++
		case recommend.FeedbackViewed:
			s.viewed[ev.ExhibitID] = true
		}
	}
	return s
}

func recencyWeight(age, halfLife time.Duration) float64 {
	if age <= 0 || halfLife <= 0 {
		return 1
	}
	return math.Pow(0.5, float64(age)/float64(halfLife))
}

// adjust applies the feedback multipliers to one candidate score and reports
// whether the candidate is excluded outright.
//
//nolint:gocritic // hugeParam: config is read-only
func (s *feedbackSignals) adjust(c *recommend.ScoredCandidate, cfg recommend.FeedbackConfig) (float64, bool) {
	id := c.Exhibit.ID
	if s.skipCount[id] >= cfg.SkipExclusionCount {
		return 0, true
	}

	score := c.Score
	if mass := s.likedCategory[c.Exhibit.Category]; mass > 0 {
		score *= 1 + (cfg.LikeBoost-1)*math.Min(1, mass)
	}
	if w := s.skipWeight[id]; w > 0 {
		score *= math.Pow(cfg.SkipPenalty, w)
	}
	if s.viewed[id] && !s.liked[id] {
		score *= cfg.ViewedPenalty
	}
	return recommend.Clamp01(score), false
}
