// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package reranking

import (
	"sort"

	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/recommend/matching"
)

// Result is the output of one recommendation pass.
type Result struct {
	Recommendations []recommend.Recommendation
	Confidence      float64
	// DroppedEvents counts history entries that referenced unknown exhibits
	// or carried an unknown kind.
	DroppedEvents int
	// Excluded lists exhibits removed by repeated skips, sorted.
	Excluded []string
}

// Recommender turns ranked match candidates into the final recommendation
// set. It is stateless and safe for concurrent use.
type Recommender struct {
	feedback recommend.FeedbackConfig
	recorder recommend.Recorder
}

// NewRecommender creates a recommender with the given feedback parameters.
//
//nolint:gocritic // hugeParam: config is copied once at construction
func NewRecommender(cfg recommend.FeedbackConfig, rec recommend.Recorder) *Recommender {
	return &Recommender{feedback: cfg, recorder: recommend.OrNop(rec)}
}

// Recommend applies interaction feedback, diversifies by category and
// returns at most topK recommendations with a confidence value.
// It never fails: an empty pool yields an empty set with zero confidence.
func (r *Recommender) Recommend(candidates []recommend.ScoredCandidate, history []recommend.InteractionEvent, topK int, diversityFactor float64) Result {
	res := Result{Recommendations: []recommend.Recommendation{}}

	byID := make(map[string]*recommend.ExhibitRecord, len(candidates))
	for i := range candidates {
		byID[candidates[i].Exhibit.ID] = candidates[i].Exhibit
	}

	signals := collectSignals(history, byID, r.feedback.HalfLife, r.recorder)
	res.DroppedEvents = signals.dropped

	pool := make([]recommend.ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		score, excluded := signals.adjust(&c, r.feedback)
		if excluded {
			res.Excluded = append(res.Excluded, c.Exhibit.ID)
			continue
		}
		c.Score = score
		pool = append(pool, c)
	}
	sort.Strings(res.Excluded)
	matching.Rank(pool)

	if len(pool) == 0 || topK <= 0 {
		return res
	}

	div := NewDiversifier(diversityFactor)
	picks, rest := div.Rerank(pool, topK)

	// Greedy order can place a capped category's exhibit below a lower
	// score; rank the chosen set by its final scores.
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].Score > picks[j].Score })

	res.Recommendations = make([]recommend.Recommendation, len(picks))
	for i := range picks {
		c := picks[i].Candidate
		liked := signals.likedCategory[c.Exhibit.Category] > 0
		res.Recommendations[i] = recommend.NewRecommendation(
			i+1,
			c.Exhibit,
			recommend.Round(picks[i].Score, 6),
			Reason(c.SubScores, liked),
			c.SubScores,
		)
	}

	var next *float64
	if len(rest) > 0 {
		best := rest[0].Score
		next = &best
	}
	res.Confidence = recommend.Round(Confidence(picks[0].Score, next, len(pool), topK), 6)

	r.recorder.Record(recommend.Event{
		Name:     "recommendations.ranked",
		Severity: recommend.SeverityDebug,
		Fields: map[string]any{
			"count":      len(res.Recommendations),
			"pool":       len(pool),
			"excluded":   len(res.Excluded),
			"dropped":    res.DroppedEvents,
			"confidence": res.Confidence,
			"reranker":   div.Name(),
		},
	})

	return res
}
