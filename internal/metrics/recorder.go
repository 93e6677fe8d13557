// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package metrics

import (
	"github.com/tomtom215/curator/internal/recommend"
)

// Recorder turns engine events into Prometheus observations. Events it does
// not know are ignored, so it composes with other recorders via recommend.Multi.
type Recorder struct{}

var _ recommend.Recorder = Recorder{}

// NewRecorder returns an engine Recorder backed by the package metrics.
func NewRecorder() Recorder {
	return Recorder{}
}

// stageFields maps analysis.completed fields to stage labels.
var stageFields = []struct {
	field string
	stage string
}{
	{"profile_seconds", "profile"},
	{"match_seconds", "match"},
	{"rank_seconds", "rank"},
	{"tour_seconds", "tour"},
}

// Record implements recommend.Recorder.
//
//nolint:gocritic // hugeParam: Event is passed by value per interface
func (Recorder) Record(ev recommend.Event) {
	switch ev.Name {
	case "analysis.completed":
		for _, s := range stageFields {
			if v, ok := number(ev.Fields[s.field]); ok {
				AnalysisStageDuration.WithLabelValues(s.stage).Observe(v)
			}
		}
		if v, ok := number(ev.Fields["recommendations"]); ok {
			RecommendationsReturned.Observe(v)
		}
		if v, ok := number(ev.Fields["confidence"]); ok {
			RecommendationConfidence.Observe(v)
		}
	case "catalog.loaded":
		if v, ok := number(ev.Fields["exhibits"]); ok {
			RecordCatalogLoad(int(v))
		}
	case "tour.optimized":
		if v, ok := number(ev.Fields["stops"]); ok {
			TourStops.Observe(v)
		}
		if v, ok := number(ev.Fields["generations"]); ok {
			TourGenerations.Observe(v)
		}
	case "tour.budget_infeasible":
		TourBudgetInfeasible.Inc()
	case "tour.interrupted":
		TourInterrupted.Inc()
	case "matching.truncated":
		MatchingTruncated.Inc()
	case "feedback.dropped":
		reason, _ := ev.Fields["reason"].(string)
		if reason == "" {
			reason = "unknown"
		}
		FeedbackEventsDropped.WithLabelValues(reason).Inc()
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}
