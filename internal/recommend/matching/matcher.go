// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package matching scores every catalog exhibit against a visitor profile.
//
// The score is a weighted combination of independent sub-scores:
//
//	score = w_interest * jaccard_w(tags, interests) +
//	        w_category * category_weight +
//	        w_age * age_fit + w_duration * duration_fit +
//	        w_popularity * popularity + w_learning * style_affinity +
//	        w_energy * energy_fit + w_crowd * crowd_fit +
//	        w_access * accessibility
//
// Every sub-score lies in [0, 1] and the weights are normalized, so the
// combined score does too.
package matching

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/curator/internal/recommend"
)

// batchSize is the number of exhibits scored between context checks.
const batchSize = 256

// neutralInterest is the interest score used when the visitor named no interests.
const neutralInterest = 0.5

// Matcher scores catalogs against profiles. It is stateless and safe for
// concurrent use.
type Matcher struct {
	weights  recommend.MatchingWeights
	recorder recommend.Recorder
}

// NewMatcher creates a matcher. Weights are normalized; they need not sum to 1.
//
//nolint:gocritic // hugeParam: weights are copied once at construction
func NewMatcher(weights recommend.MatchingWeights, rec recommend.Recorder) *Matcher {
	return &Matcher{
		weights:  weights.Normalize(),
		recorder: recommend.OrNop(rec),
	}
}

// Weights returns the normalized weights in use.
func (m *Matcher) Weights() recommend.MatchingWeights {
	return m.weights
}

// Match scores every exhibit in cat and returns them ranked by score,
// then popularity, then catalog order.
//
// An empty catalog yields an empty slice and recommend.ErrEmptyCatalog.
// If ctx is canceled mid-way, the exhibits scored so far are returned
// ranked and a matching.truncated event is recorded.
func (m *Matcher) Match(ctx context.Context, prof *recommend.UserProfile, cat *recommend.Catalog) ([]recommend.ScoredCandidate, error) {
	if prof == nil {
		return nil, fmt.Errorf("%w: profile is required", recommend.ErrInvalidInput)
	}
	n := cat.Len()
	if n == 0 {
		return []recommend.ScoredCandidate{}, recommend.ErrEmptyCatalog
	}

	out := make([]recommend.ScoredCandidate, 0, n)
	for i := 0; i < n; i++ {
		if i%batchSize == 0 {
			if err := ctx.Err(); err != nil {
				m.recorder.Record(recommend.Event{
					Name:     "matching.truncated",
					Severity: recommend.SeverityWarn,
					Fields:   map[string]any{"scored": i, "total": n, "reason": err.Error()},
				})
				break
			}
		}
		ex := cat.At(i)
		score, sub := m.Score(prof, ex)
		out = append(out, recommend.ScoredCandidate{
			Exhibit:   ex,
			Score:     score,
			SubScores: sub,
			Order:     i,
		})
	}

	Rank(out)
	return out, nil
}

// Rank sorts candidates by score desc, popularity desc, catalog order asc.
func Rank(c []recommend.ScoredCandidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].Score != c[j].Score {
			return c[i].Score > c[j].Score
		}
		if c[i].Exhibit.Popularity != c[j].Exhibit.Popularity {
			return c[i].Exhibit.Popularity > c[j].Exhibit.Popularity
		}
		return c[i].Order < c[j].Order
	})
}

// Score returns the combined score and its sub-scores for one exhibit.
func (m *Matcher) Score(prof *recommend.UserProfile, ex *recommend.ExhibitRecord) (float64, recommend.SubScores) {
	slot := recommend.Slots[prof.Selections.TimeSlot]

	sub := recommend.SubScores{
		Interest:      interestScore(prof, ex),
		Category:      categoryScore(prof, ex),
		Age:           ageScore(prof.Selections.AgeGroup, ex.AgeGroup),
		Duration:      durationScore(ex.DurationMinutes, slot, prof.DurationScale),
		Popularity:    recommend.Clamp01(ex.Popularity),
		LearningStyle: learningScore(prof.LearningStyle, ex.InteractionType),
		Energy:        energyScore(prof.Weights.Energy, ex),
		Crowd:         crowdScore(prof.Weights.CrowdTolerance, ex.CrowdLevel),
		Accessibility: accessibilityScore(prof.NeedsStepFree, ex.Accessible),
	}

	return recommend.Clamp01(m.weights.Combine(sub)), sub
}

// interestScore is a weighted Jaccard: the summed profile weight of the
// exhibit's tags over the size of tags ∪ explicit interests.
func interestScore(prof *recommend.UserProfile, ex *recommend.ExhibitRecord) float64 {
	if len(prof.ExplicitInterests) == 0 {
		return neutralInterest
	}

	union := len(prof.ExplicitInterests)
	var sum float64
	for _, tag := range ex.Tags {
		sum += prof.Weights.Interests[tag]
		if !contains(prof.ExplicitInterests, tag) {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return recommend.Clamp01(sum / float64(union))
}

func categoryScore(prof *recommend.UserProfile, ex *recommend.ExhibitRecord) float64 {
	if w, ok := prof.Weights.Categories[ex.Category]; ok {
		return recommend.Clamp01(w)
	}
	return recommend.CategoryWeightBaseline
}

func ageScore(visitor, target recommend.AgeGroup) float64 {
	a, okA := recommend.AgeOrdinal[visitor]
	b, okB := recommend.AgeOrdinal[target]
	if !okA || !okB {
		return 0
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return recommend.AgeDistanceScore[d]
}

// durationScore is a triangle over [0, window] peaking at the midpoint.
func durationScore(minutes int, slot recommend.SlotProfile, scale float64) float64 {
	if minutes <= 0 || (slot.BudgetMinutes > 0 && minutes > slot.BudgetMinutes) {
		return 0
	}
	if scale <= 0 {
		scale = 1
	}
	window := slot.WindowMinutes * scale
	if window <= 0 {
		return 0
	}
	mid := window / 2
	return recommend.Clamp01(1 - math.Abs(float64(minutes)-mid)/mid)
}

func learningScore(style recommend.LearningStyle, it recommend.InteractionType) float64 {
	if v, ok := recommend.LearningAffinity[style][it]; ok {
		return v
	}
	return 0.5
}

func energyScore(energy float64, ex *recommend.ExhibitRecord) float64 {
	intensity := 0.6*recommend.DifficultyIntensity[ex.Difficulty] + 0.4*recommend.InteractionIntensity[ex.InteractionType]
	return recommend.Clamp01(1 - math.Abs(energy-intensity))
}

func crowdScore(tolerance float64, level recommend.CrowdLevel) float64 {
	v, ok := recommend.LevelValue[level]
	if !ok {
		v = recommend.LevelValue[recommend.LevelMedium]
	}
	if v <= tolerance {
		return 1
	}
	return recommend.Clamp01(1 - (v - tolerance))
}

func accessibilityScore(needsStepFree, accessible bool) float64 {
	if needsStepFree && !accessible {
		return 0
	}
	return 1
}

func contains(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}
