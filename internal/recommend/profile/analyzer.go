// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package profile turns raw visitor selections into a weighted UserProfile.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

// Family groups with children get at least this much energy, which pulls
// them toward interactive exhibits.
const familyEnergyFloor = 0.65

// familyDurationScale shrinks the preferred exhibit length for families with children.
const familyDurationScale = 0.8

// familyRestInterval applies when children are present and the age table has no interval.
const familyRestInterval = 60

// Pace thresholds on the combined walking factor.
const (
	slowPaceBelow = 0.75
	fastPaceAbove = 1.05
)

// Analyzer builds visitor profiles. It is stateless and safe for concurrent use.
type Analyzer struct {
	recorder recommend.Recorder
}

// NewAnalyzer creates an analyzer reporting through rec (nil discards events).
func NewAnalyzer(rec recommend.Recorder) *Analyzer {
	return &Analyzer{recorder: recommend.OrNop(rec)}
}

// Analyze derives a profile from sel against the given catalog.
// The catalog only informs interest weighting; an empty or nil catalog is allowed.
func (a *Analyzer) Analyze(sel *recommend.UserSelections, cat *recommend.Catalog) (*recommend.UserProfile, error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selections are required", recommend.ErrInvalidInput)
	}

	canon := sel.Canonicalize()
	if verr := validation.ValidateStruct(&canon); verr != nil {
		return nil, fmt.Errorf("%w: %w", recommend.ErrInvalidInput, verr)
	}

	slot := recommend.Slots[canon.TimeSlot]
	family := canon.GroupType == recommend.GroupFamily && canon.HasChildren

	prof := &recommend.UserProfile{
		Selections:        canon,
		ExplicitInterests: canon.Interests,
		DurationScale:     1,
	}

	prof.Weights = recommend.PreferenceWeights{
		Interests:      interestWeights(canon.Interests, cat),
		Categories:     categoryWeights(canon, cat),
		Energy:         energy(canon, slot, family),
		CrowdTolerance: crowdTolerance(canon, slot),
	}

	var styleSource string
	prof.LearningStyle, styleSource = learningStyle(canon)

	walking := recommend.WalkingFactorByAge[canon.AgeGroup] * recommend.WalkingFactorByGroup[canon.GroupType]
	prof.WalkingSpeedFactor = recommend.Round(walking, 4)
	prof.Pace = pace(walking)

	prof.RestIntervalMinutes = recommend.RestIntervalByAge[canon.AgeGroup]
	if family {
		prof.DurationScale = familyDurationScale
		if prof.RestIntervalMinutes == 0 {
			prof.RestIntervalMinutes = familyRestInterval
		}
	}

	for _, need := range canon.AccessibilityNeeds {
		if _, ok := recommend.StepFreeNeeds[need]; ok {
			prof.NeedsStepFree = true
			break
		}
	}

	prof.Reasons = reasons(prof, styleSource, family)

	key, err := json.Marshal(canon)
	if err != nil {
		return nil, fmt.Errorf("encode selections: %w", err)
	}
	prof.ID = recommend.StableID("profile:" + string(key))

	a.recorder.Record(recommend.Event{
		Name:     "profile.analyzed",
		Severity: recommend.SeverityDebug,
		Fields: map[string]any{
			"profile_id":     prof.ID,
			"interests":      len(prof.Weights.Interests),
			"learning_style": string(prof.LearningStyle),
			"energy":         recommend.Round(prof.Weights.Energy, 3),
		},
	})

	return prof, nil
}

// interestWeights expands explicit interests with related topics and weights
// every term by how well the catalog covers it.
func interestWeights(explicit []string, cat *recommend.Catalog) map[string]float64 {
	bases := make(map[string]float64, len(explicit)*4)
	for _, term := range explicit {
		bases[term] = recommend.InterestBaseExplicit
	}
	for _, term := range explicit {
		for _, rel := range recommend.RelatedInterests[term] {
			if _, ok := bases[rel]; !ok {
				bases[rel] = recommend.InterestBaseRelated
			}
		}
	}

	maxCount := 0
	for term := range bases {
		if n := cat.TagCount(term); n > maxCount {
			maxCount = n
		}
	}

	weights := make(map[string]float64, len(bases))
	for term, base := range bases {
		factor := 0.5
		if maxCount > 0 {
			factor = 0.5 + 0.5*float64(cat.TagCount(term))/float64(maxCount)
		}
		weights[term] = recommend.Clamp01(base * factor)
	}
	return weights
}

//nolint:gocritic // hugeParam: selections are read-only here
func categoryWeights(sel recommend.UserSelections, cat *recommend.Catalog) map[recommend.Category]float64 {
	weights := make(map[recommend.Category]float64)
	for _, c := range cat.Categories() {
		weights[c] = recommend.CategoryWeightBaseline
	}
	for _, term := range sel.Interests {
		for _, c := range recommend.InterestCategories[term] {
			if weights[c] < recommend.CategoryWeightImplied {
				weights[c] = recommend.CategoryWeightImplied
			}
		}
	}
	for _, c := range sel.PreferredCategories {
		weights[c] = recommend.CategoryWeightPreferred
	}
	return weights
}

//nolint:gocritic // hugeParam: selections are read-only here
func energy(sel recommend.UserSelections, slot recommend.SlotProfile, family bool) float64 {
	mult, ok := recommend.EnergyMultiplier[sel.EnergyLevel]
	if !ok {
		mult = 1
	}
	e := recommend.AgeStamina[sel.AgeGroup]*mult + slot.EnergyBonus
	if family && e < familyEnergyFloor {
		e = familyEnergyFloor
	}
	return recommend.Clamp01(e)
}

//nolint:gocritic // hugeParam: selections are read-only here
func crowdTolerance(sel recommend.UserSelections, slot recommend.SlotProfile) float64 {
	tol := slot.CrowdTolerance
	if v, ok := recommend.LevelValue[sel.CrowdTolerance]; ok {
		tol = (tol + v) / 2
	}
	return recommend.Clamp01(tol)
}

// learningStyle returns the resolved style and where it came from.
//
//nolint:gocritic // hugeParam: selections are read-only here
func learningStyle(sel recommend.UserSelections) (recommend.LearningStyle, string) {
	if sel.LearningStyle != "" {
		return sel.LearningStyle, "selected"
	}
	for _, entry := range recommend.LearningStyleKeywords {
		for _, kw := range entry.Keywords {
			for _, interest := range sel.Interests {
				if strings.Contains(interest, kw) {
					return entry.Style, "inferred from " + interest
				}
			}
		}
	}
	return recommend.StyleInteractive, "default"
}

func pace(walking float64) recommend.Pace {
	switch {
	case walking < slowPaceBelow:
		return recommend.PaceSlow
	case walking > fastPaceAbove:
		return recommend.PaceFast
	default:
		return recommend.PaceModerate
	}
}

func reasons(prof *recommend.UserProfile, styleSource string, family bool) []string {
	sel := prof.Selections
	out := make([]string, 0, 6)

	if len(sel.Interests) > 0 {
		out = append(out, "interests: "+strings.Join(sel.Interests, ", "))
	}
	if len(sel.PreferredCategories) > 0 {
		cats := make([]string, len(sel.PreferredCategories))
		for i, c := range sel.PreferredCategories {
			cats[i] = string(c)
		}
		sort.Strings(cats)
		out = append(out, "preferred categories: "+strings.Join(cats, ", "))
	}
	out = append(out, fmt.Sprintf("learning style %s (%s)", prof.LearningStyle, styleSource))
	out = append(out, fmt.Sprintf("%s pace for %s visiting as %s", prof.Pace, sel.AgeGroup, sel.GroupType))
	if family {
		out = append(out, "family with children: shorter, more interactive exhibits")
	}
	if prof.RestIntervalMinutes > 0 {
		out = append(out, fmt.Sprintf("rest every %d minutes", prof.RestIntervalMinutes))
	}
	if prof.NeedsStepFree {
		out = append(out, "step-free access required")
	}
	return out
}
