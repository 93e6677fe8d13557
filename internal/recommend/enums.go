// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"strings"
)

// AgeGroup is the visitor (or target audience) age bracket.
type AgeGroup string

// Age groups, ordered youngest to oldest.
const (
	AgeKids    AgeGroup = "kids"
	AgeTeens   AgeGroup = "teens"
	AgeAdults  AgeGroup = "adults"
	AgeSeniors AgeGroup = "seniors"
)

// GroupType describes who the visitor is touring with.
type GroupType string

// Group types.
const (
	GroupIndividual GroupType = "individual"
	GroupFamily     GroupType = "family"
	GroupSchool     GroupType = "school"
	GroupTourist    GroupType = "tourist"
)

// TimeSlot is the part of the day the visit takes.
type TimeSlot string

// Time slots.
const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotFullDay   TimeSlot = "full-day"
)

// LearningStyle is how the visitor prefers to take in content.
type LearningStyle string

// Learning styles.
const (
	StyleVisual      LearningStyle = "visual"
	StyleHandsOn     LearningStyle = "hands-on"
	StyleInteractive LearningStyle = "interactive"
	StylePassive     LearningStyle = "passive"
)

// Difficulty is the conceptual level of an exhibit.
type Difficulty string

// Difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// InteractionType is the engagement mode of an exhibit.
type InteractionType string

// Interaction types.
const (
	InteractionHandsOn InteractionType = "hands-on"
	InteractionVisual  InteractionType = "visual"
	InteractionAudio   InteractionType = "audio"
	InteractionDigital InteractionType = "digital"
)

// Level is a three-step low/medium/high scale used for energy, crowd
// tolerance and exhibit crowd levels.
type Level string

// CrowdLevel is the usual visitor density around an exhibit.
type CrowdLevel = Level

// Levels.
const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// FeedbackKind is the type of an interaction event.
type FeedbackKind string

// Feedback kinds.
const (
	FeedbackViewed  FeedbackKind = "viewed"
	FeedbackLiked   FeedbackKind = "liked"
	FeedbackSkipped FeedbackKind = "skipped"
)

// Pace is the derived walking and dwelling pace of a visitor.
type Pace string

// Paces.
const (
	PaceSlow     Pace = "slow"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

// Category groups related exhibits. The set is open: catalogs may
// introduce new categories, which then score at the baseline weight.
type Category string

// Categories used by the bundled sample catalog.
const (
	CategoryPaleontology  Category = "paleontology"
	CategoryAstronomy     Category = "astronomy"
	CategoryMarineBiology Category = "marine-biology"
	CategoryChemistry     Category = "chemistry"
	CategoryEngineering   Category = "engineering"
	CategoryArt           Category = "art"
	CategoryPhysics       Category = "physics"
	CategoryHistory       Category = "history"
	CategoryBiology       Category = "biology"
	CategoryMathematics   Category = "mathematics"
)

var ageGroupAliases = map[string]AgeGroup{
	"kids": AgeKids, "kid": AgeKids, "child": AgeKids, "children": AgeKids,
	"teens": AgeTeens, "teen": AgeTeens, "teenager": AgeTeens, "teenagers": AgeTeens,
	"adults": AgeAdults, "adult": AgeAdults,
	"seniors": AgeSeniors, "senior": AgeSeniors, "elderly": AgeSeniors,
}

var groupTypeAliases = map[string]GroupType{
	"individual": GroupIndividual, "solo": GroupIndividual, "single": GroupIndividual,
	"family": GroupFamily, "families": GroupFamily,
	"school": GroupSchool, "class": GroupSchool, "students": GroupSchool,
	"tourist": GroupTourist, "tourists": GroupTourist,
}

var timeSlotAliases = map[string]TimeSlot{
	"morning": SlotMorning, "am": SlotMorning,
	"afternoon": SlotAfternoon, "pm": SlotAfternoon,
	"full-day": SlotFullDay, "fullday": SlotFullDay, "full_day": SlotFullDay, "all-day": SlotFullDay, "full day": SlotFullDay,
}

var learningStyleAliases = map[string]LearningStyle{
	"visual": StyleVisual,
	"hands-on": StyleHandsOn, "handson": StyleHandsOn, "hands_on": StyleHandsOn,
	"interactive": StyleInteractive,
	"passive": StylePassive,
}

// ParseAgeGroup resolves an age group name or alias.
func ParseAgeGroup(s string) (AgeGroup, bool) {
	g, ok := ageGroupAliases[normalizeTerm(s)]
	return g, ok
}

// ParseGroupType resolves a group type name or alias.
func ParseGroupType(s string) (GroupType, bool) {
	g, ok := groupTypeAliases[normalizeTerm(s)]
	return g, ok
}

// ParseTimeSlot resolves a time slot name or alias.
func ParseTimeSlot(s string) (TimeSlot, bool) {
	t, ok := timeSlotAliases[normalizeTerm(s)]
	return t, ok
}

// ParseLearningStyle resolves a learning style name or alias.
func ParseLearningStyle(s string) (LearningStyle, bool) {
	l, ok := learningStyleAliases[normalizeTerm(s)]
	return l, ok
}

// UnmarshalText accepts aliases. Unknown values are kept verbatim (lower-cased)
// so that validation reports them as a field error instead of a decode error.
func (g *AgeGroup) UnmarshalText(b []byte) error {
	if v, ok := ParseAgeGroup(string(b)); ok {
		*g = v
		return nil
	}
	*g = AgeGroup(normalizeTerm(string(b)))
	return nil
}

// UnmarshalText accepts aliases; see AgeGroup.UnmarshalText.
func (g *GroupType) UnmarshalText(b []byte) error {
	if v, ok := ParseGroupType(string(b)); ok {
		*g = v
		return nil
	}
	*g = GroupType(normalizeTerm(string(b)))
	return nil
}

// UnmarshalText accepts aliases; see AgeGroup.UnmarshalText.
func (t *TimeSlot) UnmarshalText(b []byte) error {
	if v, ok := ParseTimeSlot(string(b)); ok {
		*t = v
		return nil
	}
	*t = TimeSlot(normalizeTerm(string(b)))
	return nil
}

// UnmarshalText accepts aliases; see AgeGroup.UnmarshalText.
func (l *LearningStyle) UnmarshalText(b []byte) error {
	if v, ok := ParseLearningStyle(string(b)); ok {
		*l = v
		return nil
	}
	*l = LearningStyle(normalizeTerm(string(b)))
	return nil
}

// Canonicalize returns a copy of the selections with aliases resolved and
// free-text lists normalized (lower-cased, trimmed, de-duplicated, sorted).
//
//nolint:gocritic // hugeParam: selections are treated as an immutable value
func (s UserSelections) Canonicalize() UserSelections {
	out := s
	if v, ok := ParseAgeGroup(string(s.AgeGroup)); ok {
		out.AgeGroup = v
	}
	if v, ok := ParseGroupType(string(s.GroupType)); ok {
		out.GroupType = v
	}
	if v, ok := ParseTimeSlot(string(s.TimeSlot)); ok {
		out.TimeSlot = v
	}
	if v, ok := ParseLearningStyle(string(s.LearningStyle)); ok {
		out.LearningStyle = v
	}
	out.EnergyLevel = Level(normalizeTerm(string(s.EnergyLevel)))
	out.CrowdTolerance = Level(normalizeTerm(string(s.CrowdTolerance)))
	out.Interests = NormalizeTerms(s.Interests)
	out.AccessibilityNeeds = NormalizeTerms(s.AccessibilityNeeds)

	cats := make([]string, len(s.PreferredCategories))
	for i, c := range s.PreferredCategories {
		cats[i] = string(c)
	}
	cats = NormalizeTerms(cats)
	out.PreferredCategories = nil
	for _, c := range cats {
		out.PreferredCategories = append(out.PreferredCategories, Category(c))
	}
	return out
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
