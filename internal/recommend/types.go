// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"time"
)

// Location is a point on the museum floor plan.
// Coordinates use the same arbitrary units as the walking speed.
type Location struct {
	X     float64 `json:"x" validate:"gte=0"`
	Y     float64 `json:"y" validate:"gte=0"`
	Floor string  `json:"floor" validate:"required,max=32"`
}

// Entrance is the default tour starting point.
var Entrance = Location{X: 0, Y: 0, Floor: "ground"}

// ExhibitRecord is one catalog item with the metadata used for scoring.
type ExhibitRecord struct {
	// ID uniquely identifies the exhibit within a catalog.
	ID string `json:"id" validate:"required,max=128"`

	// Name is the display name.
	Name string `json:"name" validate:"required,max=256"`

	// Description is free text shown to visitors.
	Description string `json:"description,omitempty" validate:"max=4096"`

	// Category groups related exhibits (e.g. "astronomy").
	Category Category `json:"category" validate:"required,max=64"`

	// Tags are the content keywords matched against visitor interests.
	Tags []string `json:"tags" validate:"required,min=1,max=64,dive,required,max=64"`

	// AgeGroup is the audience the exhibit is designed for.
	AgeGroup AgeGroup `json:"age_group" validate:"required,oneof=kids teens adults seniors"`

	// Difficulty is the conceptual level of the content.
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`

	// InteractionType is how visitors engage with the exhibit.
	InteractionType InteractionType `json:"interaction_type" validate:"required,oneof=hands-on visual audio digital"`

	// DurationMinutes is the typical visit length. Must be positive.
	DurationMinutes int `json:"duration_minutes" validate:"gt=0,lte=600"`

	// Popularity is a normalized popularity score in [0, 1].
	Popularity float64 `json:"popularity" validate:"gte=0,lte=1"`

	// Location is where the exhibit sits on the floor plan.
	Location Location `json:"location"`

	// Accessible reports step-free/wheelchair access.
	Accessible bool `json:"accessible"`

	// CrowdLevel is the usual visitor density around the exhibit.
	CrowdLevel CrowdLevel `json:"crowd_level,omitempty" validate:"omitempty,oneof=low medium high"`
}

// HasTag reports whether the exhibit carries the given (lower-case) tag.
//
//nolint:gocritic // hugeParam: value receiver keeps records immutable
func (e ExhibitRecord) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if normalizeTerm(t) == tag {
			return true
		}
	}
	return false
}

// UserSelections is the raw visitor input for one analysis request.
type UserSelections struct {
	AgeGroup    AgeGroup  `json:"age_group" validate:"required,oneof=kids teens adults seniors"`
	GroupType   GroupType `json:"group_type" validate:"required,oneof=individual family school tourist"`
	HasChildren bool      `json:"children"`
	TimeSlot    TimeSlot  `json:"time_slot" validate:"required,oneof=morning afternoon full-day"`

	Interests           []string   `json:"interests,omitempty" validate:"max=32,dive,required,max=64"`
	PreferredCategories []Category `json:"preferred_categories,omitempty" validate:"max=32,dive,required,max=64"`

	// Optional refinements.
	LearningStyle      LearningStyle `json:"learning_style,omitempty" validate:"omitempty,oneof=visual hands-on interactive passive"`
	EnergyLevel        Level         `json:"energy_level,omitempty" validate:"omitempty,oneof=low medium high"`
	CrowdTolerance     Level         `json:"crowd_tolerance,omitempty" validate:"omitempty,oneof=low medium high"`
	AccessibilityNeeds []string      `json:"accessibility_needs,omitempty" validate:"max=16,dive,required,max=64"`
}

// PreferenceWeights is the per-dimension preference vector of a profile.
// Every value lies in [0, 1].
type PreferenceWeights struct {
	Interests      map[string]float64   `json:"interests"`
	Categories     map[Category]float64 `json:"categories"`
	Energy         float64              `json:"energy"`
	CrowdTolerance float64              `json:"crowd_tolerance"`
}

// UserProfile is the derived visitor model consumed by the downstream stages.
type UserProfile struct {
	ID         string            `json:"id"`
	Selections UserSelections    `json:"selections"`
	Weights    PreferenceWeights `json:"weights"`

	// ExplicitInterests are the normalized interests the visitor typed in.
	ExplicitInterests []string `json:"explicit_interests"`

	LearningStyle LearningStyle `json:"learning_style"`
	Pace          Pace          `json:"pace"`

	// WalkingSpeedFactor scales the base walking speed for this group.
	WalkingSpeedFactor float64 `json:"walking_speed_factor"`

	// DurationScale shrinks (or stretches) the preferred exhibit length window.
	DurationScale float64 `json:"duration_scale"`

	// RestIntervalMinutes is the visit time after which a rest is planned. Zero disables rests.
	RestIntervalMinutes int `json:"rest_interval_minutes,omitempty"`

	// NeedsStepFree requests accessible exhibits only.
	NeedsStepFree bool `json:"needs_step_free"`

	Reasons []string `json:"reasons,omitempty"`
}

// SubScores holds the per-dimension match scores, each in [0, 1].
type SubScores struct {
	Interest      float64 `json:"interest"`
	Category      float64 `json:"category"`
	Age           float64 `json:"age"`
	Duration      float64 `json:"duration"`
	Popularity    float64 `json:"popularity"`
	LearningStyle float64 `json:"learning_style"`
	Energy        float64 `json:"energy"`
	Crowd         float64 `json:"crowd"`
	Accessibility float64 `json:"accessibility"`
}

// ScoredCandidate is an exhibit paired with its match score against a profile.
type ScoredCandidate struct {
	Exhibit   *ExhibitRecord `json:"-"`
	Score     float64        `json:"score"`
	SubScores SubScores      `json:"sub_scores"`
	// Order is the exhibit's catalog insertion index, used as the final tie-breaker.
	Order int `json:"-"`
}

// InteractionEvent is a single feedback signal from a visitor.
type InteractionEvent struct {
	ExhibitID string       `json:"exhibit_id" validate:"required,max=128"`
	Kind      FeedbackKind `json:"kind" validate:"required,oneof=viewed liked skipped"`
	Timestamp time.Time    `json:"timestamp" validate:"required"`
}

// Recommendation is one ranked suggestion.
type Recommendation struct {
	Rank      int       `json:"rank"`
	ExhibitID string    `json:"exhibit_id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Score     float64   `json:"score"`
	Reason    string    `json:"reason"`
	SubScores SubScores `json:"sub_scores"`

	exhibit *ExhibitRecord
}

// NewRecommendation builds a recommendation bound to its catalog record.
func NewRecommendation(rank int, exhibit *ExhibitRecord, score float64, reason string, sub SubScores) Recommendation {
	return Recommendation{
		Rank:      rank,
		ExhibitID: exhibit.ID,
		Name:      exhibit.Name,
		Category:  exhibit.Category,
		Score:     score,
		Reason:    reason,
		SubScores: sub,
		exhibit:   exhibit,
	}
}

// Exhibit returns the catalog record behind the recommendation, or nil
// for values that were decoded rather than produced by the engine.
//
//nolint:gocritic // hugeParam: value receiver keeps recommendations immutable
func (r Recommendation) Exhibit() *ExhibitRecord {
	return r.exhibit
}

// TourStop is one ordered visit in a tour.
type TourStop struct {
	Sequence         int      `json:"sequence"`
	ExhibitID        string   `json:"exhibit_id"`
	Name             string   `json:"name"`
	Location         Location `json:"location"`
	ArrivalMinute    float64  `json:"arrival_minute"`
	TravelMinutes    float64  `json:"travel_minutes"`
	VisitMinutes     int      `json:"visit_minutes"`
	DistanceFromPrev float64  `json:"distance_from_prev"`
	Score            float64  `json:"score"`
}

// RestStop is a planned break after the stop with the given sequence index.
type RestStop struct {
	AfterSequence int    `json:"after_sequence"`
	Minutes       int    `json:"minutes"`
	Reason        string `json:"reason"`
}

// Tour is an ordered, time-bounded sequence of exhibit visits.
type Tour struct {
	Stops            []TourStop `json:"stops"`
	RestStops        []RestStop `json:"rest_stops,omitempty"`
	TotalMinutes     float64    `json:"total_minutes"`
	TotalDistance    float64    `json:"total_distance"`
	BudgetMinutes    int        `json:"budget_minutes"`
	BudgetInfeasible bool       `json:"budget_infeasible"`
	Fitness          float64    `json:"fitness"`
	Generations      int        `json:"generations"`
}

// AnalysisResult is the full response bundle of one analysis.
type AnalysisResult struct {
	Profile         *UserProfile     `json:"profile"`
	Recommendations []Recommendation `json:"recommendations"`
	Tour            Tour             `json:"tour"`
	Confidence      float64          `json:"confidence"`

	// DroppedEvents counts interaction events ignored because they referenced unknown exhibits.
	DroppedEvents int `json:"dropped_events,omitempty"`
}

// Options are per-call overrides of the engine configuration.
// Nil pointers and zero values fall back to the engine defaults.
type Options struct {
	TopK              int       `json:"top_k,omitempty" validate:"gte=0,lte=50"`
	DiversityFactor   *float64  `json:"diversity_factor,omitempty" validate:"omitempty,gte=0,lte=1"`
	TimeBudgetMinutes int       `json:"time_budget_minutes,omitempty" validate:"gte=0,lte=1440"`
	Seed              *int64    `json:"seed,omitempty"`
	Start             *Location `json:"start,omitempty"`
}

// Status is the read-only introspection of an engine.
type Status struct {
	Initialized    bool      `json:"initialized"`
	ExhibitCount   int       `json:"exhibit_count"`
	CatalogVersion string    `json:"catalog_version,omitempty"`
	InitializedAt  time.Time `json:"initialized_at,omitempty"`
}
