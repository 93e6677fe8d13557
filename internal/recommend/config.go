// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// DefaultSeed is used when Config.Seed is zero.
const DefaultSeed int64 = 42

// Config contains all configuration for the engine stages.
type Config struct {
	// Weights defines the relative contribution of each matching dimension.
	// Weights are normalized at runtime, so they don't need to sum to 1.0.
	Weights MatchingWeights `json:"weights"`

	// TopK is the default number of recommendations returned.
	TopK int `json:"top_k"`

	// DiversityFactor is the same-category penalty applied after each pick, in [0, 1].
	DiversityFactor float64 `json:"diversity_factor"`

	// Feedback contains interaction feedback parameters.
	Feedback FeedbackConfig `json:"feedback"`

	// Tour contains tour optimization parameters.
	Tour TourConfig `json:"tour"`

	// Seed is the random seed for deterministic behavior.
	// If zero, DefaultSeed is used.
	Seed int64 `json:"seed"`
}

// MatchingWeights defines the relative contribution of each matching dimension.
type MatchingWeights struct {
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

// matchingDimensions is the number of weighted dimensions.
const matchingDimensions = 9

// Normalize returns a copy with weights normalized to sum to 1.0.
// Negative weights count as zero.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w MatchingWeights) Normalize() MatchingWeights {
	pos := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	w = MatchingWeights{
		Interest:      pos(w.Interest),
		Category:      pos(w.Category),
		Age:           pos(w.Age),
		Duration:      pos(w.Duration),
		Popularity:    pos(w.Popularity),
		LearningStyle: pos(w.LearningStyle),
		Energy:        pos(w.Energy),
		Crowd:         pos(w.Crowd),
		Accessibility: pos(w.Accessibility),
	}

	sum := w.Interest + w.Category + w.Age + w.Duration + w.Popularity +
		w.LearningStyle + w.Energy + w.Crowd + w.Accessibility

	if sum == 0 {
		const equalWeight = 1.0 / matchingDimensions
		return MatchingWeights{
			Interest: equalWeight, Category: equalWeight, Age: equalWeight,
			Duration: equalWeight, Popularity: equalWeight, LearningStyle: equalWeight,
			Energy: equalWeight, Crowd: equalWeight, Accessibility: equalWeight,
		}
	}

	return MatchingWeights{
		Interest:      w.Interest / sum,
		Category:      w.Category / sum,
		Age:           w.Age / sum,
		Duration:      w.Duration / sum,
		Popularity:    w.Popularity / sum,
		LearningStyle: w.LearningStyle / sum,
		Energy:        w.Energy / sum,
		Crowd:         w.Crowd / sum,
		Accessibility: w.Accessibility / sum,
	}
}

// Combine returns the weighted sum of the sub-scores.
//
//nolint:gocritic // value receivers are intentional for immutable semantics
func (w MatchingWeights) Combine(s SubScores) float64 {
	return w.Interest*s.Interest +
		w.Category*s.Category +
		w.Age*s.Age +
		w.Duration*s.Duration +
		w.Popularity*s.Popularity +
		w.LearningStyle*s.LearningStyle +
		w.Energy*s.Energy +
		w.Crowd*s.Crowd +
		w.Accessibility*s.Accessibility
}

// ToMap returns the weights as a string-keyed map.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w MatchingWeights) ToMap() map[string]float64 {
	return map[string]float64{
		"interest":       w.Interest,
		"category":       w.Category,
		"age":            w.Age,
		"duration":       w.Duration,
		"popularity":     w.Popularity,
		"learning_style": w.LearningStyle,
		"energy":         w.Energy,
		"crowd":          w.Crowd,
		"accessibility":  w.Accessibility,
	}
}

// FeedbackConfig contains parameters for interaction feedback.
type FeedbackConfig struct {
	// HalfLife is the age at which an event counts half as much as the newest event.
	// Default: 30m.
	HalfLife time.Duration `json:"half_life"`

	// LikeBoost is the maximum multiplicative boost for a liked category.
	// Default: 1.2.
	LikeBoost float64 `json:"like_boost"`

	// SkipPenalty is the multiplier applied per (recency-weighted) skip.
	// Default: 0.7.
	SkipPenalty float64 `json:"skip_penalty"`

	// SkipExclusionCount is the number of skips that removes an exhibit.
	// Default: 2.
	SkipExclusionCount int `json:"skip_exclusion_count"`

	// ViewedPenalty is the novelty multiplier for already-viewed exhibits.
	// Default: 0.9.
	ViewedPenalty float64 `json:"viewed_penalty"`
}

// TourConfig contains parameters for the tour optimizer.
type TourConfig struct {
	// PopulationSize is the number of candidate tours per generation.
	// Default: 50.
	PopulationSize int `json:"population_size"`

	// Generations is the maximum number of generations.
	// Default: 100.
	Generations int `json:"generations"`

	// MutationRate is the per-offspring mutation probability.
	// Default: 0.1.
	MutationRate float64 `json:"mutation_rate"`

	// PlateauGenerations stops the search after this many generations without
	// improvement. Zero disables early exit.
	// Default: 25.
	PlateauGenerations int `json:"plateau_generations"`

	// WalkingSpeed is the base walking speed in floor-plan units per minute.
	// Default: 100.
	WalkingSpeed float64 `json:"walking_speed"`

	// FloorChangePenalty is the extra distance charged for changing floors.
	// Default: 50.
	FloorChangePenalty float64 `json:"floor_change_penalty"`

	// OvertimePenalty is the fitness penalty per minute over budget.
	// Default: 0.1.
	OvertimePenalty float64 `json:"overtime_penalty"`

	// DistancePenalty is the fitness penalty per unit walked.
	// Default: 0.001.
	DistancePenalty float64 `json:"distance_penalty"`

	// RestMinutes is the length of a planned rest.
	// Default: 15.
	RestMinutes int `json:"rest_minutes"`

	// Workers bounds parallel fitness evaluation.
	// Default: min(4, GOMAXPROCS).
	Workers int `json:"workers"`
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	workers := runtime.GOMAXPROCS(0)
	if workers > 4 {
		workers = 4
	}
	return &Config{
		Weights: MatchingWeights{
			Interest:      0.25,
			Category:      0.15,
			Age:           0.15,
			Duration:      0.10,
			Popularity:    0.10,
			LearningStyle: 0.10,
			Energy:        0.07,
			Crowd:         0.04,
			Accessibility: 0.04,
		},
		TopK:            5,
		DiversityFactor: 0.3,
		Feedback: FeedbackConfig{
			HalfLife:           30 * time.Minute,
			LikeBoost:          1.2,
			SkipPenalty:        0.7,
			SkipExclusionCount: 2,
			ViewedPenalty:      0.9,
		},
		Tour: TourConfig{
			PopulationSize:     50,
			Generations:        100,
			MutationRate:       0.1,
			PlateauGenerations: 25,
			WalkingSpeed:       100,
			FloorChangePenalty: 50,
			OvertimePenalty:    0.1,
			DistancePenalty:    0.001,
			RestMinutes:        15,
			Workers:            workers,
		},
		Seed: DefaultSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	for name, v := range c.Weights.ToMap() {
		if v < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, v)
		}
	}
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.DiversityFactor < 0 || c.DiversityFactor > 1 {
		return fmt.Errorf("diversity_factor must be in [0, 1], got %f", c.DiversityFactor)
	}

	if c.Feedback.HalfLife <= 0 {
		return fmt.Errorf("feedback.half_life must be positive, got %v", c.Feedback.HalfLife)
	}
	if c.Feedback.LikeBoost < 1 {
		return fmt.Errorf("feedback.like_boost must be >= 1, got %f", c.Feedback.LikeBoost)
	}
	if c.Feedback.SkipPenalty <= 0 || c.Feedback.SkipPenalty > 1 {
		return fmt.Errorf("feedback.skip_penalty must be in (0, 1], got %f", c.Feedback.SkipPenalty)
	}
	if c.Feedback.SkipExclusionCount < 1 {
		return fmt.Errorf("feedback.skip_exclusion_count must be positive, got %d", c.Feedback.SkipExclusionCount)
	}
	if c.Feedback.ViewedPenalty <= 0 || c.Feedback.ViewedPenalty > 1 {
		return fmt.Errorf("feedback.viewed_penalty must be in (0, 1], got %f", c.Feedback.ViewedPenalty)
	}

	return c.Tour.Validate()
}

// Validate checks the tour configuration for errors.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (t TourConfig) Validate() error {
	if t.PopulationSize < 2 {
		return fmt.Errorf("tour.population_size must be at least 2, got %d", t.PopulationSize)
	}
	if t.Generations < 1 {
		return fmt.Errorf("tour.generations must be positive, got %d", t.Generations)
	}
	if t.MutationRate < 0 || t.MutationRate > 1 {
		return fmt.Errorf("tour.mutation_rate must be in [0, 1], got %f", t.MutationRate)
	}
	if t.PlateauGenerations < 0 {
		return fmt.Errorf("tour.plateau_generations must be non-negative, got %d", t.PlateauGenerations)
	}
	if t.WalkingSpeed <= 0 {
		return fmt.Errorf("tour.walking_speed must be positive, got %f", t.WalkingSpeed)
	}
	if t.FloorChangePenalty < 0 {
		return fmt.Errorf("tour.floor_change_penalty must be non-negative, got %f", t.FloorChangePenalty)
	}
	if t.OvertimePenalty < 0 || t.DistancePenalty < 0 {
		return fmt.Errorf("tour penalties must be non-negative")
	}
	if t.RestMinutes < 0 {
		return fmt.Errorf("tour.rest_minutes must be non-negative, got %d", t.RestMinutes)
	}
	if t.Workers < 1 {
		return fmt.Errorf("tour.workers must be positive, got %d", t.Workers)
	}
	return nil
}

// EffectiveSeed returns Seed, or DefaultSeed when Seed is zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		Weights:         c.Weights,
		TopK:            c.TopK,
		DiversityFactor: c.DiversityFactor,
		Feedback:        c.Feedback,
		Tour:            c.Tour,
		Seed:            c.Seed,
	}
}

// WithOptions returns a copy of the configuration with per-call overrides applied.
func (c *Config) WithOptions(opts *Options) *Config {
	out := c.Clone()
	if opts == nil {
		return out
	}
	if opts.TopK > 0 {
		out.TopK = opts.TopK
	}
	if opts.DiversityFactor != nil {
		out.DiversityFactor = Clamp01(*opts.DiversityFactor)
	}
	if opts.Seed != nil {
		out.Seed = *opts.Seed
	}
	return out
}
