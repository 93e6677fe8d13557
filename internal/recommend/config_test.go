// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

import (
	"math"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("weights sum to approximately 1", func(t *testing.T) {
		sum := 0.0
		for _, v := range cfg.Weights.ToMap() {
			sum += v
		}
		if sum < 0.99 || sum > 1.01 {
			t.Errorf("weights sum = %f, want ~1.0", sum)
		}
	})

	t.Run("documented defaults", func(t *testing.T) {
		if cfg.TopK != 5 {
			t.Errorf("TopK = %d, want 5", cfg.TopK)
		}
		if cfg.DiversityFactor != 0.3 {
			t.Errorf("DiversityFactor = %f, want 0.3", cfg.DiversityFactor)
		}
		if cfg.Tour.PopulationSize != 50 || cfg.Tour.Generations != 100 {
			t.Errorf("Tour = %+v", cfg.Tour)
		}
		if cfg.Tour.Workers < 1 || cfg.Tour.Workers > 4 {
			t.Errorf("Tour.Workers = %d, want 1..4", cfg.Tour.Workers)
		}
		if cfg.Feedback.HalfLife != 30*time.Minute {
			t.Errorf("Feedback.HalfLife = %v, want 30m", cfg.Feedback.HalfLife)
		}
	})

	t.Run("seed is set for determinism", func(t *testing.T) {
		if cfg.Seed != DefaultSeed {
			t.Errorf("Seed = %d, want %d", cfg.Seed, DefaultSeed)
		}
	})

	t.Run("defaults validate", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{"valid default config", func(*Config) {}, false},
		{"negative weight", func(c *Config) { c.Weights.Age = -0.1 }, true},
		{"zero weights allowed", func(c *Config) { c.Weights = MatchingWeights{} }, false},
		{"zero top k", func(c *Config) { c.TopK = 0 }, true},
		{"diversity above 1", func(c *Config) { c.DiversityFactor = 1.5 }, true},
		{"diversity at bounds", func(c *Config) { c.DiversityFactor = 1 }, false},
		{"zero half life", func(c *Config) { c.Feedback.HalfLife = 0 }, true},
		{"like boost below 1", func(c *Config) { c.Feedback.LikeBoost = 0.9 }, true},
		{"skip penalty zero", func(c *Config) { c.Feedback.SkipPenalty = 0 }, true},
		{"skip exclusion zero", func(c *Config) { c.Feedback.SkipExclusionCount = 0 }, true},
		{"viewed penalty above 1", func(c *Config) { c.Feedback.ViewedPenalty = 1.1 }, true},
		{"population of one", func(c *Config) { c.Tour.PopulationSize = 1 }, true},
		{"zero generations", func(c *Config) { c.Tour.Generations = 0 }, true},
		{"mutation rate above 1", func(c *Config) { c.Tour.MutationRate = 2 }, true},
		{"negative plateau", func(c *Config) { c.Tour.PlateauGenerations = -1 }, true},
		{"plateau disabled", func(c *Config) { c.Tour.PlateauGenerations = 0 }, false},
		{"zero walking speed", func(c *Config) { c.Tour.WalkingSpeed = 0 }, true},
		{"negative floor penalty", func(c *Config) { c.Tour.FloorChangePenalty = -1 }, true},
		{"negative overtime penalty", func(c *Config) { c.Tour.OvertimePenalty = -1 }, true},
		{"negative rest", func(c *Config) { c.Tour.RestMinutes = -1 }, true},
		{"zero workers", func(c *Config) { c.Tour.Workers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMatchingWeights_Normalize(t *testing.T) {
	t.Run("rescales to sum 1", func(t *testing.T) {
		w := MatchingWeights{Interest: 2, Category: 1, Age: 1}.Normalize()
		if math.Abs(w.Interest-0.5) > 1e-9 || math.Abs(w.Category-0.25) > 1e-9 {
			t.Errorf("Normalize() = %+v", w)
		}
	})

	t.Run("zero sum falls back to equal weights", func(t *testing.T) {
		w := MatchingWeights{}.Normalize()
		for name, v := range w.ToMap() {
			if math.Abs(v-1.0/9) > 1e-9 {
				t.Errorf("%s = %f, want 1/9", name, v)
			}
		}
	})

	t.Run("negative weights count as zero", func(t *testing.T) {
		w := MatchingWeights{Interest: 1, Category: -5}.Normalize()
		if w.Interest != 1 || w.Category != 0 {
			t.Errorf("Normalize() = %+v", w)
		}
	})
}

func TestMatchingWeights_Combine(t *testing.T) {
	w := DefaultConfig().Weights.Normalize()
	ones := SubScores{1, 1, 1, 1, 1, 1, 1, 1, 1}
	if got := w.Combine(ones); math.Abs(got-1) > 1e-9 {
		t.Errorf("Combine(all ones) = %f, want 1", got)
	}
	if got := w.Combine(SubScores{}); got != 0 {
		t.Errorf("Combine(zero) = %f, want 0", got)
	}
}

func TestConfig_CloneAndOptions(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Tour.Generations = 7
	if cfg.Tour.Generations == 7 {
		t.Error("Clone() shares nested state with original")
	}

	div := 1.7
	seed := int64(9)
	out := cfg.WithOptions(&Options{TopK: 3, DiversityFactor: &div, Seed: &seed})
	if out.TopK != 3 || out.DiversityFactor != 1 || out.Seed != 9 {
		t.Errorf("WithOptions() = TopK %d, Diversity %f, Seed %d", out.TopK, out.DiversityFactor, out.Seed)
	}
	if cfg.TopK != 5 {
		t.Error("WithOptions() mutated the receiver")
	}

	if got := cfg.WithOptions(nil); *got != *cfg {
		t.Error("WithOptions(nil) should equal the receiver")
	}

	zero := &Config{}
	if zero.EffectiveSeed() != DefaultSeed {
		t.Errorf("EffectiveSeed() = %d, want %d", zero.EffectiveSeed(), DefaultSeed)
	}
}
