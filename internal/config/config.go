// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package config

import (
	"time"

	"github.com/tomtom215/curator/internal/recommend"
)

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	History    HistoryConfig    `koanf:"history"`
	Feedback   FeedbackConfig   `koanf:"feedback"`
	Live       LiveConfig       `koanf:"live"`
	Engine     EngineConfig     `koanf:"engine"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development", "staging" or "production".
	Environment string `koanf:"environment"`
}

// SecurityConfig holds CORS and request rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	Caller bool `koanf:"caller"`
}

// CatalogConfig selects the exhibit catalog.
type CatalogConfig struct {
	// Path to a JSON catalog file. Empty uses the bundled sample catalog.
	Path string `koanf:"path"`
}

// HistoryConfig configures the interaction history store.
type HistoryConfig struct {
	// Backend is "badger" (persistent) or "memory".
	// Default: badger
	Backend string `koanf:"backend"`

	// Path is the badger data directory.
	// Default: /data/curator/history
	Path string `koanf:"path"`

	// MaxEventsPerSession keeps only the newest events of a session on read.
	// Default: 500
	MaxEventsPerSession int `koanf:"max_events_per_session"`

	// GCInterval between badger value log GC passes. Zero disables GC.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`

	// Breaker guards store access from the API.
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the history store circuit breaker.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval clears failure counts while closed. Zero never clears.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `koanf:"timeout"`

	// FailureThreshold consecutive failures trip the breaker.
	FailureThreshold uint32 `koanf:"failure_threshold"`
}

// FeedbackConfig configures interaction ingestion over the in-process bus.
type FeedbackConfig struct {
	Topic string `koanf:"topic"`

	// BufferSize is the gochannel output buffer per subscriber.
	BufferSize int64 `koanf:"buffer_size"`

	// RatePerSecond and Burst bound events accepted per session.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`

	// DedupWindow suppresses repeats of the same session, exhibit and kind.
	// Zero disables suppression.
	DedupWindow   time.Duration `koanf:"dedup_window"`
	DedupCapacity int           `koanf:"dedup_capacity"`
}

// LiveConfig controls the websocket live feed at /api/v1/live.
type LiveConfig struct {
	Enabled bool `koanf:"enabled"`
}

// EngineConfig mirrors recommend.Config for file and environment loading.
type EngineConfig struct {
	TopK            int           `koanf:"top_k"`
	DiversityFactor float64       `koanf:"diversity_factor"`
	Seed            int64         `koanf:"seed"`
	AnalyzeTimeout  time.Duration `koanf:"analyze_timeout"`

	Weights  WeightsConfig        `koanf:"weights"`
	Feedback EngineFeedbackConfig `koanf:"feedback"`
	Tour     TourConfig           `koanf:"tour"`
}

// WeightsConfig holds the matching dimension weights.
type WeightsConfig struct {
	Interest      float64 `koanf:"interest"`
	Category      float64 `koanf:"category"`
	Age           float64 `koanf:"age"`
	Duration      float64 `koanf:"duration"`
	Popularity    float64 `koanf:"popularity"`
	LearningStyle float64 `koanf:"learning_style"`
	Energy        float64 `koanf:"energy"`
	Crowd         float64 `koanf:"crowd"`
	Accessibility float64 `koanf:"accessibility"`
}

// EngineFeedbackConfig holds the interaction feedback parameters.
type EngineFeedbackConfig struct {
	HalfLife           time.Duration `koanf:"half_life"`
	LikeBoost          float64       `koanf:"like_boost"`
	SkipPenalty        float64       `koanf:"skip_penalty"`
	SkipExclusionCount int           `koanf:"skip_exclusion_count"`
	ViewedPenalty      float64       `koanf:"viewed_penalty"`
}

// TourConfig holds the genetic search parameters.
type TourConfig struct {
	PopulationSize     int     `koanf:"population_size"`
	Generations        int     `koanf:"generations"`
	MutationRate       float64 `koanf:"mutation_rate"`
	PlateauGenerations int     `koanf:"plateau_generations"`
	WalkingSpeed       float64 `koanf:"walking_speed"`
	FloorChangePenalty float64 `koanf:"floor_change_penalty"`
	OvertimePenalty    float64 `koanf:"overtime_penalty"`
	DistancePenalty    float64 `koanf:"distance_penalty"`
	RestMinutes        int     `koanf:"rest_minutes"`
	Workers            int     `koanf:"workers"`
}

// SupervisorConfig tunes restart behavior of the service tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// EngineConfig converts the loaded settings into a recommend.Config.
func (c *Config) EngineConfig() *recommend.Config {
	e := c.Engine
	return &recommend.Config{
		Weights: recommend.MatchingWeights{
			Interest:      e.Weights.Interest,
			Category:      e.Weights.Category,
			Age:           e.Weights.Age,
			Duration:      e.Weights.Duration,
			Popularity:    e.Weights.Popularity,
			LearningStyle: e.Weights.LearningStyle,
			Energy:        e.Weights.Energy,
			Crowd:         e.Weights.Crowd,
			Accessibility: e.Weights.Accessibility,
		},
		TopK:            e.TopK,
		DiversityFactor: e.DiversityFactor,
		Feedback: recommend.FeedbackConfig{
			HalfLife:           e.Feedback.HalfLife,
			LikeBoost:          e.Feedback.LikeBoost,
			SkipPenalty:        e.Feedback.SkipPenalty,
			SkipExclusionCount: e.Feedback.SkipExclusionCount,
			ViewedPenalty:      e.Feedback.ViewedPenalty,
		},
		Tour: recommend.TourConfig{
			PopulationSize:     e.Tour.PopulationSize,
			Generations:        e.Tour.Generations,
			MutationRate:       e.Tour.MutationRate,
			PlateauGenerations: e.Tour.PlateauGenerations,
			WalkingSpeed:       e.Tour.WalkingSpeed,
			FloorChangePenalty: e.Tour.FloorChangePenalty,
			OvertimePenalty:    e.Tour.OvertimePenalty,
			DistancePenalty:    e.Tour.DistancePenalty,
			RestMinutes:        e.Tour.RestMinutes,
			Workers:            e.Tour.Workers,
		},
		Seed: e.Seed,
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
