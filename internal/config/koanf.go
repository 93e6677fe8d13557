// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/curator/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curator/config.yaml",
	"/etc/curator/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. Engine defaults come from
// recommend.DefaultConfig so the two never drift apart.
func defaultConfig() *Config {
	eng := recommend.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8642,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		History: HistoryConfig{
			Backend:             BackendBadger,
			Path:                "/data/curator/history",
			MaxEventsPerSession: 500,
			GCInterval:          10 * time.Minute,
			Breaker: BreakerConfig{
				MaxRequests:      1,
				Interval:         time.Minute,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
		},
		Feedback: FeedbackConfig{
			Topic:         "curator.interactions",
			BufferSize:    256,
			RatePerSecond: 5,
			Burst:         20,
			DedupWindow:   2 * time.Second,
			DedupCapacity: 10000,
		},
		Live: LiveConfig{
			Enabled: true,
		},
		Engine: EngineConfig{
			TopK:            eng.TopK,
			DiversityFactor: eng.DiversityFactor,
			Seed:            eng.Seed,
			AnalyzeTimeout:  10 * time.Second,
			Weights: WeightsConfig{
				Interest:      eng.Weights.Interest,
				Category:      eng.Weights.Category,
				Age:           eng.Weights.Age,
				Duration:      eng.Weights.Duration,
				Popularity:    eng.Weights.Popularity,
				LearningStyle: eng.Weights.LearningStyle,
				Energy:        eng.Weights.Energy,
				Crowd:         eng.Weights.Crowd,
				Accessibility: eng.Weights.Accessibility,
			},
			Feedback: EngineFeedbackConfig{
				HalfLife:           eng.Feedback.HalfLife,
				LikeBoost:          eng.Feedback.LikeBoost,
				SkipPenalty:        eng.Feedback.SkipPenalty,
				SkipExclusionCount: eng.Feedback.SkipExclusionCount,
				ViewedPenalty:      eng.Feedback.ViewedPenalty,
			},
			Tour: TourConfig{
				PopulationSize:     eng.Tour.PopulationSize,
				Generations:        eng.Tour.Generations,
				MutationRate:       eng.Tour.MutationRate,
				PlateauGenerations: eng.Tour.PlateauGenerations,
				WalkingSpeed:       eng.Tour.WalkingSpeed,
				FloorChangePenalty: eng.Tour.FloorChangePenalty,
				OvertimePenalty:    eng.Tour.OvertimePenalty,
				DistancePenalty:    eng.Tour.DistancePenalty,
				RestMinutes:        eng.Tour.RestMinutes,
				Workers:            eng.Tour.Workers,
			},
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration in three layers, later layers winning:
//  1. Built-in defaults
//  2. Optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables listed in envMappings
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated environment values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated strings for known slice fields.
// Values already loaded as lists (from YAML) are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog
	"catalog_path": "catalog.path",

	// History store
	"history_backend":              "history.backend",
	"history_path":                 "history.path",
	"history_max_events":           "history.max_events_per_session",
	"history_gc_interval":          "history.gc_interval",
	"history_breaker_failures":     "history.breaker.failure_threshold",
	"history_breaker_timeout":      "history.breaker.timeout",
	"history_breaker_interval":     "history.breaker.interval",
	"history_breaker_max_requests": "history.breaker.max_requests",

	// Feedback bus
	"feedback_topic":           "feedback.topic",
	"feedback_buffer_size":     "feedback.buffer_size",
	"feedback_rate_per_second": "feedback.rate_per_second",
	"feedback_burst":           "feedback.burst",
	"feedback_dedup_window":    "feedback.dedup_window",
	"feedback_dedup_capacity":  "feedback.dedup_capacity",

	// Live feed
	"live_enabled": "live.enabled",

	// Engine
	"curator_top_k":            "engine.top_k",
	"curator_diversity_factor": "engine.diversity_factor",
	"curator_seed":             "engine.seed",
	"curator_analyze_timeout":  "engine.analyze_timeout",

	"curator_weight_interest":       "engine.weights.interest",
	"curator_weight_category":       "engine.weights.category",
	"curator_weight_age":            "engine.weights.age",
	"curator_weight_duration":       "engine.weights.duration",
	"curator_weight_popularity":     "engine.weights.popularity",
	"curator_weight_learning_style": "engine.weights.learning_style",
	"curator_weight_energy":         "engine.weights.energy",
	"curator_weight_crowd":          "engine.weights.crowd",
	"curator_weight_accessibility":  "engine.weights.accessibility",

	"curator_feedback_half_life":      "engine.feedback.half_life",
	"curator_feedback_like_boost":     "engine.feedback.like_boost",
	"curator_feedback_skip_penalty":   "engine.feedback.skip_penalty",
	"curator_feedback_skip_exclusion": "engine.feedback.skip_exclusion_count",
	"curator_feedback_viewed_penalty": "engine.feedback.viewed_penalty",

	"curator_tour_population":    "engine.tour.population_size",
	"curator_tour_generations":   "engine.tour.generations",
	"curator_tour_mutation_rate": "engine.tour.mutation_rate",
	"curator_tour_plateau":       "engine.tour.plateau_generations",
	"curator_tour_walking_speed": "engine.tour.walking_speed",
	"curator_tour_floor_penalty": "engine.tour.floor_change_penalty",
	"curator_tour_overtime":      "engine.tour.overtime_penalty",
	"curator_tour_distance":      "engine.tour.distance_penalty",
	"curator_tour_rest_minutes":  "engine.tour.rest_minutes",
	"curator_tour_workers":       "engine.tour.workers",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" makes koanf skip the variable.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - HISTORY_BACKEND -> history.backend
//   - CURATOR_TOP_K -> engine.top_k
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
