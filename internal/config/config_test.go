// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/curator/internal/recommend"
)

// isolateEnv points CONFIG_PATH at a missing file and clears the variables
// the tests below depend on, so the host environment cannot leak in.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
}

func assertNoError(t *testing.T, err error, testName string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", testName, err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadWithKoanf()
	assertNoError(t, err, "LoadWithKoanf")

	if cfg.Server.Port != 8642 {
		t.Errorf("Server.Port = %d, want 8642", cfg.Server.Port)
	}
	if cfg.History.Backend != BackendBadger {
		t.Errorf("History.Backend = %q, want %q", cfg.History.Backend, BackendBadger)
	}
	if cfg.Feedback.Topic != "curator.interactions" {
		t.Errorf("Feedback.Topic = %q", cfg.Feedback.Topic)
	}
	if cfg.Engine.AnalyzeTimeout != 10*time.Second {
		t.Errorf("Engine.AnalyzeTimeout = %v, want 10s", cfg.Engine.AnalyzeTimeout)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want empty (bundled sample)", cfg.Catalog.Path)
	}
	if !cfg.Live.Enabled {
		t.Error("Live.Enabled = false, want true")
	}
	if cfg.Feedback.DedupWindow != 2*time.Second || cfg.Feedback.DedupCapacity != 10000 {
		t.Errorf("Feedback dedup = %v/%d, want 2s/10000", cfg.Feedback.DedupWindow, cfg.Feedback.DedupCapacity)
	}
}

func TestEngineConfig_MatchesLibraryDefaults(t *testing.T) {
	got := defaultConfig().EngineConfig()
	want := recommend.DefaultConfig()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EngineConfig() = %+v\nwant %+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("default engine config invalid: %v", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CURATOR_TOP_K", "8")
	t.Setenv("CURATOR_WEIGHT_INTEREST", "0.5")
	t.Setenv("CURATOR_FEEDBACK_HALF_LIFE", "45m")
	t.Setenv("CURATOR_TOUR_GENERATIONS", "20")
	t.Setenv("CORS_ORIGINS", "https://museum.example, https://kiosk.example")
	t.Setenv("HISTORY_BACKEND", "memory")
	t.Setenv("DISABLE_RATE_LIMIT", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LIVE_ENABLED", "false")
	t.Setenv("FEEDBACK_DEDUP_WINDOW", "0s")

	cfg, err := LoadWithKoanf()
	assertNoError(t, err, "LoadWithKoanf")

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Engine.TopK != 8 {
		t.Errorf("Engine.TopK = %d, want 8", cfg.Engine.TopK)
	}
	if cfg.Engine.Weights.Interest != 0.5 {
		t.Errorf("Engine.Weights.Interest = %v, want 0.5", cfg.Engine.Weights.Interest)
	}
	if cfg.Engine.Feedback.HalfLife != 45*time.Minute {
		t.Errorf("Engine.Feedback.HalfLife = %v, want 45m", cfg.Engine.Feedback.HalfLife)
	}
	if cfg.Engine.Tour.Generations != 20 {
		t.Errorf("Engine.Tour.Generations = %d, want 20", cfg.Engine.Tour.Generations)
	}
	wantOrigins := []string{"https://museum.example", "https://kiosk.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if cfg.History.Backend != BackendMemory {
		t.Errorf("History.Backend = %q, want memory", cfg.History.Backend)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("Security.RateLimitDisabled = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Live.Enabled {
		t.Error("Live.Enabled = true, want false")
	}
	if cfg.Feedback.DedupWindow != 0 {
		t.Errorf("Feedback.DedupWindow = %v, want 0", cfg.Feedback.DedupWindow)
	}

	eng := cfg.EngineConfig()
	if eng.TopK != 8 || eng.Tour.Generations != 20 {
		t.Errorf("EngineConfig() did not carry overrides: %+v", eng)
	}
}

func TestLoadWithKoanf_YAMLFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "curator.yaml")
	yaml := `
server:
  port: 7001
  environment: staging
catalog:
  path: /srv/catalog.json
security:
  cors_origins:
    - https://a.example
    - https://b.example
engine:
  top_k: 3
  diversity_factor: 0.5
  tour:
    population_size: 20
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("CURATOR_TOP_K", "4")

	cfg, err := LoadWithKoanf()
	assertNoError(t, err, "LoadWithKoanf")

	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want 7001", cfg.Server.Port)
	}
	if cfg.Server.Environment != "staging" {
		t.Errorf("Server.Environment = %q, want staging", cfg.Server.Environment)
	}
	if cfg.Catalog.Path != "/srv/catalog.json" {
		t.Errorf("Catalog.Path = %q", cfg.Catalog.Path)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	// Environment beats the file.
	if cfg.Engine.TopK != 4 {
		t.Errorf("Engine.TopK = %d, want 4 (env override)", cfg.Engine.TopK)
	}
	if cfg.Engine.DiversityFactor != 0.5 {
		t.Errorf("Engine.DiversityFactor = %v, want 0.5", cfg.Engine.DiversityFactor)
	}
	if cfg.Engine.Tour.PopulationSize != 20 {
		t.Errorf("Engine.Tour.PopulationSize = %d, want 20", cfg.Engine.Tour.PopulationSize)
	}
	// Untouched values keep their defaults.
	if cfg.Engine.Tour.Generations != recommend.DefaultConfig().Tour.Generations {
		t.Errorf("Engine.Tour.Generations = %d, want default", cfg.Engine.Tour.Generations)
	}
}

func TestLoadWithKoanf_InvalidValue(t *testing.T) {
	isolateEnv(t)
	t.Setenv("CURATOR_DIVERSITY_FACTOR", "1.5")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "diversity_factor") {
		t.Errorf("error = %v, want mention of diversity_factor", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errContains string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "memory backend needs no path", mutate: func(c *Config) {
			c.History.Backend = BackendMemory
			c.History.Path = ""
		}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, errContains: "HTTP_PORT"},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, errContains: "HTTP_PORT"},
		{name: "unknown environment", mutate: func(c *Config) { c.Server.Environment = "prod" }, errContains: "ENVIRONMENT"},
		{name: "no CORS origins", mutate: func(c *Config) { c.Security.CORSOrigins = nil }, errContains: "CORS_ORIGINS"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, errContains: "LOG_LEVEL"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, errContains: "LOG_FORMAT"},
		{name: "unknown backend", mutate: func(c *Config) { c.History.Backend = "redis" }, errContains: "HISTORY_BACKEND"},
		{name: "badger without path", mutate: func(c *Config) { c.History.Path = "" }, errContains: "HISTORY_PATH"},
		{name: "zero max events", mutate: func(c *Config) { c.History.MaxEventsPerSession = 0 }, errContains: "HISTORY_MAX_EVENTS"},
		{name: "negative gc interval", mutate: func(c *Config) { c.History.GCInterval = -time.Second }, errContains: "HISTORY_GC_INTERVAL"},
		{name: "zero breaker threshold", mutate: func(c *Config) { c.History.Breaker.FailureThreshold = 0 }, errContains: "HISTORY_BREAKER_FAILURES"},
		{name: "zero breaker timeout", mutate: func(c *Config) { c.History.Breaker.Timeout = 0 }, errContains: "HISTORY_BREAKER_TIMEOUT"},
		{name: "empty topic", mutate: func(c *Config) { c.Feedback.Topic = "" }, errContains: "FEEDBACK_TOPIC"},
		{name: "zero feedback rate", mutate: func(c *Config) { c.Feedback.RatePerSecond = 0 }, errContains: "FEEDBACK_RATE_PER_SECOND"},
		{name: "zero feedback burst", mutate: func(c *Config) { c.Feedback.Burst = 0 }, errContains: "FEEDBACK_BURST"},
		{name: "negative dedup window", mutate: func(c *Config) { c.Feedback.DedupWindow = -time.Second }, errContains: "FEEDBACK_DEDUP_WINDOW"},
		{name: "dedup without capacity", mutate: func(c *Config) { c.Feedback.DedupCapacity = 0 }, errContains: "FEEDBACK_DEDUP_CAPACITY"},
		{name: "zero analyze timeout", mutate: func(c *Config) { c.Engine.AnalyzeTimeout = 0 }, errContains: "CURATOR_ANALYZE_TIMEOUT"},
		{name: "zero top k", mutate: func(c *Config) { c.Engine.TopK = 0 }, errContains: "top_k"},
		{name: "negative weight", mutate: func(c *Config) { c.Engine.Weights.Crowd = -1 }, errContains: "weights.crowd"},
		{name: "tiny population", mutate: func(c *Config) { c.Engine.Tour.PopulationSize = 1 }, errContains: "population_size"},
		{name: "zero supervisor threshold", mutate: func(c *Config) { c.Supervisor.FailureThreshold = 0 }, errContains: "SUPERVISOR_FAILURE_THRESHOLD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateRateLimits(t *testing.T) {
	tests := []struct {
		name        string
		requests    int
		window      time.Duration
		disabled    bool
		errContains string
	}{
		{name: "valid defaults", requests: 120, window: time.Minute},
		{name: "valid minimum requests", requests: 1, window: time.Minute},
		{name: "valid maximum window", requests: 100, window: time.Hour},
		{name: "zero requests", requests: 0, window: time.Minute, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "too many requests", requests: 100001, window: time.Minute, errContains: "RATE_LIMIT_REQUESTS"},
		{name: "window too small", requests: 100, window: 500 * time.Millisecond, errContains: "RATE_LIMIT_WINDOW"},
		{name: "window too large", requests: 100, window: 2 * time.Hour, errContains: "RATE_LIMIT_WINDOW"},
		{name: "disabled skips validation", disabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Security: SecurityConfig{
					RateLimitReqs:     tt.requests,
					RateLimitWindow:   tt.window,
					RateLimitDisabled: tt.disabled,
				},
			}

			err := cfg.validateRateLimits()
			if tt.errContains == "" {
				if err != nil {
					t.Errorf("validateRateLimits() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("validateRateLimits() error = %v, want error containing %q", err, tt.errContains)
			}
		})
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		origins     []string
		want        bool
	}{
		{"development wildcard", "development", []string{"*"}, false},
		{"production wildcard", "production", []string{"https://a.example", "*"}, true},
		{"production explicit", "production", []string{"https://a.example"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server:   ServerConfig{Environment: tt.environment},
				Security: SecurityConfig{CORSOrigins: tt.origins},
			}
			if got := cfg.ShouldWarnAboutCORS(); got != tt.want {
				t.Errorf("ShouldWarnAboutCORS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"HISTORY_BACKEND", "history.backend"},
		{"CURATOR_TOP_K", "engine.top_k"},
		{"CURATOR_WEIGHT_LEARNING_STYLE", "engine.weights.learning_style"},
		{"CURATOR_TOUR_WORKERS", "engine.tour.workers"},
		{"FEEDBACK_BURST", "feedback.burst"},
		{"FEEDBACK_DEDUP_WINDOW", "feedback.dedup_window"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestEnvMappings_PointAtKnownPaths(t *testing.T) {
	known := knownPaths(reflect.TypeOf(Config{}), "")
	for env, path := range envMappings {
		if !known[path] {
			t.Errorf("env %s maps to unknown path %q", env, path)
		}
	}
}

// knownPaths collects the dotted koanf paths of every leaf field.
func knownPaths(typ reflect.Type, prefix string) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" {
			continue
		}
		path := prefix + tag
		if f.Type.Kind() == reflect.Struct {
			for p := range knownPaths(f.Type, path+".") {
				out[p] = true
			}
			continue
		}
		out[path] = true
	}
	return out
}

func TestIsProduction(t *testing.T) {
	cfg := defaultConfig()
	if cfg.IsProduction() {
		t.Error("default config should not be production")
	}
	cfg.Server.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
}
