// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package config loads and validates Curator's service configuration.

# Configuration Sources

Configuration is layered with koanf, later layers winning:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, then config.yaml, then /etc/curator/config.yaml
  - Environment variables listed in envMappings

Engine defaults are taken from recommend.DefaultConfig, so a service started
without any configuration ranks and plans tours exactly like the library.

# Environment Variables

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8642)
  - ENVIRONMENT: development, staging or production (default: development)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per client IP (default: 120)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: Turn off request rate limiting (default: false)

Catalog (CatalogConfig):
  - CATALOG_PATH: JSON catalog file (default: bundled sample catalog)

History (HistoryConfig):
  - HISTORY_BACKEND: badger or memory (default: badger)
  - HISTORY_PATH: Badger data directory (default: /data/curator/history)
  - HISTORY_MAX_EVENTS: Newest events kept per session on read (default: 500)
  - HISTORY_GC_INTERVAL: Badger value log GC period, 0 disables (default: 10m)
  - HISTORY_BREAKER_FAILURES: Consecutive failures that open the breaker (default: 5)

Feedback (FeedbackConfig):
  - FEEDBACK_TOPIC: Bus topic for interaction events (default: curator.interactions)
  - FEEDBACK_RATE_PER_SECOND, FEEDBACK_BURST: Per-session ingestion limit (default: 5/s, burst 20)
  - FEEDBACK_DEDUP_WINDOW: Repeat suppression window, 0 disables (default: 2s)
  - FEEDBACK_DEDUP_CAPACITY: Keys remembered for suppression (default: 10000)

Live feed (LiveConfig):
  - LIVE_ENABLED: Serve the websocket feed at /api/v1/live (default: true)

Engine (EngineConfig):
  - CURATOR_TOP_K, CURATOR_DIVERSITY_FACTOR, CURATOR_SEED
  - CURATOR_WEIGHT_*: Matching dimension weights
  - CURATOR_FEEDBACK_*: Interaction feedback tuning
  - CURATOR_TOUR_*: Genetic search tuning

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := engine.New(cfg.EngineConfig(), recorder)

# Thread Safety

Config is a plain value. Load it once at startup and treat it as read-only.
*/
package config
