// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package main is the entry point for the Curator server.

Curator builds visitor profiles from a few kiosk selections, ranks museum
exhibits against them and plans a walking tour through the picks within
the visitor's time budget. Visitors' likes, views and skips feed back into
later recommendations.

# Application Architecture

Long-running parts run under a Suture v4 supervisor tree:

	RootSupervisor ("curator")
	├── DataSupervisor ("data-layer")
	│   └── History GC (badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Feedback consumer (watermill gochannel -> history store)
	│   ├── WebSocket hub (live feed, LIVE_ENABLED)
	│   └── WebSocket relay (watermill gochannel -> hub)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Component initialization order:

 1. Configuration: Koanf v2 with defaults, optional YAML file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Engine: recommendation pipeline with the exhibit catalog loaded
 4. History store: badger or memory, behind a gobreaker circuit breaker
 5. Feedback bus: watermill gochannel publisher, consumer and live relay
 6. HTTP Server: chi router with CORS, httprate and Prometheus metrics
 7. Supervisor Tree: services above, started together

# Configuration

Priority: Environment variables > Config file > Defaults

	HTTP_PORT=8642               # HTTP server port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CATALOG_PATH=/data/exhibits.json   # empty uses the bundled sample
	HISTORY_BACKEND=badger       # badger or memory
	HISTORY_PATH=/data/curator/history
	CORS_ORIGINS=https://kiosk.example.org
	CURATOR_SEED=0               # 0 seeds the tour search from the clock
	LIVE_ENABLED=true            # websocket feed at /api/v1/live

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests within SHUTDOWN_TIMEOUT, then the consumer stops and
the history store is closed.

# Example Usage

	HISTORY_BACKEND=memory LOG_FORMAT=console ./curator

	curl -s localhost:8642/api/v1/analyze -d '{
	  "selections": {"age_group":"adults","group_type":"individual",
	                 "time_slot":"morning","interests":["space"]},
	  "session_id": "kiosk-3"
	}'
*/
package main
