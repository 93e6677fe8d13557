// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package middleware provides the chi middleware the curator API runs behind.

Key Components:

  - RequestID: reuses a well-formed inbound X-Request-ID or generates a UUID,
    echoes it in the response, and stores it in the context for logging.Ctx
  - Metrics: Prometheus request count, duration and in-flight gauge, labelled
    by chi route pattern so path parameters never become label values
  - AccessLog: one zerolog line per request; 5xx at error, 4xx at info,
    everything else at debug

Stack order used by the API router:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors)
	r.Use(middleware.Metrics)

RequestID runs first so every later log line carries the request id.
*/
package middleware
