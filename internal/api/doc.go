// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package api provides the HTTP REST API for Curator.

Routes (chi router):

	GET    /metrics                                   Prometheus exposition
	GET    /api/v1/health/live                        liveness
	GET    /api/v1/health/ready                       readiness (catalog loaded)
	GET    /api/v1/status                             engine and history status
	GET    /api/v1/exhibits                           browse the catalog
	GET    /api/v1/exhibits/{id}                      one exhibit
	POST   /api/v1/analyze                            profile, recommendations, tour
	POST   /api/v1/sessions/{sessionID}/interactions  record feedback (202)
	GET    /api/v1/sessions/{sessionID}/interactions  list stored feedback
	DELETE /api/v1/sessions/{sessionID}/interactions  forget a session
	GET    /api/v1/live                               websocket live feed

Every response uses the same envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": ..., "request_id": ..., "query_time_ms": ...},
	  "error": {"code": "VALIDATION_ERROR", "message": ..., "details": {...}}
	}

Middleware order: request id, real IP, access log, panic recovery, CORS,
request metrics. Everything under /api/v1 except health checks is rate
limited per client IP; POST /analyze and POST interactions get a stricter
limit.

POST /api/v1/analyze takes {selections, session_id?, history?, options?}.
Inline history wins. With only a session_id the stored history is used;
if the store is unavailable the analysis proceeds without history and
reports history_source "unavailable".

A POST interaction repeating the same session, exhibit and kind within the
dedup window is acknowledged with 202 and "duplicate": true but not stored.
*/
package api
