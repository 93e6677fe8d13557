// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

/*
Package metrics provides Prometheus metrics for the Curator service.

Metrics are registered on the default registry via promauto and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8642/metrics

# Available Metrics

API:
  - curator_api_requests_total{method,endpoint,status_code}
  - curator_api_request_duration_seconds{method,endpoint}
  - curator_api_active_requests
  - curator_api_rate_limit_hits_total{endpoint}

Engine:
  - curator_analyses_total{outcome}
  - curator_analysis_stage_duration_seconds{stage}: profile, match, rank, tour
  - curator_recommendations_returned
  - curator_recommendation_confidence
  - curator_feedback_events_dropped_total{reason}
  - curator_matching_truncated_total

Tours:
  - curator_tour_stops
  - curator_tour_generations
  - curator_tour_budget_infeasible_total
  - curator_tour_interrupted_total

Catalog, history and feedback:
  - curator_catalog_exhibits, curator_catalog_loads_total
  - curator_history_operation_duration_seconds{operation}
  - curator_history_operation_errors_total{operation}
  - curator_history_breaker_state: 0=closed, 1=half-open, 2=open
  - curator_feedback_published_total, curator_feedback_rate_limited_total
  - curator_feedback_consumed_total{result}

# Engine Events

The engine never imports this package. It reports through recommend.Recorder,
and Recorder translates known events into the observations above:

	rec := recommend.Multi(recommend.NewLogRecorder(logger), metrics.NewRecorder())
	eng, err := engine.New(cfg, rec)

# Thread Safety

All metrics are safe for concurrent use.
*/
package metrics
