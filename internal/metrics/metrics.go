// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Engine Metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_analyses_total",
			Help: "Total number of analyze calls by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid_input", "not_initialized", "error"
	)

	AnalysisStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_analysis_stage_duration_seconds",
			Help:    "Duration of each analysis stage in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"stage"}, // "profile", "match", "rank", "tour"
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_recommendations_returned",
			Help:    "Number of recommendations returned per analysis",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
	)

	RecommendationConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_recommendation_confidence",
			Help:    "Confidence of returned recommendation sets",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	FeedbackEventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_feedback_events_dropped_total",
			Help: "Interaction events ignored during ranking",
		},
		[]string{"reason"},
	)

	MatchingTruncated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_matching_truncated_total",
			Help: "Matching passes cut short by cancellation",
		},
	)

	// Tour Metrics
	TourStops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_tour_stops",
			Help:    "Number of stops in planned tours",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15, 20},
		},
	)

	TourGenerations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "curator_tour_generations",
			Help:    "Generations evolved per tour optimization",
			Buckets: []float64{0, 10, 25, 50, 100, 200, 500},
		},
	)

	TourBudgetInfeasible = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_tour_budget_infeasible_total",
			Help: "Tours whose best exhibit could not fit the time budget",
		},
	)

	TourInterrupted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_tour_interrupted_total",
			Help: "Tour searches stopped early by cancellation",
		},
	)

	// Catalog Metrics
	CatalogExhibits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_catalog_exhibits",
			Help: "Number of exhibits in the loaded catalog",
		},
	)

	CatalogLoadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_catalog_loads_total",
			Help: "Total number of successful catalog loads",
		},
	)

	// History Store Metrics
	HistoryOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "curator_history_operation_duration_seconds",
			Help:    "Duration of history store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "append", "list", "clear"
	)

	HistoryOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_history_operation_errors_total",
			Help: "Total number of failed history store operations",
		},
		[]string{"operation"},
	)

	HistoryBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "curator_history_breaker_state",
			Help: "History circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Feedback Bus Metrics
	FeedbackPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_feedback_published_total",
			Help: "Interaction events published to the bus",
		},
	)

	FeedbackConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "curator_feedback_consumed_total",
			Help: "Interaction messages handled by the consumer by result",
		},
		[]string{"result"}, // "stored", "malformed", "failed"
	)

	FeedbackRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_feedback_rate_limited_total",
			Help: "Interaction events rejected by the per-session limiter",
		},
	)

	FeedbackDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "curator_feedback_duplicates_total",
			Help: "Repeated interaction events suppressed before publishing",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the HTTP rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordAnalysis counts an analyze call by outcome.
func RecordAnalysis(outcome string) {
	AnalysesTotal.WithLabelValues(outcome).Inc()
}

// RecordCatalogLoad records a successful catalog load.
func RecordCatalogLoad(exhibits int) {
	CatalogLoadsTotal.Inc()
	CatalogExhibits.Set(float64(exhibits))
}

// RecordHistoryOperation records a history store call.
func RecordHistoryOperation(operation string, duration time.Duration, err error) {
	HistoryOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		HistoryOperationErrors.WithLabelValues(operation).Inc()
	}
}

// SetHistoryBreakerState publishes the breaker state (0 closed, 1 half-open, 2 open).
func SetHistoryBreakerState(state int) {
	HistoryBreakerState.Set(float64(state))
}

// RecordFeedbackPublished counts a published interaction event.
func RecordFeedbackPublished() {
	FeedbackPublished.Inc()
}

// RecordFeedbackConsumed counts a consumed message by result.
func RecordFeedbackConsumed(result string) {
	FeedbackConsumed.WithLabelValues(result).Inc()
}

// RecordFeedbackRateLimited counts a rejected interaction event.
func RecordFeedbackRateLimited() {
	FeedbackRateLimited.Inc()
}

// RecordFeedbackDuplicate counts a suppressed repeat interaction event.
func RecordFeedbackDuplicate() {
	FeedbackDuplicates.Inc()
}
