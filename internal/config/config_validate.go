// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package config

import (
	"fmt"
	"time"
)

// History backends.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateHistory(); err != nil {
		return err
	}

	if err := c.validateFeedback(); err != nil {
		return err
	}

	if err := c.validateEngine(); err != nil {
		return err
	}

	return c.validateSupervisor()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("READ_TIMEOUT and WRITE_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when wildcard CORS is used in production.
// The API carries no credentials, so this is a warning rather than an error.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHistory validates the interaction history store
func (c *Config) validateHistory() error {
	switch c.History.Backend {
	case BackendBadger:
		if c.History.Path == "" {
			return fmt.Errorf("HISTORY_PATH is required when HISTORY_BACKEND=badger")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("HISTORY_BACKEND must be one of: badger, memory")
	}
	if c.History.MaxEventsPerSession < 1 {
		return fmt.Errorf("HISTORY_MAX_EVENTS must be at least 1")
	}
	if c.History.GCInterval < 0 {
		return fmt.Errorf("HISTORY_GC_INTERVAL must not be negative")
	}
	return c.validateBreaker()
}

// validateBreaker validates the history circuit breaker
func (c *Config) validateBreaker() error {
	b := c.History.Breaker
	if b.FailureThreshold < 1 {
		return fmt.Errorf("HISTORY_BREAKER_FAILURES must be at least 1")
	}
	if b.MaxRequests < 1 {
		return fmt.Errorf("HISTORY_BREAKER_MAX_REQUESTS must be at least 1")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("HISTORY_BREAKER_TIMEOUT must be positive")
	}
	if b.Interval < 0 {
		return fmt.Errorf("HISTORY_BREAKER_INTERVAL must not be negative")
	}
	return nil
}

// validateFeedback validates the interaction bus
func (c *Config) validateFeedback() error {
	if c.Feedback.Topic == "" {
		return fmt.Errorf("FEEDBACK_TOPIC must not be empty")
	}
	if c.Feedback.BufferSize < 0 {
		return fmt.Errorf("FEEDBACK_BUFFER_SIZE must not be negative")
	}
	if c.Feedback.RatePerSecond <= 0 {
		return fmt.Errorf("FEEDBACK_RATE_PER_SECOND must be positive")
	}
	if c.Feedback.Burst < 1 {
		return fmt.Errorf("FEEDBACK_BURST must be at least 1")
	}
	if c.Feedback.DedupWindow < 0 {
		return fmt.Errorf("FEEDBACK_DEDUP_WINDOW must not be negative")
	}
	if c.Feedback.DedupWindow > 0 && c.Feedback.DedupCapacity < 1 {
		return fmt.Errorf("FEEDBACK_DEDUP_CAPACITY must be at least 1 when deduplication is enabled")
	}
	return nil
}

// validateEngine delegates to the engine's own validation.
func (c *Config) validateEngine() error {
	if c.Engine.AnalyzeTimeout <= 0 {
		return fmt.Errorf("CURATOR_ANALYZE_TIMEOUT must be positive")
	}
	if err := c.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("engine configuration: %w", err)
	}
	return nil
}

// validateSupervisor validates restart tuning
func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD must be positive")
	}
	if s.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if s.FailureBackoff <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF and SUPERVISOR_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
