// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package feedback

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = time.Hour
	limiterSweepInterval = 10 * time.Minute
)

// sessionLimiters holds one token bucket per session.
type sessionLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rate      rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newSessionLimiters(perSecond float64, burst int) *sessionLimiters {
	return &sessionLimiters{
		limiters:  make(map[string]*limiterEntry),
		rate:      rate.Limit(perSecond),
		burst:     burst,
		now:       time.Now,
		lastSweep: time.Now(),
	}
}

// allow reports whether sessionID may publish one more event now.
func (s *sessionLimiters) allow(sessionID string) bool {
	s.mu.Lock()
	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		s.sweep(now)
	}
	entry, ok := s.limiters[sessionID]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.rate, s.burst)}
		s.limiters[sessionID] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	s.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// sweep drops limiters idle for longer than limiterIdleTTL. Caller holds mu.
func (s *sessionLimiters) sweep(now time.Time) {
	threshold := now.Add(-limiterIdleTTL)
	for id, entry := range s.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(s.limiters, id)
		}
	}
	s.lastSweep = now
}

func (s *sessionLimiters) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
