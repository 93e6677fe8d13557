// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultGCDiscardRatio is the value log discard ratio passed to badger.
const DefaultGCDiscardRatio = 0.5

// GCRunner runs one garbage collection pass. Satisfied by
// *history.BadgerStore.
type GCRunner interface {
	RunGC(discardRatio float64) error
}

// HistoryGCService periodically reclaims space in the history store's value
// log. Deleted interaction events only free disk after a rewrite.
type HistoryGCService struct {
	runner       GCRunner
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewHistoryGCService creates the service. interval must be positive.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHistoryGCService(runner GCRunner, interval time.Duration, logger zerolog.Logger) *HistoryGCService {
	return &HistoryGCService{
		runner:       runner,
		interval:     interval,
		discardRatio: DefaultGCDiscardRatio,
		logger:       logger,
		name:         "history-gc",
	}
}

// Serve implements suture.Service. GC errors are logged, not returned: a
// failed pass is retried on the next tick and must not restart the service.
func (s *HistoryGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.runner.RunGC(s.discardRatio); err != nil {
				s.logger.Warn().Err(err).Msg("history value log gc failed")
				continue
			}
			s.logger.Debug().Dur("took", time.Since(start)).Msg("history value log gc pass")
		}
	}
}

// String implements fmt.Stringer for suture logs.
func (s *HistoryGCService) String() string {
	return s.name
}
