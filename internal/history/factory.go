// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package history

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curator/internal/config"
)

// Open builds the configured store wrapped in a BreakerStore.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg config.HistoryConfig, logger zerolog.Logger) (*BreakerStore, error) {
	var store Store
	switch cfg.Backend {
	case config.BackendMemory:
		store = NewMemoryStore(cfg.MaxEventsPerSession)
	case config.BackendBadger:
		badgerLog := logger.With().Str("subsystem", "badger").Logger()
		bs, err := OpenBadger(BadgerOptions{
			Path:                cfg.Path,
			MaxEventsPerSession: cfg.MaxEventsPerSession,
			Logger:              &badgerLog,
		})
		if err != nil {
			return nil, err
		}
		store = bs
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}

	logger.Info().
		Str("backend", cfg.Backend).
		Int("max_events_per_session", cfg.MaxEventsPerSession).
		Msg("history store opened")
	return NewBreakerStore(store, cfg.Breaker, logger), nil
}
