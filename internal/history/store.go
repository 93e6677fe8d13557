// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package history persists visitor interaction events per session.
//
// The recommendation engine is stateless: callers resupply interaction
// history on every call. This package is where the service keeps that
// history between calls. BadgerStore is durable, MemoryStore is for tests
// and ephemeral deployments, and BreakerStore guards either one with a
// circuit breaker so a failing disk degrades analysis instead of failing it.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/curator/internal/recommend"
	"github.com/tomtom215/curator/internal/validation"
)

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("history store unavailable")

// Store keeps interaction events per session, ordered by event timestamp.
// Events with equal timestamps keep their insertion order.
type Store interface {
	// Append validates and stores one event.
	Append(ctx context.Context, sessionID string, ev recommend.InteractionEvent) error

	// List returns the newest events of a session, oldest first.
	// An unknown session yields an empty, non-nil slice.
	List(ctx context.Context, sessionID string) ([]recommend.InteractionEvent, error)

	// Clear removes every event of a session and returns how many were removed.
	Clear(ctx context.Context, sessionID string) (int, error)

	Close() error
}

// validateSession rejects ids that cannot be used as key segments.
func validateSession(sessionID string) error {
	if !validation.ValidSessionID(sessionID) {
		return fmt.Errorf("%w: session id must match [A-Za-z0-9_-]{1,128}", recommend.ErrInvalidInput)
	}
	return nil
}

// validateEvent checks the event's validate tags.
//
//nolint:gocritic // hugeParam: events are passed by value through the Store API
func validateEvent(ev recommend.InteractionEvent) error {
	if verr := validation.ValidateStruct(&ev); verr != nil {
		return fmt.Errorf("%w: %w", recommend.ErrInvalidInput, verr)
	}
	return nil
}

// newest returns the last n events, or all of them when n <= 0.
func newest(events []recommend.InteractionEvent, n int) []recommend.InteractionEvent {
	if n > 0 && len(events) > n {
		return events[len(events)-n:]
	}
	return events
}
